package importer

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/claude/liftlog/internal/store"
	"github.com/claude/liftlog/internal/workout"
	"github.com/google/uuid"
)

// Stats tracks import progress.
type Stats struct {
	FilesProcessed int
	FilesSkipped   int
	FilesErrored   int
	SetsImported   int
}

// Importer reads CSV export files from a directory and inserts the sets into
// the store for one user.
type Importer struct {
	db     *store.DB
	state  *StateDB
	log    *slog.Logger
	userID int
	dryRun bool
	stats  Stats
}

// New creates a new Importer. state may be nil, in which case every file is
// processed each run.
func New(db *store.DB, state *StateDB, userID int, log *slog.Logger, dryRun bool) *Importer {
	return &Importer{db: db, state: state, userID: userID, log: log, dryRun: dryRun}
}

// Import processes every .csv file under dir. Each file commits in chunks;
// a failure mid-file leaves the chunks already written and moves on to the
// next file.
func (imp *Importer) Import(ctx context.Context, dir string) (*Stats, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return &imp.stats, fmt.Errorf("reading %s: %w", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".csv") {
			continue
		}
		path := filepath.Join(dir, entry.Name())

		skip, err := imp.alreadyImported(path, entry.Name())
		if err != nil {
			return &imp.stats, err
		}
		if skip {
			imp.stats.FilesSkipped++
			imp.log.Info("skipping file (already imported)", "file", entry.Name())
			continue
		}

		if err := imp.importFile(ctx, path, entry.Name()); err != nil {
			imp.stats.FilesErrored++
			imp.log.Error("file import failed", "file", entry.Name(), "error", err)
			continue
		}
		imp.stats.FilesProcessed++
	}

	return &imp.stats, nil
}

func (imp *Importer) alreadyImported(path, name string) (bool, error) {
	if imp.state == nil {
		return false, nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", name, err)
	}
	hash, err := HashFile(path)
	if err != nil {
		return false, fmt.Errorf("hashing %s: %w", name, err)
	}
	done, err := imp.state.IsImported(name, info.Size(), hash)
	if err != nil {
		return false, fmt.Errorf("checking state for %s: %w", name, err)
	}
	return done, nil
}

func (imp *Importer) importFile(ctx context.Context, path, name string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening: %w", err)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	strong, err := sniffStrong(r)
	if err != nil {
		return fmt.Errorf("sniffing format: %w", err)
	}

	var sets []workout.LoggedSet
	if strong {
		sets, err = ParseStrong(r)
	} else {
		sets, err = ParseBackup(r)
	}
	if err != nil {
		return fmt.Errorf("parsing: %w", err)
	}

	for i := range sets {
		sets[i].ID = uuid.NewString()
		sets[i].UserID = imp.userID
	}

	if imp.dryRun {
		imp.log.Info("dry run: parsed file", "file", name, "sets", len(sets))
		imp.stats.SetsImported += len(sets)
		return nil
	}

	written, err := imp.db.SaveBatch(ctx, sets)
	imp.stats.SetsImported += written
	if err != nil {
		return fmt.Errorf("saving (%d rows committed): %w", written, err)
	}

	if imp.state != nil {
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("stat after import: %w", err)
		}
		hash, err := HashFile(path)
		if err != nil {
			return fmt.Errorf("hashing after import: %w", err)
		}
		if err := imp.state.MarkImported(name, info.Size(), hash); err != nil {
			return fmt.Errorf("recording state: %w", err)
		}
	}

	imp.log.Info("imported file", "file", name, "sets", len(sets))
	return nil
}

// sniffStrong peeks at the header line to pick a parser.
func sniffStrong(r *bufio.Reader) (bool, error) {
	header, err := r.Peek(512)
	if err != nil && len(header) == 0 {
		return false, err
	}
	return DetectFormat(header) == FormatStrong, nil
}

const (
	FormatStrong = "strong"
	FormatBackup = "backup"
)

// DetectFormat reports which import format a CSV carries, from its header
// line: Strong exports are semicolon-delimited, the backup format is
// comma-delimited. The names match the server's import endpoints.
func DetectFormat(data []byte) string {
	line, _, _ := strings.Cut(string(data), "\n")
	if strings.Contains(line, ";") {
		return FormatStrong
	}
	return FormatBackup
}
