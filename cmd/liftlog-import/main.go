package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/claude/liftlog/internal/config"
	"github.com/claude/liftlog/internal/debounce"
	"github.com/claude/liftlog/internal/importer"
	"github.com/claude/liftlog/internal/store"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file (local mode)")
	serverURL := flag.String("server", "", "LiftLog server URL (remote mode, e.g. https://liftlog.tail1234.ts.net)")
	token := flag.String("token", "", "session token for remote mode")
	importPath := flag.String("path", "", "directory containing CSV exports (required)")
	userID := flag.Int("user", 1, "user ID to import into (local mode)")
	dryRun := flag.Bool("dry-run", false, "report counts without writing anything")
	watch := flag.Bool("watch", false, "keep running and re-import when files change")
	interval := flag.Duration("interval", 30*time.Second, "directory poll interval in watch mode")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *importPath == "" {
		fmt.Fprintf(os.Stderr, "Usage: liftlog-import -config config.yaml -path /path/to/exports [-user N] [-dry-run] [-watch]\n")
		fmt.Fprintf(os.Stderr, "       liftlog-import -server <URL> -token <session token> -path /path/to/exports\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	info, err := os.Stat(*importPath)
	if err != nil || !info.IsDir() {
		log.Error("import path does not exist or is not a directory", "path", *importPath)
		os.Exit(1)
	}

	if *dryRun {
		log.Info("DRY RUN mode — nothing will be written")
	}

	// Finished files are tracked next to the exports so a re-run, or a watch
	// tick, only touches new or changed files.
	state, err := importer.OpenStateDB(*importPath)
	if err != nil {
		log.Error("failed to open import state", "error", err)
		os.Exit(1)
	}
	defer state.Close()

	ctx := context.Background()
	var runImport func()

	if *serverURL != "" {
		if *token == "" {
			fmt.Fprintln(os.Stderr, "Error: -token is required with -server")
			os.Exit(1)
		}
		client := importer.NewClient(*serverURL, *token)
		log.Info("remote mode", "server", *serverURL)
		runImport = func() { remoteImport(*importPath, client, state, *dryRun, log) }
	} else {
		cfg, err := config.Load(*configPath)
		if err != nil {
			log.Error("failed to load config", "error", err)
			os.Exit(1)
		}

		dsn := cfg.Database.DSN()
		if err := store.RunMigrations(dsn, "migrations"); err != nil {
			log.Error("migration failed", "error", err)
			os.Exit(1)
		}
		log.Info("migrations applied")

		db, err := store.New(ctx, dsn)
		if err != nil {
			log.Error("failed to connect database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		log.Info("database connected")

		imp := importer.New(db, state, *userID, log, *dryRun)
		runImport = func() {
			stats, err := imp.Import(ctx, *importPath)
			if err != nil {
				log.Error("import failed", "error", err)
			}
			printStats(log, stats)
		}
	}

	runImport()
	if !*watch {
		log.Info("import complete")
		return
	}

	watchDir(ctx, *importPath, *interval, runImport, log)
}

// remoteImport walks the directory and sends each new CSV to the server's
// import endpoint, recording finished files in the state DB the same way
// the local importer does.
func remoteImport(dir string, client *importer.Client, state *importer.StateDB, dryRun bool, log *slog.Logger) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Error("reading import directory", "path", dir, "error", err)
		return
	}

	var processed, skipped, errored, sets int
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".csv") {
			continue
		}
		path := filepath.Join(dir, entry.Name())

		info, err := entry.Info()
		if err != nil {
			errored++
			log.Error("stat failed", "file", entry.Name(), "error", err)
			continue
		}
		hash, err := importer.HashFile(path)
		if err != nil {
			errored++
			log.Error("hashing failed", "file", entry.Name(), "error", err)
			continue
		}
		done, err := state.IsImported(entry.Name(), info.Size(), hash)
		if err != nil {
			errored++
			log.Error("state check failed", "file", entry.Name(), "error", err)
			continue
		}
		if done {
			skipped++
			log.Info("skipping file (already imported)", "file", entry.Name())
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			errored++
			log.Error("reading failed", "file", entry.Name(), "error", err)
			continue
		}
		format := importer.DetectFormat(data)

		if dryRun {
			log.Info("dry run: would upload", "file", entry.Name(), "format", format)
			processed++
			continue
		}

		committed, err := client.SendCSV(format, data)
		if err != nil {
			errored++
			log.Error("upload failed", "file", entry.Name(), "error", err)
			continue
		}
		if err := state.MarkImported(entry.Name(), info.Size(), hash); err != nil {
			log.Error("recording state failed", "file", entry.Name(), "error", err)
		}
		processed++
		sets += committed
		log.Info("uploaded file", "file", entry.Name(), "format", format, "sets", committed)
	}

	log.Info("import stats",
		"files_processed", processed,
		"files_skipped", skipped,
		"files_errored", errored,
		"sets_imported", sets,
	)
}

// watchDir polls the directory and schedules a debounced re-import whenever
// the newest CSV modification time moves. The debounce absorbs a sync tool
// writing several files in a burst.
func watchDir(ctx context.Context, dir string, interval time.Duration, runImport func(), log *slog.Logger) {
	deb := debounce.New(2 * time.Second)
	defer deb.Stop()

	log.Info("watching for new exports", "path", dir, "interval", interval.String())

	last := newestCSV(dir)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if newest := newestCSV(dir); newest.After(last) {
				last = newest
				log.Info("directory changed, scheduling import")
				deb.Schedule(runImport)
			}
		}
	}
}

func newestCSV(dir string) time.Time {
	var newest time.Time
	entries, err := os.ReadDir(dir)
	if err != nil {
		return newest
	}
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".csv" {
			continue
		}
		if info, err := e.Info(); err == nil && info.ModTime().After(newest) {
			newest = info.ModTime()
		}
	}
	return newest
}

func printStats(log *slog.Logger, stats *importer.Stats) {
	if stats == nil {
		return
	}
	log.Info("import stats",
		"files_processed", stats.FilesProcessed,
		"files_skipped", stats.FilesSkipped,
		"files_errored", stats.FilesErrored,
		"sets_imported", stats.SetsImported,
	)
}
