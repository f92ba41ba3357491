package server

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/claude/liftlog/internal/importer"
	"github.com/claude/liftlog/internal/store"
	"github.com/claude/liftlog/internal/workout"
	"github.com/google/uuid"
)

// importResponse reports how much of an upload made it in. When a chunk
// fails partway, committed keeps the rows already written — earlier chunks
// are never rolled back.
type importResponse struct {
	Parsed    int    `json:"parsed"`
	Committed int    `json:"committed"`
	Error     string `json:"error,omitempty"`
}

func (s *Server) handleImportStrong(w http.ResponseWriter, r *http.Request) {
	s.handleImport(w, r, importer.ParseStrong)
}

func (s *Server) handleImportBackup(w http.ResponseWriter, r *http.Request) {
	s.handleImport(w, r, importer.ParseBackup)
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request,
	parse func(io.Reader) ([]workout.LoggedSet, error)) {
	user, ok := mustUser(w, r)
	if !ok {
		return
	}

	sets, err := parse(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid CSV: " + err.Error()})
		return
	}
	if len(sets) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "no importable rows found"})
		return
	}

	for i := range sets {
		sets[i].ID = uuid.NewString()
		sets[i].UserID = user.ID
	}

	committed, err := s.db.SaveBatch(r.Context(), sets)
	resp := importResponse{Parsed: len(sets), Committed: committed}
	if err != nil {
		s.log.Error("import failed partway", "committed", committed, "parsed", len(sets), "error", err)
		resp.Error = "import failed partway; committed rows were kept"
		writeJSON(w, http.StatusInternalServerError, resp)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	user, ok := mustUser(w, r)
	if !ok {
		return
	}

	page, err := s.db.QuerySets(r.Context(), store.SetFilter{UserID: user.ID}, "", 0)
	if err != nil {
		s.storeError(w, "export", err)
		return
	}
	if len(page.Sets) == 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no data to export"})
		return
	}

	filename := fmt.Sprintf("liftlog_backup_%s.csv", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	if err := importer.WriteBackup(w, page.Sets); err != nil {
		s.log.Error("export write failed", "error", err)
	}
}

func (s *Server) handleDeleteAllData(w http.ResponseWriter, r *http.Request) {
	user, ok := mustUser(w, r)
	if !ok {
		return
	}

	deleted, err := s.db.DeleteAllForUser(r.Context(), user.ID)
	if err != nil {
		s.log.Error("wipe failed partway", "deleted", deleted, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"error":   "delete failed partway; removed rows stay removed",
			"deleted": deleted,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": deleted})
}

func (s *Server) handleDataStats(w http.ResponseWriter, r *http.Request) {
	user, ok := mustUser(w, r)
	if !ok {
		return
	}
	stats, err := s.db.GetDataStats(r.Context(), user.ID)
	if err != nil {
		s.storeError(w, "data stats", err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
