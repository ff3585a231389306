package http

import (
	"log/slog"
	"net/http"

	"appecon/internal/core"
)

func (s *Server) handleListEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := s.ledger.List(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "List entries failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list entries")
		return
	}
	if entries == nil {
		entries = []core.LedgerEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleCreateEntry(w http.ResponseWriter, r *http.Request) {
	var payload entryPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	entry, err := payload.toEntry()
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if entry.ImportedFrom == "" {
		entry.ImportedFrom = core.SourceManual
	}

	created, err := s.ledger.Add(r.Context(), entry)
	if err != nil {
		slog.ErrorContext(r.Context(), "Create entry failed", "error", err, "description", entry.Description)
		writeError(w, http.StatusInternalServerError, "failed to create entry")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateEntry(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var payload entryPatchPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	patch, err := payload.toPatch()
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	updated, found, err := s.ledger.Update(r.Context(), id, patch)
	if err != nil {
		slog.ErrorContext(r.Context(), "Update entry failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "failed to update entry")
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "Entry not found")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteEntry(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	removed, err := s.ledger.Delete(r.Context(), id)
	if err != nil {
		slog.ErrorContext(r.Context(), "Delete entry failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "failed to delete entry")
		return
	}
	if !removed {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	var payload importPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	source, entries, err := payload.toImport()
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	result, err := s.ledger.Import(r.Context(), source, entries)
	if err != nil {
		slog.ErrorContext(r.Context(), "Import failed", "error", err, "source", source)
		writeError(w, http.StatusInternalServerError, "failed to import entries")
		return
	}
	writeJSON(w, http.StatusOK, result)
}
