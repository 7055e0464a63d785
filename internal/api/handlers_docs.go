package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dgallion1/docform/internal/doctree"
)

// handleGetStructured structures a stored document on read. Pre-rendered
// markup is preferred over the raw string when the store has it.
func (s *Server) handleGetStructured(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")
	content, err := s.docs.GetContent(r.Context(), docID)
	if err != nil {
		s.log.Error("load content failed", "doc_id", docID, "error", err)
		jsonError(w, "failed to load document: "+err.Error(), http.StatusBadGateway)
		return
	}
	if content == nil {
		jsonError(w, "document not found", http.StatusNotFound)
		return
	}

	doc := s.structurer.Structure(doctree.Raw{Text: content.Text(), Title: content.Title})
	s.writeRendered(w, r, doc)
}

// handleDeleteDocument deletes a document's content, structure, meta and
// hash index entry.
func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")
	if err := s.docs.DeleteDocument(r.Context(), docID); err != nil {
		s.log.Error("delete failed", "doc_id", docID, "error", err)
		jsonError(w, "failed to delete document: "+err.Error(), http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": docID})
}
