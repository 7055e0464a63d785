package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/dgallion1/docform/internal/doctree"
	"github.com/dgallion1/docform/internal/render"
)

type structureRequest struct {
	Text  string `json:"text"`
	Title string `json:"title"`
}

// Output formats accepted by the render endpoints.
const (
	formatJSON     = "json"
	formatMarkdown = "markdown"
	formatHTML     = "html"
	formatText     = "text"
)

func (s *Server) handleStructure(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeStructureRequest(w, r)
	if !ok {
		return
	}
	doc := s.structurer.Structure(doctree.Raw{Text: req.Text, Title: req.Title})
	writeJSON(w, http.StatusOK, render.Views(doc))
}

func (s *Server) handleStructureRender(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeStructureRequest(w, r)
	if !ok {
		return
	}
	doc := s.structurer.Structure(doctree.Raw{Text: req.Text, Title: req.Title})
	s.writeRendered(w, r, doc)
}

func (s *Server) handleStructureStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"latency":     s.latency.Snapshot(),
		"cache":       s.structurer.Stats(),
		"queue_depth": s.ingester.QueueDepth(),
	})
}

func (s *Server) decodeStructureRequest(w http.ResponseWriter, r *http.Request) (structureRequest, bool) {
	var req structureRequest
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			jsonError(w, fmt.Sprintf("body exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
			return req, false
		}
		jsonError(w, "invalid JSON body: "+err.Error(), http.StatusBadRequest)
		return req, false
	}
	return req, true
}

// writeRendered writes doc in the format named by the "format" query
// parameter, json by default.
func (s *Server) writeRendered(w http.ResponseWriter, r *http.Request, doc *doctree.Document) {
	format := r.URL.Query().Get("format")
	switch format {
	case "", formatJSON:
		writeJSON(w, http.StatusOK, render.Views(doc))
	case formatMarkdown:
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		w.Write([]byte(render.Markdown(doc)))
	case formatHTML:
		page, err := s.html.Render(doc)
		if err != nil {
			s.log.Error("html render failed", "error", err)
			jsonError(w, "failed to render html", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(page))
	case formatText:
		width := render.DefaultWidth
		if v := r.URL.Query().Get("width"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				width = n
			}
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte(render.Terminal(doc, width)))
	default:
		jsonError(w, fmt.Sprintf("unsupported format %q (want json, markdown, html or text)", format), http.StatusBadRequest)
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}
