package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/thywilljoshua/pdf2md/internal/convert"
	"github.com/thywilljoshua/pdf2md/internal/markdown"
	"github.com/thywilljoshua/pdf2md/internal/registry"
)

const multipartMemory = 32 << 20

type convertResponse struct {
	Markdown    string   `json:"markdown"`
	PreviewHTML string   `json:"preview_html"`
	ExportID    string   `json:"export_id"`
	Images      []string `json:"images"`
}

type ocrResponse struct {
	Markdown    string            `json:"markdown"`
	PreviewHTML string            `json:"preview_html"`
	OCR         map[string]string `json:"ocr"`
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	page, err := static.ReadFile("static/index.html")
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Page unavailable")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(page)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleModels(w http.ResponseWriter, _ *http.Request) {
	models := s.models.ListAvailable()
	if models == nil {
		models = []registry.ModelInfo{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"models": models})
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			writeError(w, http.StatusRequestEntityTooLarge, "File is too large")
			return
		}
		writeError(w, http.StatusBadRequest, "No file provided")
		return
	}
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}

	file, hdr, err := r.FormFile("pdf")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer file.Close()
	if !strings.EqualFold(filepath.Ext(hdr.Filename), ".pdf") {
		writeError(w, http.StatusBadRequest, "Only PDF files are supported")
		return
	}
	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Could not read the uploaded file")
		return
	}

	res, err := s.pipeline.Convert(r.Context(), data, r.FormValue("model"))
	if err != nil {
		s.writeConvertError(w, err)
		return
	}
	preview, err := s.renderer.Render(res.Markdown)
	if err != nil {
		s.log.Error("preview render failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Could not render the preview")
		return
	}
	writeJSON(w, http.StatusOK, convertResponse{
		Markdown:    res.Markdown,
		PreviewHTML: preview,
		ExportID:    res.ExportID,
		Images:      res.Images,
	})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	html, err := s.renderer.Render(markdown.Normalize(r.FormValue("text")))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Could not render the preview")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"preview_html": html})
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	text := r.FormValue("text")
	name := DownloadName(r.FormValue("filename"))
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	_, _ = io.WriteString(w, text)
}

func (s *Server) handleOCR(w http.ResponseWriter, r *http.Request) {
	md, ocr, err := s.pipeline.Overlay(r.Context(), r.FormValue("markdown"), chi.URLParam(r, "id"), r.FormValue("model"))
	if err != nil {
		s.writeConvertError(w, err)
		return
	}
	preview, err := s.renderer.Render(md)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Could not render the preview")
		return
	}
	writeJSON(w, http.StatusOK, ocrResponse{Markdown: md, PreviewHTML: preview, OCR: ocr})
}

func (s *Server) writeConvertError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch convert.KindOf(err) {
	case convert.KindInput:
		status = http.StatusBadRequest
	case convert.KindUnavailable:
		status = http.StatusServiceUnavailable
	}
	writeError(w, status, convert.Message(err))
}

// DownloadName keeps letters, digits, '-', '_', '.' and spaces from name and forces a .txt
// extension.
func DownloadName(name string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '-', r == '_', r == '.', r == ' ':
			b.WriteRune(r)
		}
	}
	clean := strings.Trim(strings.TrimSpace(b.String()), ".")
	if clean == "" {
		return "output.txt"
	}
	if !strings.HasSuffix(strings.ToLower(clean), ".txt") {
		clean += ".txt"
	}
	return clean
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
