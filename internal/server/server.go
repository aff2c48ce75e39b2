// Package server exposes the conversion pipeline over HTTP.
package server

import (
	"embed"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/thywilljoshua/pdf2md/internal/convert"
	"github.com/thywilljoshua/pdf2md/internal/logging"
	"github.com/thywilljoshua/pdf2md/internal/markdown"
	"github.com/thywilljoshua/pdf2md/internal/registry"
)

//go:embed static/index.html
var static embed.FS

// Models lists the back-ends a caller may pick.
type Models interface {
	ListAvailable() []registry.ModelInfo
}

type Server struct {
	pipeline  *convert.Pipeline
	models    Models
	renderer  *markdown.Renderer
	maxUpload int64
	log       *zap.Logger
}

func New(pipeline *convert.Pipeline, models Models, maxUpload int64, log *zap.Logger) *Server {
	log = logging.OrNop(log)
	return &Server{
		pipeline:  pipeline,
		models:    models,
		renderer:  markdown.NewRenderer(),
		maxUpload: maxUpload,
		log:       log.Named("http"),
	}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(s.requestLog)
	r.Use(chimiddleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/health", s.handleHealth)
	r.Get("/ocr-models", s.handleModels)
	r.Post("/convert", s.handleConvert)
	r.Post("/render", s.handleRender)
	r.Post("/download", s.handleDownload)
	r.Post("/exports/{id}/ocr", s.handleOCR)
	return r
}

func (s *Server) requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			s.log.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("took", time.Since(start)),
				zap.String("request_id", chimiddleware.GetReqID(r.Context())),
			)
		}()
		next.ServeHTTP(ww, r)
	})
}
