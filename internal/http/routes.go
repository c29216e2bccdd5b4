package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	m "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"

	"decision-matrix/internal/config"
	"decision-matrix/internal/matrix"
	"decision-matrix/internal/sheets"
)

// Uploader is the slice of the blob store the handlers need.
type Uploader interface {
	Upload(ctx context.Context, r io.Reader, filename string) (string, error)
}

type Server struct {
	DB       *sqlx.DB
	Store    sheets.Store
	Assets   Uploader
	Session  *matrix.Session
	Saver    *matrix.Saver
	Validate *validator.Validate
	APIToken string

	// SeedWarnings are load recoveries from startup, surfaced on every
	// state read until the next restart.
	SeedWarnings []string
}

func NewServer(cfg *config.Config, dbx *sqlx.DB, store sheets.Store, assets Uploader, session *matrix.Session, warnings []string) *http.Server {
	s := &Server{
		DB:           dbx,
		Store:        store,
		Assets:       assets,
		Session:      session,
		Saver:        matrix.NewSaver(store),
		Validate:     validator.New(),
		APIToken:     cfg.APIToken,
		SeedWarnings: warnings,
	}
	return &http.Server{Addr: ":" + cfg.Port, Handler: s.Routes()}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(m.RequestID, m.RealIP, m.Logger, m.Recoverer)

	// Token protected
	r.Group(func(r chi.Router) {
		r.Use(RequireAPIToken(s.APIToken))
		r.Put("/matrix/options", s.setOptions)
		r.Post("/matrix/criteria", s.addCriterion)
		r.Delete("/matrix/criteria/{name}", s.removeCriterion)
		r.Put("/matrix/weights", s.setWeight)
		r.Put("/matrix/ratings", s.setRating)
		r.Put("/matrix/comments", s.setComment)
		r.Post("/matrix/options/{key}/images", s.uploadImages)
		r.Post("/matrix/save", s.save)
	})

	r.Get("/matrix", s.getMatrix)
	r.Get("/matrix/summary", s.getSummary)
	r.Get("/matrix/report", s.getReport)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if s.DB != nil {
			if err := s.DB.Ping(); err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(`{"status":"db error"}`))
				return
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	return r
}

type errResp struct {
	Error string `json:"error"`
}

type saveResp struct {
	Saved []matrix.TableStatus `json:"saved"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
