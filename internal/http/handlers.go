package http

import (
	"encoding/json"
	"log"
	"math"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	"decision-matrix/internal/matrix"
	"decision-matrix/internal/report"
	"decision-matrix/internal/schemas"
)

// autosave runs the guarded snapshot pass after a mutation, mirroring
// a form that saves on every interaction. Unchanged tables cost one
// digest comparison.
func (s *Server) autosave(r *http.Request) []matrix.TableStatus {
	return s.Saver.SaveAll(r.Context(), s.Session)
}

// decode parses and validates the request body into v.
func (s *Server) decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return err
	}
	return s.Validate.Struct(v)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func (s *Server) getMatrix(w http.ResponseWriter, r *http.Request) {
	view := s.Session.View()
	out := schemas.StateOut{
		Reviewers: view.Reviewers,
		Warnings:  s.SeedWarnings,
	}
	for _, o := range view.Options {
		out.Options = append(out.Options, schemas.OptionOut{Key: o.Key, Label: o.Label, ImageURLs: o.ImageURLs})
	}
	for _, c := range view.Criteria {
		out.Criteria = append(out.Criteria, schemas.CriterionOut{Name: c.Name, Weight: c.Weight})
	}
	for _, rt := range view.Ratings {
		out.Ratings = append(out.Ratings, schemas.RatingOut{Reviewer: rt.Reviewer, Option: rt.Option, Criterion: rt.Criterion, Score: rt.Score})
	}
	for _, c := range view.Comments {
		out.Comments = append(out.Comments, schemas.CommentOut{Criterion: c.Criterion, Option: c.Option, Comment: c.Comment})
	}
	for _, rk := range s.Session.Ranked() {
		out.Ranking = append(out.Ranking, schemas.RankedOut{Option: rk.Key, Label: rk.Label, TotalScore: round2(rk.Score)})
	}
	writeJSON(w, 200, out)
}

func (s *Server) setOptions(w http.ResponseWriter, r *http.Request) {
	var req schemas.OptionsRequest
	if err := s.decode(r, &req); err != nil {
		writeJSON(w, 400, errResp{err.Error()})
		return
	}
	if err := s.Session.SetOptionCount(req.Count); err != nil {
		writeJSON(w, 400, errResp{err.Error()})
		return
	}
	for key, label := range req.Labels {
		if err := s.Session.SetLabel(key, label); err != nil {
			writeJSON(w, 400, errResp{err.Error()})
			return
		}
	}
	writeJSON(w, 200, saveResp{Saved: s.autosave(r)})
}

func (s *Server) addCriterion(w http.ResponseWriter, r *http.Request) {
	var req schemas.CriterionRequest
	if err := s.decode(r, &req); err != nil {
		writeJSON(w, 400, errResp{err.Error()})
		return
	}
	if err := s.Session.AddCriterion(req.Name); err != nil {
		writeJSON(w, 400, errResp{err.Error()})
		return
	}
	writeJSON(w, 200, saveResp{Saved: s.autosave(r)})
}

// param returns a route parameter with any path escaping undone;
// option keys and criterion names contain spaces.
func param(r *http.Request, name string) string {
	raw := chi.URLParam(r, name)
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}

func (s *Server) removeCriterion(w http.ResponseWriter, r *http.Request) {
	name := param(r, "name")
	if err := s.Session.RemoveCriterion(name); err != nil {
		writeJSON(w, 404, errResp{err.Error()})
		return
	}
	writeJSON(w, 200, saveResp{Saved: s.autosave(r)})
}

func (s *Server) setWeight(w http.ResponseWriter, r *http.Request) {
	var req schemas.WeightRequest
	if err := s.decode(r, &req); err != nil {
		writeJSON(w, 400, errResp{err.Error()})
		return
	}
	if err := s.Session.SetWeight(req.Criterion, req.Weight); err != nil {
		writeJSON(w, 400, errResp{err.Error()})
		return
	}
	writeJSON(w, 200, saveResp{Saved: s.autosave(r)})
}

func (s *Server) setRating(w http.ResponseWriter, r *http.Request) {
	var req schemas.RatingRequest
	if err := s.decode(r, &req); err != nil {
		writeJSON(w, 400, errResp{err.Error()})
		return
	}
	if err := s.Session.SetRating(req.Reviewer, req.Option, req.Criterion, req.Score); err != nil {
		writeJSON(w, 400, errResp{err.Error()})
		return
	}
	writeJSON(w, 200, saveResp{Saved: s.autosave(r)})
}

func (s *Server) setComment(w http.ResponseWriter, r *http.Request) {
	var req schemas.CommentRequest
	if err := s.decode(r, &req); err != nil {
		writeJSON(w, 400, errResp{err.Error()})
		return
	}
	if err := s.Session.SetComment(req.Criterion, req.Option, req.Comment); err != nil {
		writeJSON(w, 400, errResp{err.Error()})
		return
	}
	writeJSON(w, 200, saveResp{Saved: s.autosave(r)})
}

func (s *Server) uploadImages(w http.ResponseWriter, r *http.Request) {
	key := param(r, "key")
	if !s.Session.HasOption(key) {
		writeJSON(w, 404, errResp{"unknown option"})
		return
	}
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeJSON(w, 400, errResp{err.Error()})
		return
	}
	files := r.MultipartForm.File["images"]
	if len(files) == 0 {
		writeJSON(w, 400, errResp{"no images attached"})
		return
	}
	// One bad file never aborts the rest of the batch.
	results := make([]schemas.UploadResultOut, 0, len(files))
	for _, fh := range files {
		results = append(results, s.uploadOne(r, key, fh))
	}
	writeJSON(w, 200, map[string]any{"results": results, "saved": s.autosave(r)})
}

func (s *Server) uploadOne(r *http.Request, key string, fh *multipart.FileHeader) schemas.UploadResultOut {
	name := filepath.Base(fh.Filename)
	if s.Session.HasImageNamed(key, name) {
		log.Printf("upload skipped, %q already stored for %s", name, key)
		return schemas.UploadResultOut{Filename: name, Status: "skipped"}
	}
	f, err := fh.Open()
	if err != nil {
		return schemas.UploadResultOut{Filename: name, Status: "error", Error: err.Error()}
	}
	defer f.Close()
	url, err := s.Assets.Upload(r.Context(), f, name)
	if err != nil {
		log.Printf("upload %q failed: %v", name, err)
		return schemas.UploadResultOut{Filename: name, Status: "error", Error: err.Error()}
	}
	_ = s.Session.AddImageURL(key, url)
	return schemas.UploadResultOut{Filename: name, Status: "uploaded", URL: url}
}

func (s *Server) save(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, 200, saveResp{Saved: s.autosave(r)})
}

func (s *Server) getSummary(w http.ResponseWriter, r *http.Request) {
	ranked := s.Session.Ranked()
	out := make([]schemas.RankedOut, 0, len(ranked))
	for _, rk := range ranked {
		out = append(out, schemas.RankedOut{Option: rk.Key, Label: rk.Label, TotalScore: round2(rk.Score)})
	}
	writeJSON(w, 200, out)
}

func (s *Server) getReport(w http.ResponseWriter, r *http.Request) {
	b, err := report.Render(s.Session.Ranked())
	if err != nil {
		writeJSON(w, 500, errResp{err.Error()})
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="decision_summary.pdf"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}
