package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/colonyops/feedboard/internal/api"
	"github.com/colonyops/feedboard/internal/core/feedback"
	"github.com/colonyops/feedboard/internal/core/logging"
	"github.com/go-chi/chi/v5"
	"github.com/hay-kot/criterio"
)

const maxPerPage = 100

func (s *Server) listFeedback(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilter(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	page, err := s.svc.ListFeedback(r.Context(), f)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, page)
}

func parseFilter(r *http.Request) (feedback.Filter, error) {
	q := r.URL.Query()
	var (
		f    feedback.Filter
		errs criterio.FieldErrorsBuilder
	)

	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			errs = errs.Append("page", fmt.Errorf("page must be a positive integer"))
		}
		f.Page = n
	}

	if v := q.Get("per_page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxPerPage {
			errs = errs.Append("per_page", fmt.Errorf("per_page must be between 1 and %d", maxPerPage))
		}
		f.PerPage = n
	}

	if v := q.Get("category"); v != "" {
		c, err := feedback.ParseCategory(v)
		if err != nil {
			errs = errs.Append("category", err)
		}
		f.Category = c
	}

	f.Search = q.Get("search")
	return f.Normalize(), errs.ToError()
}

func (s *Server) showFeedback(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ctx := logging.WithFeedbackID(r.Context(), id)

	th, err := s.svc.Thread(ctx, id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, api.FeedbackResponse{
		Feedback: th.Feedback,
		Comments: api.Comments(th.Comments, th.Names),
	})
}

func (s *Server) createFeedback(w http.ResponseWriter, r *http.Request) {
	var in api.FeedbackRequest
	if err := decode(r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}

	user := userFrom(r.Context())
	f, err := s.svc.CreateFeedback(r.Context(), user.Actor(), in.Draft())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	f.AuthorName = user.Name
	s.writeJSON(w, r, http.StatusCreated, api.CreatedFeedbackResponse{Feedback: f})
}
