package server

import (
	"net/http"

	"github.com/colonyops/feedboard/internal/api"
	"github.com/colonyops/feedboard/internal/core/comment"
	"github.com/go-chi/chi/v5"
)

func (s *Server) createComment(w http.ResponseWriter, r *http.Request) {
	var in api.CommentRequest
	if err := decode(r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}

	actor := userFrom(r.Context()).Actor()
	c, err := s.svc.CreateComment(r.Context(), actor, chi.URLParam(r, "id"), in.Content)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.respondComment(w, r, http.StatusCreated, c, actor)
}

func (s *Server) updateComment(w http.ResponseWriter, r *http.Request) {
	var in api.CommentRequest
	if err := decode(r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}

	actor := userFrom(r.Context()).Actor()
	c, err := s.svc.UpdateComment(r.Context(), actor, chi.URLParam(r, "id"), in.Content)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.respondComment(w, r, http.StatusOK, c, actor)
}

func (s *Server) deleteComment(w http.ResponseWriter, r *http.Request) {
	actor := userFrom(r.Context()).Actor()
	if err := s.svc.DeleteComment(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, api.MessageResponse{Message: "Comment deleted successfully"})
}

// respondComment writes c with its author. Only the author may create or
// edit, so the author is the acting user.
func (s *Server) respondComment(w http.ResponseWriter, r *http.Request, status int, c comment.Comment, actor comment.Actor) {
	names := comment.Names{actor.ID: actor.DisplayName}
	s.writeJSON(w, r, status, api.CommentResponse{Comment: api.NewComment(c, names)})
}
