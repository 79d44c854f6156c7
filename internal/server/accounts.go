package server

import (
	"net/http"

	"github.com/colonyops/feedboard/internal/api"
	"github.com/colonyops/feedboard/internal/core/identity"
)

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var in api.LoginRequest
	if err := decode(r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}

	creds, err := s.svc.Login(r.Context(), in.Email, in.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.respondAuth(w, r, http.StatusOK, creds)
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var in identity.Registration
	if err := decode(r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}

	creds, err := s.svc.Register(r.Context(), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.respondAuth(w, r, http.StatusCreated, creds)
}

func (s *Server) respondAuth(w http.ResponseWriter, r *http.Request, status int, creds identity.Credentials) {
	u, err := s.svc.User(r.Context(), creds.User.ID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, status, api.AuthResponse{Token: creds.Token, User: u})
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Logout(r.Context(), claimsFrom(r.Context())); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, api.MessageResponse{Message: "Logged out successfully"})
}

func (s *Server) currentUser(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, api.UserResponse{User: userFrom(r.Context())})
}
