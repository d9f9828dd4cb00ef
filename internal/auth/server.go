package auth

import (
	"github.com/go-chi/chi/v5"
)

type Server struct {
	svc *Service
}

func NewServer(svc *Service) *Server {
	return &Server{svc: svc}
}

// Routes registers the user and authentication endpoints.
func (s *Server) Routes(r chi.Router) {
	r.Post("/users", s.handleRegister)
	r.Get("/users/{id}", s.handleGetUser)

	r.Post("/authentications", s.handleLogin)
	r.Put("/authentications", s.handleRefresh)
	r.Delete("/authentications", s.handleLogout)
}
