package server

import (
	"net/http"
	"os"

	"github.com/bagdasarian/task-groups/internal/handler"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
)

type RouterOptions struct {
	AllowedOrigins []string
	// StaticDir раздается для всех путей, не занятых API. Пусто - выключено.
	StaticDir string
}

func NewRouter(h *handler.Handler, opts RouterOptions, logger zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(handler.AccessLog(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
	})

	r.Group(func(r chi.Router) {
		r.Use(h.RequireAuth)

		r.Route("/groups", func(r chi.Router) {
			r.Post("/", h.CreateGroup)
			r.Get("/", h.ListGroups)
			r.Get("/join/{token}", h.JoinGroup)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.GetGroup)
				r.Get("/members", h.ListMembers)
				r.Delete("/members/{userID}", h.RemoveMember)
				r.Post("/invite", h.CreateInvite)
			})
		})

		r.Route("/tasks", func(r chi.Router) {
			r.Post("/", h.CreateTask)
			r.Get("/group/{id}", h.ListGroupTasks)
			r.Put("/{id}", h.UpdateTask)
			r.Delete("/{id}", h.DeleteTask)
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", h.ListUsers)
			r.Get("/{id}", h.GetUser)
		})
	})

	if opts.StaticDir != "" {
		r.NotFound(http.FileServer(http.FS(os.DirFS(opts.StaticDir))).ServeHTTP)
	}

	return r
}
