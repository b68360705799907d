package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type healthResponse struct {
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	Environment string    `json:"environment"`
}

func (a *API) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:      "OK",
		Timestamp:   a.now().UTC(),
		Environment: a.opts.Environment,
	})
}

func (a *API) root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Backend server is running!"})
}

// Routes builds the full handler tree. Reads of public content are open;
// every write sits behind Protect and RequireAdmin.
func (a *API) Routes() http.Handler {
	origins := a.opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(a.instrument)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders: []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		MaxAge:         300,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		fail(w, http.StatusNotFound, "Route not found")
	})

	admin := func(r chi.Router) chi.Router {
		return r.With(a.Protect, RequireAdmin)
	}

	r.Get("/", a.root)
	r.Handle("/metrics", a.metrics.Handler())
	r.Get("/uploads/{filename}", a.serveUpload)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", a.health)

		r.Route("/auth", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(a.opts.AuthLimit.Middleware)
				r.Post("/register", a.register)
				r.Post("/login", a.login)
				r.Post("/request-otp", a.requestOTP)
				r.Post("/verify-otp", a.verifyOTP)
			})
			r.With(a.Protect).Get("/me", a.me)
		})

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", a.listProjects)
			r.Get("/{id}", a.getProject)
			admin(r).Post("/", a.createProject)
			admin(r).Put("/{id}", a.updateProject)
			admin(r).Delete("/{id}", a.deleteProject)
		})

		r.Route("/skills", func(r chi.Router) {
			r.Get("/", a.listSkills)
			admin(r).Post("/", a.createSkill)
			admin(r).Put("/{id}", a.updateSkill)
			admin(r).Delete("/{id}", a.deleteSkill)
		})

		r.Route("/experiences", func(r chi.Router) {
			r.Get("/", a.listExperiences)
			admin(r).Post("/", a.createExperience)
			admin(r).Put("/{id}", a.updateExperience)
			admin(r).Delete("/{id}", a.deleteExperience)
		})

		r.Route("/about", func(r chi.Router) {
			r.Get("/", a.listAbout)
			admin(r).Post("/", a.createAbout)
			admin(r).Put("/{id}", a.updateAbout)
			admin(r).Delete("/{id}", a.deleteAbout)
		})

		r.Route("/contacts", func(r chi.Router) {
			r.With(a.opts.ContactLimit.Middleware).Post("/", a.submitContact)
			admin(r).Get("/", a.listContacts)
			admin(r).Put("/{id}/read", a.markContactRead)
			admin(r).Delete("/{id}", a.deleteContact)
		})

		r.Route("/upload", func(r chi.Router) {
			admin(r).Post("/image", a.uploadImage)
			admin(r).Delete("/{filename}", a.deleteUpload)
		})
	})

	return r
}
