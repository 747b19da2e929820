package httpserver

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/lyubomiriliev/MBCenter-Website-sub001/internal/cms"
	"github.com/lyubomiriliev/MBCenter-Website-sub001/internal/handlers"
	"github.com/lyubomiriliev/MBCenter-Website-sub001/internal/i18n"
	custommw "github.com/lyubomiriliev/MBCenter-Website-sub001/internal/middleware"
	"github.com/lyubomiriliev/MBCenter-Website-sub001/internal/offers"
	"github.com/lyubomiriliev/MBCenter-Website-sub001/internal/rbac"
	"github.com/lyubomiriliev/MBCenter-Website-sub001/internal/view"
	"github.com/lyubomiriliev/MBCenter-Website-sub001/public"
)

// Config holds the collaborators the router needs. Everything is injected so
// tests can swap the offer store and the authenticator.
type Config struct {
	Address       string
	ReadTimeout   time.Duration
	Bundle        *i18n.Bundle
	Engine        *view.Engine
	Sessions      custommw.SessionStore
	Authenticator custommw.Authenticator
	Offers        offers.Service
	Content       *cms.Store
}

// New constructs the HTTP server with the full middleware stack and routes.
func New(cfg Config) *http.Server {
	readTimeout := cfg.ReadTimeout
	if readTimeout <= 0 {
		readTimeout = 10 * time.Second
	}
	return &http.Server{
		Addr:         cfg.Address,
		Handler:      Router(cfg),
		ReadTimeout:  readTimeout,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// Router assembles the route tree: static assets, the locale-prefixed public
// site, the login page and the two role-gated admin areas.
func Router(cfg Config) chi.Router {
	authenticator := cfg.Authenticator
	if authenticator == nil {
		authenticator = custommw.DefaultAuthenticator()
	}

	h := handlers.New(cfg.Bundle, cfg.Engine, cfg.Content, cfg.Offers, authenticator)

	router := chi.NewRouter()
	router.Use(chimw.RequestID)
	router.Use(chimw.RealIP)
	router.Use(chimw.Logger)
	router.Use(chimw.Recoverer)
	router.Use(chimw.Compress(5))
	router.Use(chimw.Timeout(30 * time.Second))

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	staticContent, err := public.StaticFS()
	if err != nil {
		log.Fatalf("embed static: %v", err)
	}
	router.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServer(http.FS(staticContent))))

	fallback := cfg.Bundle.Fallback()
	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/"+fallback, http.StatusFound)
	})

	router.Route("/{locale}", func(r chi.Router) {
		r.Use(custommw.Locale(cfg.Bundle, h.NotFound))
		r.Use(custommw.Session(cfg.Sessions))

		r.Get("/", h.Home)
		r.Get("/services", h.Services)
		r.Get("/booking", h.Booking)
		r.Post("/booking", h.BookingSubmit)
		r.Get("/contact", h.Contact)

		r.Get("/admin-login", h.LoginForm)
		r.Post("/admin-login", h.LoginSubmit)

		r.Route("/mb-admin", func(r chi.Router) {
			r.Use(custommw.RequireRoles(rbac.RoleAdmin))
			r.Use(custommw.CSRF())

			area := handlers.AreaAdmin
			r.Get("/", redirectToOffers(area))
			r.Get("/offers", h.OffersList(area))
			r.Get("/offers/new", h.OfferNew(area))
			r.Post("/offers", h.OfferCreate(area))
			r.Get("/offers/{id}", h.OfferEdit(area))
			r.Post("/offers/{id}", h.OfferUpdate(area))
			r.Post("/logout", h.Logout)
		})

		r.Route("/mech-admin", func(r chi.Router) {
			r.Use(custommw.RequireRoles(rbac.RoleMechanic, rbac.RoleAdmin))
			r.Use(custommw.CSRF())

			area := handlers.AreaMechanic
			r.Get("/", redirectToOffers(area))
			r.Get("/offers", h.OffersList(area))
			r.Get("/offers/{id}", h.OfferEdit(area))
			r.Post("/offers/{id}", h.OfferUpdate(area))
			r.Post("/logout", h.Logout)
		})

		r.NotFound(h.NotFound)
	})

	router.NotFound(h.NotFound)

	return router
}

func redirectToOffers(area handlers.OfferArea) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		locale, _ := custommw.LocaleFromContext(r.Context())
		http.Redirect(w, r, "/"+locale+"/"+area.Marker+"/offers", http.StatusFound)
	}
}
