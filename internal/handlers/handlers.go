package handlers

import (
	"github.com/lyubomiriliev/MBCenter-Website-sub001/internal/cms"
	"github.com/lyubomiriliev/MBCenter-Website-sub001/internal/i18n"
	"github.com/lyubomiriliev/MBCenter-Website-sub001/internal/middleware"
	"github.com/lyubomiriliev/MBCenter-Website-sub001/internal/offers"
	"github.com/lyubomiriliev/MBCenter-Website-sub001/internal/view"
)

// Handlers bundles the page handlers with their shared collaborators. One
// instance serves every route; all fields are safe for concurrent use.
type Handlers struct {
	bundle  *i18n.Bundle
	engine  *view.Engine
	content *cms.Store
	offers  offers.Service
	auth    middleware.Authenticator
}

// New wires a handler set. content may be nil when no markdown pages are
// configured; the services page then renders without the long-form block.
func New(bundle *i18n.Bundle, engine *view.Engine, content *cms.Store, svc offers.Service, auth middleware.Authenticator) *Handlers {
	return &Handlers{
		bundle:  bundle,
		engine:  engine,
		content: content,
		offers:  svc,
		auth:    auth,
	}
}
