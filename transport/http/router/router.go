package router

import (
	"github.com/go-chi/chi/v5"

	"studiodesk/internal/handlers/auth"
	"studiodesk/internal/handlers/booking"
	"studiodesk/internal/handlers/clientele"
	"studiodesk/internal/handlers/gallery"
	"studiodesk/internal/handlers/invoicing"
)

type DomainHandlers struct {
	Auth      auth.Handler
	Booking   booking.Handler
	Clientele clientele.Handler
	Invoicing invoicing.Handler
	Gallery   gallery.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

// SetupRoutes mounts every domain at the root; the storefront calls these
// paths without a version prefix.
func (r *Router) SetupRoutes(router chi.Router) {
	r.DomainHandlers.Auth.Router(router)
	r.DomainHandlers.Booking.Router(router)
	r.DomainHandlers.Clientele.Router(router)
	r.DomainHandlers.Invoicing.Router(router)
	r.DomainHandlers.Gallery.Router(router)
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
