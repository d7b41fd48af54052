package companyhttp

import "github.com/go-chi/chi/v5"

// MountRoutes registers the pages and the lookup API.
func (h *Handler) MountRoutes(r chi.Router) {
	if h == nil {
		return
	}
	r.Get("/", h.handleSearch)
	r.Get("/consulta", h.handleResult)
	r.HandleFunc("/api/cnpj", h.handleAPI)
}
