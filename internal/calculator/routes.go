package calculator

import "github.com/go-chi/chi/v5"

// RegisterRoutes mounts all calculator endpoints onto the given router
// under basePath, one POST route per operation.
func RegisterRoutes(r chi.Router, basePath string, h *Handler) {
	r.Route(basePath, func(r chi.Router) {
		for _, op := range Operations() {
			r.Post("/"+op.Route(), h.Calculate(op))
		}
		r.Get("/evaluate", h.Evaluate)
	})
}
