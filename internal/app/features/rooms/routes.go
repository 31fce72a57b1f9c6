// internal/app/features/rooms/routes.go
package rooms

import "github.com/go-chi/chi/v5"

// Routes returns a subrouter with all room endpoints; mount it at /rooms.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.ServeCreate)
	r.Get("/", h.ServeList)
	r.Get("/code/{joinCode}", h.ServeGetByCode)

	r.Route("/{roomID}", func(r chi.Router) {
		r.Get("/", h.ServeGet)
		r.Delete("/", h.ServeDelete)

		r.Post("/members", h.ServeJoin)
		r.Delete("/members/{userID}", h.ServeRemoveMember)
		r.Post("/members/{userID}/card", h.ServeDrawCard)
		r.Post("/members/{userID}/cards", h.ServeDrawHand)

		r.Post("/captions", h.ServeSubmitCaption)
		r.Delete("/captions", h.ServeClearCaptions)
		r.Post("/score", h.ServeScore)

		r.Patch("/czar", h.ServeRotateCzar)
		r.Patch("/prompt", h.ServeRefreshPrompt)

		r.Get("/qr", h.ServeQR)
	})

	return r
}
