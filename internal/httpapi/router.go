package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter wires every endpoint. CORS allows credentials because the
// refresh token travels in a cookie across origins.
func NewRouter(h *Handler, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/send-verification", h.SendVerificationCode)
		r.Post("/verify-email", h.VerifyEmail)
		r.Get("/check-email", h.CheckEmail)
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.Post("/admin-login", h.AdminLogin)
		r.Post("/refresh", h.Refresh)
		r.Post("/logout", h.Logout)
	})

	r.Group(func(r chi.Router) {
		r.Use(h.RequireAuth)

		r.Route("/api/users", func(r chi.Router) {
			r.Get("/profile", h.Profile)
			r.Put("/password", h.ChangePassword)
			r.Put("/emergency-info", h.UpdateEmergencyInfo)
			r.Delete("/account", h.DeleteAccount)
		})

		r.Route("/api/admin", func(r chi.Router) {
			r.Use(h.RequireAdmin)
			r.Get("/users/{id}", h.AdminGetUser)
		})

		r.Route("/api/vehicles", func(r chi.Router) {
			r.Post("/link", h.LinkVehicle)
			r.Get("/me", h.MyVehicle)
			r.Delete("/link", h.UnlinkVehicle)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("OK"))
	})

	return r
}
