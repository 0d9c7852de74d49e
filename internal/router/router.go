package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"forum-api/internal/config"
	"forum-api/internal/handler"
	"forum-api/internal/middleware"
)

type Handlers struct {
	Health       *handler.HealthHandler
	Auth         *handler.AuthHandler
	User         *handler.UserHandler
	Post         *handler.PostHandler
	Announcement *handler.AnnouncementHandler
	Payment      *handler.PaymentHandler
	Audit        *handler.AuditHandler
}

func New(cfg *config.Config, authMiddleware *middleware.AuthMiddleware, h Handlers) http.Handler {
	r := chi.NewRouter()
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.AuthRateLimitRPM)

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.SecurityHeaders)
	r.Use(rateLimitMiddleware.Handler)

	r.Get("/", h.Health.Root)
	r.Get("/health", h.Health.Health)

	r.Group(func(api chi.Router) {
		api.Use(middleware.Timeout(cfg.RequestTimeout))

		api.Post("/jwt", h.Auth.Issue)

		api.With(authMiddleware.RequireAdmin).Get("/users", h.User.List)
		api.Post("/users", h.User.Register)
		api.Get("/users/{email}", h.User.Get)
		api.With(authMiddleware.RequireSelf("email")).Get("/users/admin/{email}", h.User.AdminStatus)
		api.With(authMiddleware.RequireAdmin).Patch("/users/admin/{id}", h.User.Promote)

		api.Get("/post", h.Post.List)
		api.Post("/post", h.Post.Create)
		api.Get("/post/post_time", h.Post.ListPage)
		api.Get("/post/post_time/tag/{tag}", h.Post.ListByTag)
		api.Get("/post/post_time/id/{id}", h.Post.Get)
		api.Get("/post/post_time/{email}", h.Post.ListByEmail)
		api.With(authMiddleware.RequireAuth).Delete("/post/post_time/{email}/{id}", h.Post.Delete)
		api.Get("/postCount", h.Post.Count)

		api.Get("/announcement", h.Announcement.List)
		api.Post("/announcement", h.Announcement.Create)
		api.Get("/announcementCount", h.Announcement.Count)

		api.Post("/create-payment-intent", h.Payment.CreateIntent)
		api.With(authMiddleware.RequireSelf("email")).Get("/payments/{email}", h.Payment.ListByEmail)
		api.With(authMiddleware.RequireAuth).Post("/payments", h.Payment.Record)

		api.With(authMiddleware.RequireAdmin).Get("/audit", h.Audit.List)
	})

	return r
}
