package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/serviguard/roster/backend/internal/config"
	"github.com/serviguard/roster/backend/internal/domain"
	"github.com/serviguard/roster/backend/internal/repository"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	translator  ut.Translator
	mailChannel *amqp.Channel
	redisClient *redis.Client

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, mailCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		translator:  trans,
		mailChannel: mailCh,
		redisClient: rdb,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
	})

	// everything below requires a logged-in operator
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/users", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Post("/", h.CreateUser)
			r.Get("/", h.GetAllUsers)
			r.Get("/{id}", h.GetUser)
		})

		r.Route("/guards", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin, domain.RoleSupervisor})).Post("/", h.CreateGuard)
			r.Get("/", h.GetAllGuards)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.guardInfo)
				r.Get("/", h.GetGuard)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin, domain.RoleSupervisor})).Patch("/", h.UpdateGuard)
				r.Get("/active-assignment", h.CheckActiveAssignment)
			})
		})

		r.Route("/installations", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Post("/", h.CreateInstallation)
			r.Get("/", h.GetAllInstallations)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.installationInfo)
				r.Get("/", h.GetInstallation)
			})
		})

		r.Route("/posts", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin, domain.RoleSupervisor})).Post("/", h.CreatePost)
			r.Get("/", h.GetAllPosts)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.postInfo)
				r.Get("/", h.GetPost)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin, domain.RoleSupervisor})).Patch("/", h.UpdatePost)
			})
		})

		r.Route("/assignments", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin, domain.RoleSupervisor})).Post("/", h.Assign)
			r.Get("/", h.ListAssignments)
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin, domain.RoleSupervisor})).Post("/{id}/close", h.Unassign)
		})

		r.Route("/roster", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin, domain.RoleSupervisor})).Post("/series", h.PaintSeries)
			r.Get("/series", h.GetSeries)
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin, domain.RoleSupervisor})).Post("/grid", h.GenerateGrid)
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin, domain.RoleSupervisor})).Put("/cells", h.UpsertCell)
			r.Get("/cells", h.GetMonthCells)
		})
	})
}
