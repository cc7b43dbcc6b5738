package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/wakanda-gov/platform/internal/api/http/handlers"
	"github.com/wakanda-gov/platform/internal/auth"
	"github.com/wakanda-gov/platform/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health  *handlers.HealthHandler
	Meta    *handlers.MetaHandler
	Users   *handlers.UsersHandler
	Jobs    *handlers.JobsHandler
	Finance *handlers.FinanceHandler
	Energy  *handlers.EnergyHandler
	Carbon  *handlers.CarbonHandler
	Policy  *handlers.PolicyHandler
	AI      *handlers.AIHandler
	Auth    *auth.Middleware
}

// RegisterRoutes wires HTTP routes. Routes declare their access level
// explicitly: public, optional identity, authenticated, or an exact role
// allow-list on top of mandatory auth.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/", cfg.Meta.Root)
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api/v1")
	api.Get("/info", cfg.Meta.Info)
	api.Get("/admin/metrics", cfg.Auth.Handle, auth.RequireRoles(domain.RoleAdmin), cfg.Meta.Metrics)

	users := api.Group("/users")
	users.Post("/register", cfg.Users.Register)
	users.Post("/login", cfg.Users.Login)
	users.Get("/me", cfg.Auth.Handle, cfg.Users.Me)
	users.Put("/me", cfg.Auth.Handle, cfg.Users.UpdateMe)
	users.Get("/stats", cfg.Auth.Handle, auth.RequireRoles(domain.RoleAdmin, domain.RoleManager), cfg.Users.Stats)
	users.Get("/", cfg.Auth.Handle, auth.RequireRoles(domain.RoleAdmin, domain.RoleManager), cfg.Users.List)
	users.Get("/:id", cfg.Auth.Handle, cfg.Users.Get)
	users.Put("/:id", cfg.Auth.Handle, auth.RequireRoles(domain.RoleAdmin), cfg.Users.UpdateByID)
	users.Delete("/:id", cfg.Auth.Handle, auth.RequireRoles(domain.RoleAdmin), cfg.Users.Delete)

	jobs := api.Group("/jobs")
	jobs.Post("/", cfg.Auth.Handle, auth.RequireRoles(domain.RoleAdmin, domain.RoleManager), cfg.Jobs.Create)
	jobs.Get("/", cfg.Auth.Optional, cfg.Jobs.List)
	jobs.Get("/:id", cfg.Auth.Optional, cfg.Jobs.Get)
	jobs.Post("/:id/apply", cfg.Auth.Handle, cfg.Jobs.Apply)

	finance := api.Group("/finance")
	finance.Post("/budgets", cfg.Auth.Handle, auth.RequireRoles(domain.RoleAdmin, domain.RoleManager), cfg.Finance.CreateBudget)
	finance.Get("/budgets", cfg.Auth.Handle, auth.RequireRoles(domain.RoleAdmin, domain.RoleManager), cfg.Finance.ListBudgets)
	finance.Post("/transactions", cfg.Auth.Handle, cfg.Finance.CreateTransaction)
	finance.Get("/analytics", cfg.Auth.Handle, auth.RequireRoles(domain.RoleAdmin, domain.RoleManager), cfg.Finance.Analytics)

	energy := api.Group("/energy", cfg.Auth.Handle)
	energy.Post("/consumption", cfg.Energy.CreateConsumption)
	energy.Get("/consumption", cfg.Energy.ListConsumption)
	energy.Get("/stats", cfg.Energy.Stats)

	carbon := api.Group("/carbon", cfg.Auth.Handle)
	carbon.Post("/emissions", cfg.Carbon.CreateEmission)
	carbon.Get("/emissions", cfg.Carbon.ListEmissions)
	carbon.Get("/summary", cfg.Carbon.Summary)

	policy := api.Group("/policy")
	policy.Post("/documents", cfg.Auth.Handle, auth.RequireRoles(domain.RoleAdmin, domain.RoleManager), cfg.Policy.CreateDocument)
	policy.Get("/documents/search", cfg.Auth.Optional, cfg.Policy.SearchDocuments)
	policy.Get("/documents", cfg.Auth.Optional, cfg.Policy.ListDocuments)

	aiGroup := api.Group("/ai", cfg.Auth.Handle)
	aiGroup.Post("/chat", cfg.AI.Chat)
	aiGroup.Get("/models", cfg.AI.Models)
}
