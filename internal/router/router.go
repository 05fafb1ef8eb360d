package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spendwise-app/spendwise-backend/internal/admin"
	"github.com/spendwise-app/spendwise-backend/internal/expense"
	"github.com/spendwise-app/spendwise-backend/internal/stats"
	"github.com/spendwise-app/spendwise-backend/internal/users"
)

type Router struct {
	Users    *users.Handler
	Expenses *expense.Handler
	Stats    *stats.Handler
	Admin    *admin.Handler

	AuthMW      fiber.Handler
	AuthLimiter fiber.Handler
}

func (r *Router) RegisterRoutes(app *fiber.App) {
	app.Post("/api/users/register", r.AuthLimiter, r.Users.Register)
	app.Post("/api/users/login", r.AuthLimiter, r.Users.Login)
	app.Get("/api/users/profile", r.AuthMW, r.Users.Profile)

	app.Post("/api/expenses", r.AuthMW, r.Expenses.Create)
	app.Post("/api/expenses/bulk", r.AuthMW, r.Expenses.BulkUpload)
	app.Get("/api/expenses", r.AuthMW, r.Expenses.List)
	app.Get("/api/expenses/stats", r.AuthMW, r.Stats.Overview)
	app.Get("/api/expenses/report", r.AuthMW, r.Stats.Report)
	app.Put("/api/expenses/:id", r.AuthMW, r.Expenses.Update)
	app.Patch("/api/expenses/:id", r.AuthMW, r.Expenses.Update)
	app.Delete("/api/expenses", r.AuthMW, r.Expenses.Delete)

	if r.Admin != nil {
		app.Get("/api/admin/overview", r.AuthMW, admin.RequireAdmin(), r.Admin.Overview)
	}
}
