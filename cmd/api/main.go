package main

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spendwise-app/spendwise-backend/internal/admin"
	"github.com/spendwise-app/spendwise-backend/internal/auth"
	"github.com/spendwise-app/spendwise-backend/internal/config"
	"github.com/spendwise-app/spendwise-backend/internal/expense"
	"github.com/spendwise-app/spendwise-backend/internal/router"
	"github.com/spendwise-app/spendwise-backend/internal/stats"
	"github.com/spendwise-app/spendwise-backend/internal/users"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("error creating pgx pool: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("error pinging database: %v", err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "internal server error"

			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				code = fiberErr.Code
				message = fiberErr.Message
			}

			return c.Status(code).JSON(fiber.Map{"message": message})
		},
	})

	app.Use(router.CorsMiddleware(cfg.CORSOrigin))
	app.Use(requestLogger())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})

	userRepo := users.NewRepository(pool)
	userHandler := users.NewHandler(userRepo, cfg.JWTSecret, cfg.TokenTTL)
	expenseRepo := expense.NewRepository(pool)
	expenseHandler := expense.NewHandler(expenseRepo, cfg.UploadDir)
	statsHandler := stats.NewHandler(stats.NewRepo(pool))

	r := &router.Router{
		Users:       userHandler,
		Expenses:    expenseHandler,
		Stats:       statsHandler,
		Admin:       admin.NewHandler(pool),
		AuthMW:      auth.Middleware(cfg.JWTSecret, userRepo),
		AuthLimiter: authRateLimiter(cfg),
	}
	r.RegisterRoutes(app)

	log.Println("Listening on port", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}

func authRateLimiter(cfg *config.Config) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        cfg.AuthRateMax,
		Expiration: cfg.AuthRateWindow,
	})
}

func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		log.Printf("%s %s %d %s", c.Method(), c.Path(), status, time.Since(start))
		return err
	}
}
