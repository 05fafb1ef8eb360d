package admin

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Handler struct {
	Pool *pgxpool.Pool
}

func NewHandler(pool *pgxpool.Pool) *Handler {
	return &Handler{Pool: pool}
}

type latestUser struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

type OverviewResponse struct {
	UsersTotal    int64        `json:"users_total"`
	ExpensesTotal int64        `json:"expenses_total"`
	LatestUsers   []latestUser `json:"latest_users"`
}

// Overview reports instance-wide totals. Unlike every other endpoint it is
// not owner scoped, which is why RequireAdmin guards it.
func (h *Handler) Overview(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var resp OverviewResponse

	if err := h.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&resp.UsersTotal); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed users_total")
	}
	if err := h.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM expenses`).Scan(&resp.ExpensesTotal); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed expenses_total")
	}

	rows, err := h.Pool.Query(ctx, `
		SELECT id::text, username, email, created_at::text
		FROM users
		ORDER BY created_at DESC
		LIMIT 20`)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed latest_users")
	}
	defer rows.Close()

	for rows.Next() {
		var u latestUser
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.CreatedAt); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed scan latest_users")
		}
		resp.LatestUsers = append(resp.LatestUsers, u)
	}
	if err := rows.Err(); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed latest_users rows")
	}

	return c.JSON(resp)
}
