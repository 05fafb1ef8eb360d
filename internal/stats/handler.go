package stats

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spendwise-app/spendwise-backend/internal/auth"
)

type Handler struct {
	Repo *Repo
}

func NewHandler(repo *Repo) *Handler {
	return &Handler{Repo: repo}
}

// Overview serves the owner's spend aggregates by category and by month.
// Accepts optional dateFrom/dateTo bounds (inclusive).
func (h *Handler) Overview(c *fiber.Ctx) error {
	user, err := auth.CurrentUser(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Please login to continue.")
	}

	var from, to *time.Time
	if v := strings.TrimSpace(c.Query("dateFrom")); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "dateFrom must be YYYY-MM-DD")
		}
		from = &t
	}
	if v := strings.TrimSpace(c.Query("dateTo")); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "dateTo must be YYYY-MM-DD")
		}
		to = &t
	}

	overview, err := h.Repo.Overview(userContext(c), user.ID, from, to)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Error fetching statistics.")
	}
	return c.JSON(overview)
}

// Report streams a PDF statement for one calendar month.
func (h *Handler) Report(c *fiber.Ctx) error {
	user, err := auth.CurrentUser(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Please login to continue.")
	}

	month := strings.TrimSpace(c.Query("month"))
	if month == "" {
		month = time.Now().Format("2006-01")
	}
	if _, err := time.Parse("2006-01", month); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "month must be YYYY-MM")
	}

	st, err := h.Repo.MonthStatement(userContext(c), user.ID, user.Username, month)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Error building report.")
	}

	pdfBytes, err := BuildStatementPDF(st)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Error building report.")
	}

	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", "attachment; filename=expense-report-"+st.Month+".pdf")
	return c.Send(pdfBytes)
}

func userContext(c *fiber.Ctx) context.Context {
	if ctx := c.UserContext(); ctx != nil {
		return ctx
	}
	return context.Background()
}
