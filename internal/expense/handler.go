package expense

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/spendwise-app/spendwise-backend/internal/auth"
)

// Store is the slice of the repository the handlers need.
type Store interface {
	Insert(ctx context.Context, e *Expense) error
	List(ctx context.Context, userID string, q Query) ([]Expense, int64, error)
	Update(ctx context.Context, userID, id string, f UpdateFields) (*Expense, error)
	DeleteMany(ctx context.Context, userID string, ids []string) (int64, error)
	InsertBatch(ctx context.Context, items []Expense) (int, error)
}

type Handler struct {
	Store     Store
	UploadDir string
}

func NewHandler(store Store, uploadDir string) *Handler {
	return &Handler{Store: store, UploadDir: uploadDir}
}

func (h *Handler) Create(c *fiber.Ctx) error {
	user, err := auth.CurrentUser(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Please login to continue.")
	}

	var req CreateExpenseRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	req.Description = strings.TrimSpace(req.Description)
	req.Category = strings.TrimSpace(req.Category)
	req.PaymentMethod = strings.TrimSpace(req.PaymentMethod)
	req.Date = strings.TrimSpace(req.Date)

	if req.Amount <= 0 || req.Description == "" || req.Category == "" ||
		req.PaymentMethod == "" || req.Date == "" {
		return fiber.NewError(fiber.StatusBadRequest, "All fields are required.")
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "date must be YYYY-MM-DD")
	}

	e := &Expense{
		UserID:        user.ID,
		Amount:        req.Amount,
		Description:   req.Description,
		Category:      req.Category,
		PaymentMethod: req.PaymentMethod,
		Date:          date,
	}

	if err := h.Store.Insert(userContext(c), e); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Error adding expense.")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Expense added successfully.",
		"expense": e,
	})
}

func (h *Handler) List(c *fiber.Ctx) error {
	user, err := auth.CurrentUser(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Please login to continue.")
	}

	q, err := ParseQuery(c.Queries())
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	items, total, err := h.Store.List(userContext(c), user.ID, q)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Error fetching expenses.")
	}

	return c.JSON(ListResponse{
		Expenses:      items,
		TotalExpenses: total,
		CurrentPage:   q.Page,
		TotalPages:    TotalPages(total, q.Limit),
	})
}

func (h *Handler) Update(c *fiber.Ctx) error {
	user, err := auth.CurrentUser(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Please login to continue.")
	}

	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid expense ID.")
	}

	var req UpdateExpenseRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	fields := UpdateFields{
		Amount:        req.Amount,
		Description:   req.Description,
		Category:      req.Category,
		PaymentMethod: req.PaymentMethod,
	}
	if fields.Amount != nil && *fields.Amount <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "amount must be greater than zero")
	}
	if req.Date != nil {
		date, err := time.Parse("2006-01-02", strings.TrimSpace(*req.Date))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "date must be YYYY-MM-DD")
		}
		fields.Date = &date
	}

	e, err := h.Store.Update(userContext(c), user.ID, id, fields)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Expense not found.")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Error updating expense.")
	}

	return c.JSON(fiber.Map{
		"message": "Expense updated successfully.",
		"expense": e,
	})
}

func (h *Handler) Delete(c *fiber.Ctx) error {
	user, err := auth.CurrentUser(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Please login to continue.")
	}

	var req deleteRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid or missing expense IDs.")
	}

	// Every id must look valid before anything is deleted; one bad id
	// rejects the whole request.
	if len(req.IDs) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid or missing expense IDs.")
	}
	for _, id := range req.IDs {
		if _, err := uuid.Parse(id); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid or missing expense IDs.")
		}
	}

	deleted, err := h.Store.DeleteMany(userContext(c), user.ID, req.IDs)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Error deleting expenses.")
	}
	if deleted == 0 {
		return fiber.NewError(fiber.StatusNotFound, "No expenses found with the provided IDs.")
	}

	return c.JSON(fiber.Map{
		"message": "Expenses deleted successfully.",
		"deleted": deleted,
	})
}

// BulkUpload accepts a multipart CSV, spools it under UploadDir and runs the
// ingestion pipeline. The spooled file is removed on every exit path.
func (h *Handler) BulkUpload(c *fiber.Ctx) error {
	user, err := auth.CurrentUser(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Please login to continue.")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Please upload a CSV file.")
	}

	path := filepath.Join(h.UploadDir, uuid.NewString()+filepath.Ext(fileHeader.Filename))
	if err := c.SaveFile(fileHeader, path); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Error processing file.")
	}
	defer os.Remove(path)

	f, err := os.Open(path)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "File not found.")
	}
	defer f.Close()

	ing := &Ingestor{Store: h.Store}
	inserted, err := ing.IngestCSV(userContext(c), f, user.ID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoValidData):
			return fiber.NewError(fiber.StatusBadRequest, "No valid data found in the CSV file.")
		case errors.Is(err, ErrSave):
			return fiber.NewError(fiber.StatusInternalServerError, "Error saving expenses.")
		default:
			return fiber.NewError(fiber.StatusInternalServerError, "Error processing file.")
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Expenses added successfully.",
		"inserted": inserted,
	})
}

func userContext(c *fiber.Ctx) context.Context {
	if ctx := c.UserContext(); ctx != nil {
		return ctx
	}
	return context.Background()
}
