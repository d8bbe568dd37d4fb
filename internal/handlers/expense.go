package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/moneymaze/moneymaze/internal/apperr"
	"github.com/moneymaze/moneymaze/internal/logging"
	"github.com/moneymaze/moneymaze/internal/models"
	"github.com/moneymaze/moneymaze/internal/mykafka"
	"github.com/moneymaze/moneymaze/internal/service/search"
	"github.com/moneymaze/moneymaze/internal/session"
	"github.com/moneymaze/moneymaze/internal/util"
)

type ExpenseHandler struct {
	DB       *gorm.DB
	Producer *mykafka.Producer
	ES       *elasticsearch.Client
	Index    string
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

// index mirrors the expense into Elasticsearch, best effort.
func (h *ExpenseHandler) index(c echo.Context, e models.Expense) {
	if err := search.IndexExpense(c.Request().Context(), h.ES, h.Index, e); err != nil {
		logging.FromContext(c.Request().Context()).Warn("expense index failed", "id", e.ID, "error", err)
	}
}

func (h *ExpenseHandler) List(c echo.Context) error {
	userID, err := session.UserID(c)
	if err != nil {
		return fail(c, err)
	}

	q := h.DB.Where("user_id = ?", userID).Order("date DESC")

	// Pagination is opt-in; without page/size the full list comes back,
	// which is what the tracker page renders from.
	if c.QueryParam("page") != "" || c.QueryParam("size") != "" {
		page := parseIntDefault(c.QueryParam("page"), 1)
		size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
		offset, limit := util.Calculate(page, size)
		q = q.Offset(offset).Limit(limit)
	}

	var expenses []models.Expense
	if err := q.Find(&expenses).Error; err != nil {
		return fail(c, err)
	}
	if expenses == nil {
		expenses = []models.Expense{}
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "expenses": expenses})
}

func (h *ExpenseHandler) Create(c echo.Context) error {
	userID, err := session.UserID(c)
	if err != nil {
		return fail(c, err)
	}

	var req struct {
		Name   string          `json:"name"`
		Amount decimal.Decimal `json:"amount"`
		Date   time.Time       `json:"date"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, apperr.Validation("Invalid expense payload"))
	}
	if req.Name == "" {
		return fail(c, apperr.Validation("Expense name is required"))
	}
	if !req.Amount.IsPositive() {
		return fail(c, apperr.Validation("Amount must be a positive number"))
	}
	if req.Date.IsZero() {
		req.Date = time.Now()
	}

	expense := models.Expense{
		UserID: userID,
		Name:   req.Name,
		Amount: req.Amount,
		Date:   req.Date,
	}
	if err := h.DB.Create(&expense).Error; err != nil {
		return fail(c, err)
	}

	h.index(c, expense)
	publish(c, h.Producer, "expense_events", fmt.Sprint(userID), map[string]interface{}{
		"type":       "expense_created",
		"user_id":    userID,
		"expense_id": expense.ID,
		"name":       expense.Name,
		"amount":     expense.Amount,
	})

	return c.JSON(http.StatusCreated, expense)
}

func (h *ExpenseHandler) Update(c echo.Context) error {
	userID, err := session.UserID(c)
	if err != nil {
		return fail(c, err)
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return fail(c, apperr.Validation("Invalid expense id"))
	}

	var req struct {
		Amount decimal.Decimal `json:"amount"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, apperr.Validation("Invalid expense payload"))
	}
	if !req.Amount.IsPositive() {
		return fail(c, apperr.Validation("Amount must be a positive number"))
	}

	result := h.DB.Model(&models.Expense{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("amount", req.Amount)
	if result.Error != nil {
		return fail(c, result.Error)
	}
	if result.RowsAffected == 0 {
		return fail(c, apperr.NotFound("Expense not found"))
	}

	var expense models.Expense
	if err := h.DB.Where("id = ? AND user_id = ?", id, userID).First(&expense).Error; err != nil {
		return fail(c, err)
	}

	h.index(c, expense)
	publish(c, h.Producer, "expense_events", fmt.Sprint(userID), map[string]interface{}{
		"type":       "expense_updated",
		"user_id":    userID,
		"expense_id": expense.ID,
		"amount":     expense.Amount,
	})

	return c.JSON(http.StatusOK, expense)
}

func (h *ExpenseHandler) Delete(c echo.Context) error {
	userID, err := session.UserID(c)
	if err != nil {
		return fail(c, err)
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return fail(c, apperr.Validation("Invalid expense id"))
	}

	result := h.DB.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Expense{})
	if result.Error != nil {
		return fail(c, result.Error)
	}
	if result.RowsAffected == 0 {
		return fail(c, apperr.NotFound("Expense not found"))
	}

	if err := search.DeleteExpense(c.Request().Context(), h.ES, h.Index, uint(id)); err != nil {
		logging.FromContext(c.Request().Context()).Warn("expense unindex failed", "id", id, "error", err)
	}
	publish(c, h.Producer, "expense_events", fmt.Sprint(userID), map[string]interface{}{
		"type":       "expense_deleted",
		"user_id":    userID,
		"expense_id": id,
	})

	return c.NoContent(http.StatusNoContent)
}

func (h *ExpenseHandler) Search(c echo.Context) error {
	userID, err := session.UserID(c)
	if err != nil {
		return fail(c, err)
	}

	q := c.QueryParam("q")
	if q == "" {
		return fail(c, apperr.Validation("Missing search query"))
	}
	if h.ES == nil {
		return fail(c, fmt.Errorf("search backend not configured"))
	}

	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	from, limit := util.Calculate(page, size)

	total, expenses, err := search.Expenses(c.Request().Context(), h.ES, h.Index, userID, q, from, limit)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "total": total, "expenses": expenses})
}
