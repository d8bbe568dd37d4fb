package handlers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/moneymaze/moneymaze/internal/apperr"
	"github.com/moneymaze/moneymaze/internal/models"
	"github.com/moneymaze/moneymaze/internal/mykafka"
	"github.com/moneymaze/moneymaze/internal/session"
)

type BudgetHandler struct {
	DB       *gorm.DB
	Producer *mykafka.Producer
}

func (h *BudgetHandler) List(c echo.Context) error {
	userID, err := session.UserID(c)
	if err != nil {
		return fail(c, err)
	}

	var budgets []models.Budget
	if err := h.DB.Where("user_id = ?", userID).Order("category ASC").Find(&budgets).Error; err != nil {
		return fail(c, err)
	}
	if budgets == nil {
		budgets = []models.Budget{}
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "budget": budgets})
}

// Upsert keeps exactly one row per (user, category); the latest amount wins.
func (h *BudgetHandler) Upsert(c echo.Context) error {
	userID, err := session.UserID(c)
	if err != nil {
		return fail(c, err)
	}

	var req struct {
		Name     string          `json:"name"`
		Category string          `json:"category"`
		Amount   decimal.Decimal `json:"amount"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, apperr.Validation("Invalid budget payload"))
	}

	// Earlier clients sent "category", later ones "name"; accept both.
	category := req.Name
	if category == "" {
		category = req.Category
	}
	if category == "" {
		return fail(c, apperr.Validation("Budget category is required"))
	}
	if !req.Amount.IsPositive() {
		return fail(c, apperr.Validation("Amount must be a positive number"))
	}

	budget := models.Budget{
		UserID:   userID,
		Category: category,
		Amount:   req.Amount,
	}
	err = h.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "category"}},
		DoUpdates: clause.AssignmentColumns([]string{"amount"}),
	}).Create(&budget).Error
	if err != nil {
		return fail(c, err)
	}

	publish(c, h.Producer, "expense_events", fmt.Sprint(userID), map[string]interface{}{
		"type":     "budget_upserted",
		"user_id":  userID,
		"category": category,
		"amount":   req.Amount,
	})

	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Budget saved"})
}
