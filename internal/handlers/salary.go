package handlers

import (
	"errors"
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

type SalaryHandler struct {
	DB       *gorm.DB
	Producer *mykafka.Producer
}

func (h *SalaryHandler) Get(c echo.Context) error {
	userID, err := session.UserID(c)
	if err != nil {
		return fail(c, err)
	}

	var salary models.Salary
	if err := h.DB.Where("user_id = ?", userID).First(&salary).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusOK, echo.Map{"success": true, "salary": nil})
		}
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "salary": salary.Amount})
}

// Upsert replaces the single salary scalar for the caller; no history kept.
func (h *SalaryHandler) Upsert(c echo.Context) error {
	userID, err := session.UserID(c)
	if err != nil {
		return fail(c, err)
	}

	var req struct {
		Salary decimal.Decimal `json:"salary"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, apperr.Validation("Invalid salary payload"))
	}
	if !req.Salary.IsPositive() {
		return fail(c, apperr.Validation("Salary must be a positive number"))
	}

	salary := models.Salary{
		UserID: userID,
		Amount: req.Salary,
	}
	err = h.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"amount"}),
	}).Create(&salary).Error
	if err != nil {
		return fail(c, err)
	}

	publish(c, h.Producer, "expense_events", fmt.Sprint(userID), map[string]interface{}{
		"type":    "salary_upserted",
		"user_id": userID,
		"salary":  req.Salary,
	})

	return c.JSON(http.StatusOK, echo.Map{"success": true, "salary": req.Salary})
}
