package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string    `gorm:"uniqueIndex;not null"     json:"username"`
	Email        string    `gorm:"uniqueIndex;not null"     json:"email"`
	PasswordHash string    `gorm:"not null"                 json:"-"`
	FirstName    string    `gorm:"not null"                 json:"firstName"`
	LastName     string    `gorm:"not null"                 json:"lastName"`
	Pincode      string    `json:"pincode"`
	CreatedAt    time.Time `json:"created_at"`
}

type Expense struct {
	ID        uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint            `gorm:"index;not null"           json:"user_id"`
	Name      string          `gorm:"not null"                 json:"name"`
	Amount    decimal.Decimal `gorm:"type:numeric;not null"    json:"amount"`
	Date      time.Time       `json:"date"`
	CreatedAt time.Time       `json:"created_at"`
}

// Budget keeps one row per (user, category); upserts replace the amount.
type Budget struct {
	ID       uint            `gorm:"primaryKey;autoIncrement"                       json:"id"`
	UserID   uint            `gorm:"uniqueIndex:idx_budgets_user_category;not null" json:"user_id"`
	Category string          `gorm:"uniqueIndex:idx_budgets_user_category;not null" json:"category"`
	Amount   decimal.Decimal `gorm:"type:numeric;not null"                          json:"amount"`
}

// Salary keeps a single scalar per user, latest value wins.
type Salary struct {
	ID     uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID uint            `gorm:"uniqueIndex;not null"     json:"user_id"`
	Amount decimal.Decimal `gorm:"type:numeric;not null"    json:"amount"`
}
