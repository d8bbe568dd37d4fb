package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/moneymaze/moneymaze/internal/apperr"
	"github.com/moneymaze/moneymaze/internal/hash"
	"github.com/moneymaze/moneymaze/internal/models"
	"github.com/moneymaze/moneymaze/internal/mykafka"
	"github.com/moneymaze/moneymaze/internal/session"
)

type AuthHandler struct {
	DB       *gorm.DB
	Sessions *session.Manager
	Producer *mykafka.Producer
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Email     string `json:"email"`
		Pincode   string `json:"pincode"`
		Username  string `json:"username"`
		Password  string `json:"password"`
	}

	if err := c.Bind(&req); err != nil {
		return fail(c, apperr.Validation("Missing required fields"))
	}
	if req.FirstName == "" || req.LastName == "" || req.Email == "" ||
		req.Pincode == "" || req.Username == "" || req.Password == "" {
		return fail(c, apperr.Validation("Missing required fields"))
	}

	// One round trip covers both uniqueness checks; distinct messages tell
	// the client which field to highlight.
	var existing []models.User
	if err := h.DB.Where("username = ? OR email = ?", req.Username, req.Email).
		Find(&existing).Error; err != nil {
		return fail(c, err)
	}
	for _, u := range existing {
		if u.Username == req.Username {
			return fail(c, apperr.Conflict("Username already exists"))
		}
		if u.Email == req.Email {
			return fail(c, apperr.Conflict("Email already registered"))
		}
	}

	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		return fail(c, err)
	}

	user := models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: pwHash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Pincode:      req.Pincode,
	}
	if err := h.DB.Create(&user).Error; err != nil {
		// The unique indexes close the check-then-insert race window.
		if isUniqueViolation(err) {
			return fail(c, apperr.Conflict("Username already exists"))
		}
		return fail(c, err)
	}

	publish(c, h.Producer, "user_events", fmt.Sprint(user.ID), map[string]interface{}{
		"type":     "user_registered",
		"user_id":  user.ID,
		"username": user.Username,
	})

	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Registration successful"})
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := c.Bind(&req); err != nil {
		return fail(c, apperr.Validation("Missing required fields"))
	}

	// Same response for unknown username and wrong password, so login
	// cannot be used to enumerate accounts.
	var user models.User
	if err := h.DB.Where("username = ?", req.Username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(c, apperr.Auth("Invalid username or password"))
		}
		return fail(c, err)
	}
	if !hash.CheckPassword(user.PasswordHash, req.Password) {
		return fail(c, apperr.Auth("Invalid username or password"))
	}

	token, exp, err := h.Sessions.Issue(user.ID, user.Username)
	if err != nil {
		return fail(c, err)
	}
	c.SetCookie(h.Sessions.Cookie(token, exp))

	publish(c, h.Producer, "user_events", fmt.Sprint(user.ID), map[string]interface{}{
		"type":     "user_logged_in",
		"user_id":  user.ID,
		"username": user.Username,
	})

	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Login successful"})
}

func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(h.Sessions.ExpiredCookie())
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Logged out"})
}

func (h *AuthHandler) Me(c echo.Context) error {
	userID, err := session.UserID(c)
	if err != nil {
		return fail(c, err)
	}

	var user models.User
	if err := h.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(c, apperr.NotFound("User not found"))
		}
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"user": echo.Map{
			"id":        user.ID,
			"username":  user.Username,
			"email":     user.Email,
			"firstName": user.FirstName,
			"lastName":  user.LastName,
		},
	})
}

func (h *AuthHandler) CheckUsername(c echo.Context) error {
	username := c.QueryParam("username")
	if username == "" {
		return fail(c, apperr.Validation("Missing username"))
	}

	var count int64
	if err := h.DB.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"available": count == 0})
}

func (h *AuthHandler) CheckEmail(c echo.Context) error {
	email := c.QueryParam("email")
	if email == "" {
		return fail(c, apperr.Validation("Missing email"))
	}

	var count int64
	if err := h.DB.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"available": count == 0})
}
