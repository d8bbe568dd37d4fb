package httpserver

import (
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/moneymaze/moneymaze/internal/handlers"
	"github.com/moneymaze/moneymaze/internal/session"
)

type Deps struct {
	DB             *gorm.DB
	Sessions       *session.Manager
	AuthHandler    *handlers.AuthHandler
	ExpenseHandler *handlers.ExpenseHandler
	BudgetHandler  *handlers.BudgetHandler
	SalaryHandler  *handlers.SalaryHandler
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	e.File("/", "web/login.html")
	e.Static("/", "web")

	e.POST("/register", d.AuthHandler.Register)
	e.POST("/login", d.AuthHandler.Login)
	e.POST("/logout", d.AuthHandler.Logout)
	e.GET("/check-username", d.AuthHandler.CheckUsername)
	e.GET("/check-email", d.AuthHandler.CheckEmail)

	api := e.Group("/api", d.Sessions.RequireAuth)

	api.GET("/me", d.AuthHandler.Me)

	api.GET("/expenses", d.ExpenseHandler.List)
	api.POST("/expenses", d.ExpenseHandler.Create)
	api.GET("/expenses/search", d.ExpenseHandler.Search)
	api.PUT("/expenses/:id", d.ExpenseHandler.Update)
	api.DELETE("/expenses/:id", d.ExpenseHandler.Delete)

	api.GET("/budget", d.BudgetHandler.List)
	api.POST("/budget", d.BudgetHandler.Upsert)

	api.GET("/salary", d.SalaryHandler.Get)
	api.POST("/salary", d.SalaryHandler.Upsert)
}
