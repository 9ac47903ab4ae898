package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"gotrack/internal/handler"
)

// Register wires routes and middleware. The verified middleware resolves
// identities through the provider round-trip and protects every
// privileged or ownership-sensitive route; the unverified one only backs
// the admin user listing.
func Register(
	e *echo.Echo,
	userHandler *handler.UserHandler,
	taskHandler *handler.TaskHandler,
	screenshotHandler *handler.ScreenshotHandler,
	verified echo.MiddlewareFunc,
	unverified echo.MiddlewareFunc,
	platformConnected bool,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"message":            "GoTrack backend is running",
			"supabase_connected": platformConnected,
		})
	})

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"ok": true})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Public routes
	user := e.Group("/user")
	user.POST("/register", userHandler.Register)
	user.POST("/login", userHandler.Login)

	// Claims-only bearer: listing forwards what the provider's admin API
	// returns and gates nothing, so the unverified tier suffices.
	user.GET("/list", userHandler.List, unverified)

	// Provider-verified bearer
	user.GET("/me", userHandler.Me, verified)
	user.POST("/create-superuser", userHandler.CreateSuperuser, verified)

	task := e.Group("/task", verified)
	task.POST("/assign", taskHandler.Assign)
	task.GET("/my-tasks", taskHandler.MyTasks)
	task.POST("/update-status", taskHandler.UpdateStatus)

	screenshots := e.Group("/screenshots", verified)
	screenshots.POST("/upload", screenshotHandler.Upload)
	screenshots.POST("/record", screenshotHandler.Record)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
