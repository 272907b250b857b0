package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"vidshelf/internal/auth"
	"vidshelf/internal/config"
	"vidshelf/internal/handler"
	"vidshelf/internal/model"
)

// Register wires routes and middleware. Role requirements are fixed per
// endpoint: the verifier runs on the secured group, the role gate per route.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	videoHandler *handler.VideoHandler,
	tagHandler *handler.TagHandler,
	userHandler *handler.UserHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.Static("/uploads", cfg.Media.UploadDir)

	api := e.Group("/api")

	// Public routes
	api.GET("/videos", videoHandler.ListVideos)
	api.GET("/tags", tagHandler.ListTags)
	api.POST("/login", authHandler.Login)

	// Secured routes (require a verified bearer token)
	secured := api.Group("", auth.Middleware(cfg.Auth.JWTSecret))

	secured.POST("/videos", videoHandler.CreateVideo,
		auth.RequireRoles(model.RoleAdmin, model.RoleSuperadmin))
	secured.DELETE("/videos/:id", videoHandler.DeleteVideo,
		auth.RequireRoles(model.RoleAdmin, model.RoleSuperadmin))

	secured.POST("/tag", tagHandler.CreateTag,
		auth.RequireRoles(model.RoleAdmin, model.RoleSuperadmin))
	secured.POST("/tag/:id", tagHandler.UpdateTag,
		auth.RequireRoles(model.RoleSuperadmin))
	secured.DELETE("/tag/:id", tagHandler.DeleteTag,
		auth.RequireRoles(model.RoleSuperadmin))

	secured.POST("/register", authHandler.Register,
		auth.RequireRoles(model.RoleAdmin, model.RoleSuperadmin))

	secured.GET("/user", userHandler.GetMe)
	secured.GET("/users", userHandler.ListUsers,
		auth.RequireRoles(model.RoleSuperadmin))
	secured.PUT("/user/:id", userHandler.UpdateUser,
		auth.RequireRoles(model.RoleSuperadmin))
	secured.DELETE("/user/:id", userHandler.DeleteUser,
		auth.RequireRoles(model.RoleSuperadmin))
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
