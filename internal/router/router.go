package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/taskhive/backend/api/handler"
)

type Handlers struct {
	Auth    *apiHandler.AuthHandler
	Profile *apiHandler.ProfileHandler
	Task    *apiHandler.TaskHandler
	Health  *apiHandler.HealthHandler
}

func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler, storageDir string) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Auth routes
	r.POST("/register", handlers.Auth.Register)
	r.POST("/login", handlers.Auth.Login)

	// Protected routes
	r.POST("/logout", authMiddleware(handlers.Auth.Logout))

	r.GET("/profile", authMiddleware(handlers.Profile.GetProfile))
	r.POST("/upload-profile-picture", authMiddleware(handlers.Profile.UploadPicture))

	r.GET("/tasks", authMiddleware(handlers.Task.GetTasks))
	r.POST("/tasks", authMiddleware(handlers.Task.CreateTask))
	r.GET("/tasks/{id}", authMiddleware(handlers.Task.GetTask))
	r.PUT("/tasks/{id}", authMiddleware(handlers.Task.UpdateTask))
	r.DELETE("/tasks/{id}", authMiddleware(handlers.Task.DeleteTask))
	r.PATCH("/tasks/{id}/complete", authMiddleware(handlers.Task.CompleteTask))

	// Uploaded profile pictures are served straight off disk.
	r.ServeFiles("/storage/{filepath:*}", storageDir)

	return r
}
