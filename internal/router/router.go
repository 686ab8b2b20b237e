package router

import (
	"blogly/internal/cache"
	"blogly/internal/database"
	"blogly/internal/handler"
	"blogly/internal/handler/posts"
	"blogly/internal/handler/users"

	"github.com/labstack/echo/v4"
)

// Setup registers every route.
func Setup(e *echo.Echo, db database.DB, rdb cache.Cache) {
	e.GET("/", handler.HomeHandler(db, rdb))

	e.GET("/users", users.ListUsersHandler(db, rdb))
	e.GET("/users/new", users.NewUserFormHandler())
	e.POST("/users/new", users.CreateUserHandler(db, rdb))
	e.GET("/users/:id", users.GetUserHandler(db, rdb))
	e.GET("/users/:id/edit", users.EditUserFormHandler(db))
	e.POST("/users/:id/edit", users.UpdateUserHandler(db, rdb))
	e.POST("/users/:id/delete", users.DeleteUserHandler(db, rdb))
	e.GET("/users/:id/posts/new", users.NewPostFormHandler(db))
	e.POST("/users/:id/posts/new", users.CreatePostHandler(db, rdb))

	e.GET("/posts/:id", posts.GetPostHandler(db, rdb))
	e.GET("/posts/:id/edit", posts.EditPostFormHandler(db))
	e.POST("/posts/:id/edit", posts.UpdatePostHandler(db, rdb))
	e.POST("/posts/:id/delete", posts.DeletePostHandler(db, rdb))
}
