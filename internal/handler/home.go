// Package handler holds the top-level page handlers.
package handler

import (
	"net/http"

	"blogly/internal/cache"
	"blogly/internal/database"
	"blogly/internal/session"
	"blogly/internal/store"

	"github.com/labstack/echo/v4"
)

// homePostLimit caps how many posts the homepage shows.
const homePostLimit = 5

var (
	listRecentPosts = store.ListRecentPosts
	popFlash        = session.PopFlash
)

// HomeHandler renders the homepage with the most recent posts.
func HomeHandler(db database.DB, rdb cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		posts, err := listRecentPosts(c.Request().Context(), db, homePostLimit)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		data := echo.Map{"Posts": posts}
		if msg, err := popFlash(c.Request().Context(), rdb, session.ID(c)); err == nil && msg != "" {
			data["Flash"] = msg
		}
		return c.Render(http.StatusOK, "home", data)
	}
}
