package handlers

import (
	"net/http"

	"devflow/internal/middleware"
	"devflow/internal/models"
	"devflow/internal/services"

	"github.com/gin-gonic/gin"
)

type UserHandler struct{}

func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

// Profile 个人主页：声望、文章、评论、常用标签和评论过的文章
func (h *UserHandler) Profile(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	stats := services.UserStats(user.ID)

	Render(c, http.StatusOK, "profile.html", gin.H{
		"Title":          user.Username + " 的主页",
		"User":           user,
		"Reputation":     stats.Reputation,
		"PostLikes":      stats.PostLikes,
		"PostShows":      stats.PostShows,
		"CommentLikes":   stats.CommentLikes,
		"Posts":          services.UserPosts(user.ID),
		"Comments":       services.UserComments(user.ID),
		"Tags":           services.UserTagUsage(user.ID),
		"CommentedPosts": services.CommentedPosts(user.ID),
	})
}
