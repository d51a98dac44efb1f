package handlers

import (
	"net/http"

	"github.com/roywong35/human-art-social-sub000/internal/db"
	"github.com/roywong35/human-art-social-sub000/internal/models"
	"github.com/roywong35/human-art-social-sub000/internal/services"

	"github.com/gin-gonic/gin"
)

type UserHandler struct{}

func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

// Profile 用户主页：资料 + 其对当前浏览者可见的作品
func (h *UserHandler) Profile(c *gin.Context) {
	id := c.Param("id")

	var user models.User
	if err := db.DB.First(&user, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "用户不存在"})
		return
	}

	var posts []models.Post
	db.DB.Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Limit(50).
		Find(&posts)

	visible := services.FilterVisible(posts, viewerID(c))
	fillEngagementCounts(visible)

	c.JSON(http.StatusOK, gin.H{"user": user, "posts": visible})
}
