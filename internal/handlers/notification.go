package handlers

import (
	"net/http"

	"github.com/roywong35/human-art-social-sub000/internal/db"
	"github.com/roywong35/human-art-social-sub000/internal/models"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct{}

func NewNotificationHandler() *NotificationHandler {
	return &NotificationHandler{}
}

func (h *NotificationHandler) List(c *gin.Context) {
	user := currentUser(c)

	var notifications []models.Notification
	db.DB.Preload("Actor").
		Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Limit(50).
		Find(&notifications)

	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

func (h *NotificationHandler) Read(c *gin.Context) {
	user := currentUser(c)
	id := c.Param("id")

	var notification models.Notification
	if err := db.DB.Where("id = ? AND user_id = ?", id, user.ID).First(&notification).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "通知不存在"})
		return
	}

	notification.IsRead = true
	db.DB.Save(&notification)

	c.JSON(http.StatusOK, gin.H{"notification": notification})
}

func (h *NotificationHandler) ReadAll(c *gin.Context) {
	user := currentUser(c)

	db.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", user.ID, false).
		Update("is_read", true)

	c.JSON(http.StatusOK, gin.H{"message": "全部已读"})
}
