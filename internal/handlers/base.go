package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/roywong35/human-art-social-sub000/internal/middleware"
	"github.com/roywong35/human-art-social-sub000/internal/models"
	"github.com/roywong35/human-art-social-sub000/internal/services"

	"github.com/gin-gonic/gin"
)

// currentUser 取已登录用户（AuthRequired 之后使用）
func currentUser(c *gin.Context) *models.User {
	return c.MustGet(middleware.CheckUserKey).(*models.User)
}

// viewerID 取浏览者 ID，未登录返回 0
func viewerID(c *gin.Context) uint {
	if u, exists := c.Get(middleware.CheckUserKey); exists {
		return u.(*models.User).ID
	}
	return 0
}

// writeError 把服务层错误映射为 HTTP 状态码。
// 领域错误带稳定的原因文案；未知错误只记日志，对外返回通用提示
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPostNotFound),
		errors.Is(err, services.ErrAppealNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrDuplicateReport),
		errors.Is(err, services.ErrAppealExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrSelfReport),
		errors.Is(err, services.ErrAppealForbidden),
		errors.Is(err, services.ErrNotPostAuthor):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidReportType),
		errors.Is(err, services.ErrInvalidOutcome),
		errors.Is(err, services.ErrNoReportsSelected),
		errors.Is(err, services.ErrEmptyAppealText),
		errors.Is(err, services.ErrInvalidPostKind),
		errors.Is(err, services.ErrEmptyContent),
		errors.Is(err, services.ErrMissingTarget):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrAppealNotPending),
		errors.Is(err, services.ErrAppealNotEligible):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		log.Printf("internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "服务器开小差了，请稍后再试"})
	}
}
