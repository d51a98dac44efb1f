package handlers

import (
	"net/http"
	"strconv"

	"github.com/roywong35/human-art-social-sub000/internal/services"

	"github.com/gin-gonic/gin"
)

type TrendingHandler struct{}

func NewTrendingHandler() *TrendingHandler {
	return &TrendingHandler{}
}

// List 趋势话题榜
func (h *TrendingHandler) List(c *gin.Context) {
	limit := services.TrendingLimit
	if l := c.Query("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil {
			limit = n
		}
	}

	scores, err := services.GetTrending(limit)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"trending": scores})
}

// Invalidate 强制下次读取重新计算（版主操作）
func (h *TrendingHandler) Invalidate(c *gin.Context) {
	services.InvalidateTrendingCache()
	c.JSON(http.StatusOK, gin.H{"message": "趋势缓存已清除"})
}
