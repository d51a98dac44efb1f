package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/roywong35/human-art-social-sub000/internal/db"
	"github.com/roywong35/human-art-social-sub000/internal/models"
	"github.com/roywong35/human-art-social-sub000/internal/services"
	"github.com/roywong35/human-art-social-sub000/internal/utils"

	"github.com/gin-gonic/gin"
)

const feedPerPage = 30

type FeedHandler struct{}

func NewFeedHandler() *FeedHandler {
	return &FeedHandler{}
}

// List 最新信息流。每次读取都过一遍批量可见性过滤。
// 只有未登录首页做短 TTL 缓存，登录用户的结果依赖各自的举报集合，不能共享
func (h *FeedHandler) List(c *gin.Context) {
	page := 1
	if p := c.Query("page"); p != "" {
		if pageNum, err := strconv.Atoi(p); err == nil && pageNum > 0 {
			page = pageNum
		}
	}

	viewer := viewerID(c)

	cacheKey := fmt.Sprintf("feed:page:%d", page)
	if viewer == 0 && page == 1 {
		if cached := utils.GetCache().Get(cacheKey); cached != nil {
			if posts, ok := cached.([]models.Post); ok {
				c.JSON(http.StatusOK, gin.H{"posts": posts, "page": page})
				return
			}
		}
	}

	// 候选集多取一些，过滤后再截断
	var candidates []models.Post
	db.DB.Preload("User").
		Order("created_at DESC").
		Limit(feedPerPage * 2).
		Offset((page - 1) * feedPerPage).
		Find(&candidates)

	visible := services.FilterVisible(candidates, viewer)
	if len(visible) > feedPerPage {
		visible = visible[:feedPerPage]
	}
	fillEngagementCounts(visible)

	if viewer == 0 && page == 1 {
		utils.GetCache().Set(cacheKey, visible, time.Minute)
	}

	c.JSON(http.StatusOK, gin.H{"posts": visible, "page": page})
}
