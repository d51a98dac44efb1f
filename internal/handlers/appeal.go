package handlers

import (
	"net/http"
	"strconv"

	"github.com/roywong35/human-art-social-sub000/internal/db"
	"github.com/roywong35/human-art-social-sub000/internal/models"
	"github.com/roywong35/human-art-social-sub000/internal/services"

	"github.com/gin-gonic/gin"
)

type AppealHandler struct{}

func NewAppealHandler() *AppealHandler {
	return &AppealHandler{}
}

type createAppealRequest struct {
	Text     string   `json:"text" binding:"required"`
	Evidence []string `json:"evidence"`
}

// Create 作者对下架帖子发起申诉
func (h *AppealHandler) Create(c *gin.Context) {
	user := currentUser(c)
	pid := c.Param("pid")

	var req createAppealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请填写申诉内容"})
		return
	}

	var post models.Post
	if err := db.DB.Where("pid = ?", pid).First(&post).Error; err != nil {
		writeError(c, services.ErrPostNotFound)
		return
	}

	appeal, err := services.CreateAppeal(post.ID, user.ID, req.Text, req.Evidence)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"appeal": appeal, "evidence": appeal.EvidenceList()})
}

// Status 作者查询申诉状态
func (h *AppealHandler) Status(c *gin.Context) {
	user := currentUser(c)
	pid := c.Param("pid")

	var post models.Post
	if err := db.DB.Where("pid = ?", pid).First(&post).Error; err != nil {
		writeError(c, services.ErrPostNotFound)
		return
	}

	info, err := services.GetAppealStatus(post.ID, user.ID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, info)
}

// Approve 版主通过申诉
func (h *AppealHandler) Approve(c *gin.Context) {
	user := currentUser(c)
	id, _ := strconv.Atoi(c.Param("id"))

	appeal, err := services.ApproveAppeal(uint(id), user.ID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"appeal": appeal})
}

type rejectAppealRequest struct {
	Notes string `json:"notes"`
}

// Reject 版主驳回申诉
func (h *AppealHandler) Reject(c *gin.Context) {
	user := currentUser(c)
	id, _ := strconv.Atoi(c.Param("id"))

	var req rejectAppealRequest
	_ = c.ShouldBindJSON(&req) // notes 可选

	appeal, err := services.RejectAppeal(uint(id), user.ID, req.Notes)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"appeal": appeal})
}
