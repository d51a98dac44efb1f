package handlers

import (
	"net/http"

	"github.com/roywong35/human-art-social-sub000/internal/db"
	"github.com/roywong35/human-art-social-sub000/internal/models"
	"github.com/roywong35/human-art-social-sub000/internal/services"

	"github.com/gin-gonic/gin"
)

type ModerationHandler struct{}

func NewModerationHandler() *ModerationHandler {
	return &ModerationHandler{}
}

// ListReportTypes 该帖子可用的举报类型（ai_art 只对手绘标记帖子开放）
func (h *ModerationHandler) ListReportTypes(c *gin.Context) {
	pid := c.Param("pid")

	var post models.Post
	if err := db.DB.Where("pid = ?", pid).First(&post).Error; err != nil {
		writeError(c, services.ErrPostNotFound)
		return
	}

	c.JSON(http.StatusOK, gin.H{"types": services.ListReportTypesFor(&post)})
}

type submitReportRequest struct {
	Type        string `json:"type" binding:"required"`
	Description string `json:"description"`
}

// SubmitReport 提交举报
func (h *ModerationHandler) SubmitReport(c *gin.Context) {
	user := currentUser(c)
	pid := c.Param("pid")

	var req submitReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请选择举报类型"})
		return
	}

	var post models.Post
	if err := db.DB.Where("pid = ?", pid).First(&post).Error; err != nil {
		writeError(c, services.ErrPostNotFound)
		return
	}

	report, err := services.SubmitReport(user.ID, post.ID, models.ReportType(req.Type), req.Description)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"report": report})
}

// ListPendingReports 版主的待处理举报队列
func (h *ModerationHandler) ListPendingReports(c *gin.Context) {
	var reports []models.ContentReport
	db.DB.Preload("Reporter").Preload("Post").
		Where("status = ?", models.ReportStatusPending).
		Order("created_at DESC").
		Limit(100).
		Find(&reports)

	c.JSON(http.StatusOK, gin.H{"reports": reports})
}

type resolveReportsRequest struct {
	ReportIDs []uint `json:"report_ids" binding:"required"`
	Outcome   string `json:"outcome" binding:"required"`
}

// ResolveReports 版主批量终结举报
func (h *ModerationHandler) ResolveReports(c *gin.Context) {
	user := currentUser(c)

	var req resolveReportsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数不正确"})
		return
	}

	if err := services.ResolveReports(req.ReportIDs, models.ReportStatus(req.Outcome), user.ID); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "已处理"})
}
