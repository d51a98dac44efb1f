package handlers

import (
	"net/http"

	"github.com/roywong35/human-art-social-sub000/internal/db"
	"github.com/roywong35/human-art-social-sub000/internal/models"
	"github.com/roywong35/human-art-social-sub000/internal/services"
	"github.com/roywong35/human-art-social-sub000/internal/utils"

	"github.com/gin-gonic/gin"
)

type PostHandler struct{}

func NewPostHandler() *PostHandler {
	return &PostHandler{}
}

type createPostRequest struct {
	Kind           string `json:"kind"`
	Content        string `json:"content"`
	TargetPid      string `json:"target_pid"` // 回复/转发/引用的目标
	IsHumanDrawing bool   `json:"is_human_drawing"`
}

// Create 发布帖子（原创/回复/转发/引用）
func (h *PostHandler) Create(c *gin.Context) {
	user := currentUser(c)

	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数不正确"})
		return
	}

	kind := models.PostKind(req.Kind)
	if kind == "" {
		kind = models.PostKindOriginal
	}

	var targetID *uint
	if req.TargetPid != "" {
		var target models.Post
		if err := db.DB.Where("pid = ?", req.TargetPid).First(&target).Error; err != nil {
			writeError(c, services.ErrPostNotFound)
			return
		}
		targetID = &target.ID
	}

	post, err := services.CreatePost(user.ID, kind, req.Content, targetID, req.IsHumanDrawing)
	if err != nil {
		writeError(c, err)
		return
	}

	// 新内容可能影响榜单，主动失效
	utils.GetCache().Delete("feed:page:1")

	c.JSON(http.StatusCreated, gin.H{"post": post})
}

// Detail 帖子详情（带可见性检查和渲染后的内容）
func (h *PostHandler) Detail(c *gin.Context) {
	pid := c.Param("pid")

	var post models.Post
	if err := db.DB.Preload("User").Where("pid = ?", pid).First(&post).Error; err != nil {
		writeError(c, services.ErrPostNotFound)
		return
	}

	if !services.IsVisible(&post, viewerID(c)) {
		// 不可见按不存在处理，不暴露删除/下架状态
		writeError(c, services.ErrPostNotFound)
		return
	}

	wrapped := []models.Post{post}
	fillEngagementCounts(wrapped)
	post = wrapped[0]

	c.JSON(http.StatusOK, gin.H{
		"post":         post,
		"content_html": utils.RenderMarkdown(post.Content),
	})
}

// Delete 作者软删除自己的帖子
func (h *PostHandler) Delete(c *gin.Context) {
	user := currentUser(c)
	pid := c.Param("pid")

	var post models.Post
	if err := db.DB.Where("pid = ?", pid).First(&post).Error; err != nil {
		writeError(c, services.ErrPostNotFound)
		return
	}

	if err := services.SoftDeletePost(post.ID, user.ID); err != nil {
		writeError(c, err)
		return
	}

	utils.GetCache().Delete("feed:page:1")

	c.JSON(http.StatusOK, gin.H{"message": "已删除"})
}

// Like 点赞（每人每帖一次，重复点赞幂等）
func (h *PostHandler) Like(c *gin.Context) {
	user := currentUser(c)
	pid := c.Param("pid")

	var post models.Post
	if err := db.DB.Where("pid = ?", pid).First(&post).Error; err != nil {
		writeError(c, services.ErrPostNotFound)
		return
	}

	like := models.Like{UserID: user.ID, PostID: post.ID}
	db.DB.Where("user_id = ? AND post_id = ?", user.ID, post.ID).FirstOrCreate(&like)

	var likes int64
	db.DB.Model(&models.Like{}).Where("post_id = ?", post.ID).Count(&likes)

	c.JSON(http.StatusOK, gin.H{"likes": likes})
}

// fillEngagementCounts 批量填充帖子的点赞数与回复数
func fillEngagementCounts(posts []models.Post) {
	if len(posts) == 0 {
		return
	}

	postIDs := make([]uint, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
	}

	type countResult struct {
		PostID uint
		Count  int
	}

	var likeRows []countResult
	db.DB.Model(&models.Like{}).
		Select("post_id, COUNT(*) as count").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&likeRows)

	var replyRows []countResult
	db.DB.Model(&models.Post{}).
		Select("parent_id as post_id, COUNT(*) as count").
		Where("parent_id IN ? AND kind = ?", postIDs, models.PostKindReply).
		Group("parent_id").
		Scan(&replyRows)

	likeMap := make(map[uint]int, len(likeRows))
	for _, r := range likeRows {
		likeMap[r.PostID] = r.Count
	}
	replyMap := make(map[uint]int, len(replyRows))
	for _, r := range replyRows {
		replyMap[r.PostID] = r.Count
	}

	for i := range posts {
		posts[i].LikeCount = likeMap[posts[i].ID]
		posts[i].ReplyCount = replyMap[posts[i].ID]
	}
}
