package services

import (
	"errors"
	"strings"
	"time"

	"github.com/roywong35/human-art-social-sub000/internal/db"
	"github.com/roywong35/human-art-social-sub000/internal/models"
	"github.com/roywong35/human-art-social-sub000/internal/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrInvalidPostKind = errors.New("invalid post kind")
	ErrEmptyContent    = errors.New("content cannot be empty")
	ErrMissingTarget   = errors.New("derived post requires a target post")
	ErrNotPostAuthor   = errors.New("only the author can delete this post")
)

// CreatePost 创建帖子。
// 回复在创建时一次性写入对话链（父帖链 + 父帖 ID），之后不再重算；
// 内容里的话题标签同步落入关联表，关联行带自己的时间戳供趋势窗口使用。
func CreatePost(authorID uint, kind models.PostKind, content string, targetID *uint, isHumanDrawing bool) (*models.Post, error) {
	post := models.Post{
		Pid:            uuid.NewString(),
		UserID:         authorID,
		Kind:           kind,
		Content:        content,
		IsHumanDrawing: isHumanDrawing,
	}

	switch kind {
	case models.PostKindOriginal:
		if strings.TrimSpace(content) == "" {
			return nil, ErrEmptyContent
		}
	case models.PostKindReply, models.PostKindQuote:
		if strings.TrimSpace(content) == "" {
			return nil, ErrEmptyContent
		}
		if targetID == nil {
			return nil, ErrMissingTarget
		}
	case models.PostKindRepost:
		// 纯转发不带内容
		if targetID == nil {
			return nil, ErrMissingTarget
		}
	default:
		return nil, ErrInvalidPostKind
	}

	if targetID != nil {
		var target models.Post
		if err := db.DB.First(&target, *targetID).Error; err != nil {
			return nil, ErrPostNotFound
		}

		if kind == models.PostKindReply {
			post.ParentID = &target.ID
			chain := append(utils.SplitIDs(target.ConversationChain), target.ID)
			post.ConversationChain = utils.JoinIDs(chain)
		} else {
			post.ReferencedID = &target.ID
		}
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&post).Error; err != nil {
			return err
		}
		return linkHashtagsTx(tx, &post)
	})
	if err != nil {
		return nil, err
	}

	return &post, nil
}

// linkHashtagsTx 提取内容中的话题并创建关联行
func linkHashtagsTx(tx *gorm.DB, post *models.Post) error {
	for _, name := range utils.ExtractHashtags(post.Content) {
		var tag models.Hashtag
		if err := tx.Where("name = ?", name).
			FirstOrCreate(&tag, models.Hashtag{Name: name}).Error; err != nil {
			return err
		}

		link := models.PostHashtag{PostID: post.ID, HashtagID: tag.ID}
		if err := tx.Create(&link).Error; err != nil {
			return err
		}
	}
	return nil
}

// SoftDeletePost 作者软删除自己的帖子。
// 只打标记不删行，对话链检查依赖能读到这些行
func SoftDeletePost(postID, userID uint) error {
	var post models.Post
	if err := db.DB.First(&post, postID).Error; err != nil {
		return ErrPostNotFound
	}
	if post.UserID != userID {
		return ErrNotPostAuthor
	}

	now := time.Now()
	return db.DB.Model(&post).Updates(map[string]interface{}{
		"soft_deleted": true,
		"deleted_at":   &now,
	}).Error
}
