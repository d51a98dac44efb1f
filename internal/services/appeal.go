package services

import (
	"errors"
	"strings"
	"time"

	"github.com/roywong35/human-art-social-sub000/internal/db"
	"github.com/roywong35/human-art-social-sub000/internal/models"
	"github.com/roywong35/human-art-social-sub000/internal/utils"

	"gorm.io/gorm"
)

var (
	ErrAppealNotFound    = errors.New("appeal not found")
	ErrAppealForbidden   = errors.New("only the post author can appeal")
	ErrAppealNotEligible = errors.New("post has not reached the removal threshold")
	ErrAppealExists      = errors.New("an appeal for this post already exists")
	ErrAppealNotPending  = errors.New("appeal has already been reviewed")
	ErrEmptyAppealText   = errors.New("appeal text cannot be empty")
)

// AppealStatusInfo 作者侧的申诉状态查询结果
type AppealStatusInfo struct {
	HasAppeal bool               `json:"has_appeal"`
	CanAppeal bool               `json:"can_appeal"`
	Appeal    *models.PostAppeal `json:"appeal,omitempty"`
}

// CreateAppeal 作者对自动下架发起申诉。
// 前提：发起人是作者、待处理举报已达阈值、该帖从未有过申诉（驳回后也不能再发）。
func CreateAppeal(postID, authorID uint, text string, evidence []string) (*models.PostAppeal, error) {
	var post models.Post
	if err := db.DB.First(&post, postID).Error; err != nil {
		return nil, ErrPostNotFound
	}

	if post.UserID != authorID {
		return nil, ErrAppealForbidden
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyAppealText
	}
	if CountPending(postID) < RemovalThreshold {
		return nil, ErrAppealNotEligible
	}

	appeal := models.PostAppeal{
		PostID: postID,
		UserID: authorID,
		Text:   utils.SanitizeText(text),
		Status: models.AppealStatusPending,
	}
	appeal.SetEvidence(evidence)

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.PostAppeal{}).
			Where("post_id = ?", postID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrAppealExists
		}
		return tx.Create(&appeal).Error
	})
	if err != nil {
		return nil, err
	}

	return &appeal, nil
}

// GetAppealStatus 查询帖子的申诉状态（作者视角）
func GetAppealStatus(postID, authorID uint) (*AppealStatusInfo, error) {
	var post models.Post
	if err := db.DB.First(&post, postID).Error; err != nil {
		return nil, ErrPostNotFound
	}
	if post.UserID != authorID {
		return nil, ErrAppealForbidden
	}

	info := &AppealStatusInfo{}

	var appeal models.PostAppeal
	err := db.DB.Where("post_id = ?", postID).First(&appeal).Error
	if err == nil {
		info.HasAppeal = true
		info.Appeal = &appeal
		return info, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	info.CanAppeal = CountPending(postID) >= RemovalThreshold
	return info, nil
}

// ApproveAppeal 申诉通过。
// 单个事务内完成：申诉置为 approved、该帖全部待处理举报置为 resolved、
// 清除 removed 标记、写入申诉通过通知。任一步失败整体回滚，帖子不会半恢复。
func ApproveAppeal(appealID, reviewerID uint) (*models.PostAppeal, error) {
	var appeal models.PostAppeal

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&appeal, appealID).Error; err != nil {
			return ErrAppealNotFound
		}
		// 终态幂等：重复审批直接报错，不重放副作用
		if appeal.Status != models.AppealStatusPending {
			return ErrAppealNotPending
		}

		ids, err := pendingReportIDsTx(tx, appeal.PostID)
		if err != nil {
			return err
		}
		if err := resolveReportsTx(tx, ids, models.ReportStatusResolved, reviewerID); err != nil {
			return err
		}

		if err := tx.Model(&models.Post{}).Where("id = ?", appeal.PostID).
			Update("removed", false).Error; err != nil {
			return err
		}

		now := time.Now()
		appeal.Status = models.AppealStatusApproved
		appeal.ReviewedAt = &now
		appeal.ReviewerID = &reviewerID
		if err := tx.Save(&appeal).Error; err != nil {
			return err
		}

		notification := models.Notification{
			UserID:  appeal.UserID,
			ActorID: &reviewerID,
			PostID:  &appeal.PostID,
			Type:    models.NotificationTypeAppealApproved,
			Reason:  "您的申诉已通过，作品已恢复展示。",
		}
		return tx.Create(&notification).Error
	})
	if err != nil {
		return nil, err
	}

	return &appeal, nil
}

// RejectAppeal 驳回申诉。举报保持待处理，帖子继续隐藏。
func RejectAppeal(appealID, reviewerID uint, notes string) (*models.PostAppeal, error) {
	var appeal models.PostAppeal

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&appeal, appealID).Error; err != nil {
			return ErrAppealNotFound
		}
		if appeal.Status != models.AppealStatusPending {
			return ErrAppealNotPending
		}

		now := time.Now()
		appeal.Status = models.AppealStatusRejected
		appeal.ReviewedAt = &now
		appeal.ReviewerID = &reviewerID
		appeal.ReviewNotes = utils.SanitizeText(notes)
		if err := tx.Save(&appeal).Error; err != nil {
			return err
		}

		notification := models.Notification{
			UserID:  appeal.UserID,
			ActorID: &reviewerID,
			PostID:  &appeal.PostID,
			Type:    models.NotificationTypeAppealRejected,
			Reason:  "很抱歉，您的申诉未获通过。",
		}
		return tx.Create(&notification).Error
	})
	if err != nil {
		return nil, err
	}

	return &appeal, nil
}
