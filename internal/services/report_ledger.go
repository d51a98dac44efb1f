package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/roywong35/human-art-social-sub000/internal/db"
	"github.com/roywong35/human-art-social-sub000/internal/models"
	"github.com/roywong35/human-art-social-sub000/internal/utils"

	"gorm.io/gorm"
)

// RemovalThreshold 待处理举报达到该数量后帖子自动下架
const RemovalThreshold = 3

var (
	ErrPostNotFound      = errors.New("post not found")
	ErrSelfReport        = errors.New("cannot report your own post")
	ErrInvalidReportType = errors.New("invalid report type")
	ErrDuplicateReport   = errors.New("you already reported this post for this reason")
	ErrInvalidOutcome    = errors.New("invalid report outcome")
	ErrNoReportsSelected = errors.New("no reports selected")
)

// 基础举报类型。ai_art 不在其中，只对手绘标记帖子开放
var baseReportTypes = []models.ReportType{
	models.ReportTypeHarassment,
	models.ReportTypeSpam,
	models.ReportTypeInappropriate,
	models.ReportTypeMisinformation,
	models.ReportTypeCopyright,
	models.ReportTypeOther,
}

// ListReportTypesFor 返回该帖子可用的举报类型
func ListReportTypesFor(post *models.Post) []models.ReportType {
	types := make([]models.ReportType, 0, len(baseReportTypes)+1)
	if post.IsHumanDrawing {
		types = append(types, models.ReportTypeAIArt)
	}
	return append(types, baseReportTypes...)
}

func isValidReportType(rtype models.ReportType, post *models.Post) bool {
	for _, t := range ListReportTypesFor(post) {
		if t == rtype {
			return true
		}
	}
	return false
}

// SubmitReport 提交举报。
// 同一事务内完成：去重检查、落库、重算待处理数、越过阈值时置 removed 并
// 写入一次性的下架通知（按 (作者, 帖子, 类型) 去重，重试/并发下不会重复发）。
func SubmitReport(reporterID, postID uint, rtype models.ReportType, description string) (*models.ContentReport, error) {
	var post models.Post
	if err := db.DB.First(&post, postID).Error; err != nil {
		return nil, ErrPostNotFound
	}

	if post.UserID == reporterID {
		return nil, ErrSelfReport
	}
	if !isValidReportType(rtype, &post) {
		return nil, ErrInvalidReportType
	}

	report := models.ContentReport{
		ReporterID:  reporterID,
		PostID:      postID,
		Type:        rtype,
		Description: utils.SanitizeText(description),
		Status:      models.ReportStatusPending,
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		// 同一举报人对同一帖子同一理由只能有一条记录
		var dup int64
		if err := tx.Model(&models.ContentReport{}).
			Where("reporter_id = ? AND post_id = ? AND type = ?", reporterID, postID, rtype).
			Count(&dup).Error; err != nil {
			return err
		}
		if dup > 0 {
			return ErrDuplicateReport
		}

		if err := tx.Create(&report).Error; err != nil {
			return err
		}

		var pending int64
		if err := tx.Model(&models.ContentReport{}).
			Where("post_id = ? AND status = ?", postID, models.ReportStatusPending).
			Count(&pending).Error; err != nil {
			return err
		}

		// 首次越过阈值时下架；removed 具有粘性，之后的举报不再触发
		if pending >= RemovalThreshold && !post.Removed {
			if err := tx.Model(&models.Post{}).Where("id = ?", postID).
				Update("removed", true).Error; err != nil {
				return err
			}

			// 下架通知按 (作者, 帖子, 类型) 去重，保证只发一次
			var existing int64
			if err := tx.Model(&models.Notification{}).
				Where("user_id = ? AND post_id = ? AND type = ?",
					post.UserID, postID, models.NotificationTypePostRemoved).
				Count(&existing).Error; err != nil {
				return err
			}
			if existing == 0 {
				notification := models.Notification{
					UserID: post.UserID,
					PostID: &postID,
					Type:   models.NotificationTypePostRemoved,
					Reason: fmt.Sprintf("您的作品因收到 %d 条举报已被暂时隐藏，您可以提交申诉。", pending),
				}
				if err := tx.Create(&notification).Error; err != nil {
					return err
				}
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &report, nil
}

// CountPending 统计帖子的待处理举报数，可按类型过滤
func CountPending(postID uint, types ...models.ReportType) int64 {
	query := db.DB.Model(&models.ContentReport{}).
		Where("post_id = ? AND status = ?", postID, models.ReportStatusPending)
	if len(types) > 0 {
		query = query.Where("type IN ?", types)
	}

	var count int64
	query.Count(&count)
	return count
}

// ResolveReports 批量终结举报（resolved/dismissed 均为终态，不会重新打开）。
// removed 标记保持粘性，只能通过申诉通过清除，防止靠撤销举报绕过申诉审核。
func ResolveReports(reportIDs []uint, outcome models.ReportStatus, resolverID uint) error {
	if outcome != models.ReportStatusResolved && outcome != models.ReportStatusDismissed {
		return ErrInvalidOutcome
	}
	if len(reportIDs) == 0 {
		return ErrNoReportsSelected
	}

	return db.DB.Transaction(func(tx *gorm.DB) error {
		return resolveReportsTx(tx, reportIDs, outcome, resolverID)
	})
}

// resolveReportsTx 在既有事务内终结举报，申诉通过时复用
func resolveReportsTx(tx *gorm.DB, reportIDs []uint, outcome models.ReportStatus, resolverID uint) error {
	if len(reportIDs) == 0 {
		return nil
	}

	now := time.Now()
	return tx.Model(&models.ContentReport{}).
		Where("id IN ? AND status = ?", reportIDs, models.ReportStatusPending).
		Updates(map[string]interface{}{
			"status":      outcome,
			"resolved_at": &now,
			"resolver_id": resolverID,
		}).Error
}

// pendingReportIDsTx 查询帖子当前全部待处理举报 ID
func pendingReportIDsTx(tx *gorm.DB, postID uint) ([]uint, error) {
	var ids []uint
	err := tx.Model(&models.ContentReport{}).
		Where("post_id = ? AND status = ?", postID, models.ReportStatusPending).
		Pluck("id", &ids).Error
	return ids, err
}
