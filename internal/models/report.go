package models

import (
	"time"
)

type ReportType string

const (
	ReportTypeAIArt          ReportType = "ai_art" // 仅对手绘标记帖子合法
	ReportTypeHarassment     ReportType = "harassment"
	ReportTypeSpam           ReportType = "spam"
	ReportTypeInappropriate  ReportType = "inappropriate"
	ReportTypeMisinformation ReportType = "misinformation"
	ReportTypeCopyright      ReportType = "copyright"
	ReportTypeOther          ReportType = "other"
)

type ReportStatus string

const (
	ReportStatusPending   ReportStatus = "pending"
	ReportStatusResolved  ReportStatus = "resolved"
	ReportStatusDismissed ReportStatus = "dismissed"
)

type ContentReport struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	ReporterID  uint         `gorm:"not null;index;uniqueIndex:idx_reporter_post_type" json:"reporter_id"`
	Reporter    User         `gorm:"foreignKey:ReporterID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"reporter"`
	PostID      uint         `gorm:"not null;index;uniqueIndex:idx_reporter_post_type" json:"post_id"`
	Post        Post         `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"post"`
	Type        ReportType   `gorm:"type:varchar(20);not null;uniqueIndex:idx_reporter_post_type" json:"type"`
	Description string       `gorm:"type:text" json:"description"`
	Status      ReportStatus `gorm:"type:varchar(10);not null;default:'pending';index" json:"status"`
	CreatedAt   time.Time    `json:"created_at"`
	ResolvedAt  *time.Time   `json:"resolved_at"`
	ResolverID  *uint        `gorm:"index" json:"resolver_id"`
}
