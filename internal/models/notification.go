package models

import (
	"time"
)

type NotificationType string

const (
	NotificationTypePostRemoved    NotificationType = "post_removed"    // 举报达阈值下架
	NotificationTypeAppealApproved NotificationType = "appeal_approved" // 申诉通过
	NotificationTypeAppealRejected NotificationType = "appeal_rejected" // 申诉被驳回
)

type Notification struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	UserID    uint             `gorm:"not null;index" json:"user_id"` // Receiver
	User      User             `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	ActorID   *uint            `gorm:"index" json:"actor_id"` // Sender
	Actor     User             `gorm:"foreignKey:ActorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"actor"`
	PostID    *uint            `gorm:"index" json:"post_id"` // 相关帖子，下架通知按 (user, post, type) 去重
	Type      NotificationType `gorm:"type:varchar(20);not null" json:"type"`
	Reason    string           `gorm:"type:text" json:"reason"` // 通知详细内容
	IsRead    bool             `gorm:"default:false;index" json:"is_read"`
	CreatedAt time.Time        `json:"created_at"`
}
