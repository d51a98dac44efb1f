package models

import (
	"encoding/json"
	"time"
)

type AppealStatus string

const (
	AppealStatusPending  AppealStatus = "pending"
	AppealStatusApproved AppealStatus = "approved"
	AppealStatusRejected AppealStatus = "rejected"
)

// PostAppeal 作者对自动下架的申诉，一帖至多一条（被驳回也不能重新发起）
type PostAppeal struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	PostID uint `gorm:"not null;uniqueIndex" json:"post_id"`
	Post   Post `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"post"`
	UserID uint `gorm:"not null;index" json:"user_id"` // 必须等于帖子作者
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`

	Text     string `gorm:"type:text;not null" json:"text"`
	Evidence string `gorm:"type:text" json:"-"` // 证据附件引用，JSON 数组

	Status      AppealStatus `gorm:"type:varchar(10);not null;default:'pending';index" json:"status"`
	ReviewedAt  *time.Time   `json:"reviewed_at"`
	ReviewerID  *uint        `gorm:"index" json:"reviewer_id"`
	ReviewNotes string       `gorm:"type:text" json:"review_notes"`
	CreatedAt   time.Time    `json:"created_at"`
}

func (a *PostAppeal) EvidenceList() []string {
	if a.Evidence == "" {
		return nil
	}
	var list []string
	if err := json.Unmarshal([]byte(a.Evidence), &list); err != nil {
		return nil
	}
	return list
}

func (a *PostAppeal) SetEvidence(list []string) {
	if len(list) == 0 {
		a.Evidence = ""
		return
	}
	data, err := json.Marshal(list)
	if err != nil {
		return
	}
	a.Evidence = string(data)
}
