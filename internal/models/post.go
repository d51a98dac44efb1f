package models

import (
	"time"
)

type PostKind string

const (
	PostKindOriginal PostKind = "original"
	PostKindReply    PostKind = "reply"
	PostKindRepost   PostKind = "repost"
	PostKindQuote    PostKind = "quote"
)

type Post struct {
	ID     uint     `gorm:"primaryKey" json:"id"`
	Pid    string   `gorm:"uniqueIndex;size:36;not null" json:"pid"`
	UserID uint     `gorm:"not null;index" json:"user_id"`
	User   User     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	Kind   PostKind `gorm:"type:varchar(10);not null;default:'original'" json:"kind"`

	Content string `gorm:"type:text" json:"content"`

	ParentID     *uint `gorm:"index" json:"parent_id"`     // 回复目标
	ReferencedID *uint `gorm:"index" json:"referenced_id"` // 转发/引用目标

	// 祖先帖子 ID 列表（逗号分隔，按层级排序）。
	// 创建回复时一次性写入，之后不再重算。
	ConversationChain string `gorm:"type:text" json:"conversation_chain"`

	SoftDeleted bool       `gorm:"default:false;index" json:"soft_deleted"`
	DeletedAt   *time.Time `json:"deleted_at"`

	// 待处理举报达到阈值后置位，仅在申诉通过时清除
	Removed bool `gorm:"default:false;index" json:"removed"`

	IsVerified     bool `gorm:"default:false" json:"is_verified"`
	IsHumanDrawing bool `gorm:"default:false" json:"is_human_drawing"` // 手绘作品标记，决定 ai_art 举报是否合法

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 非数据库字段，用于查询时填充
	LikeCount  int `gorm:"-" json:"like_count"`
	ReplyCount int `gorm:"-" json:"reply_count"`
}
