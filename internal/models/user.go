package models

import (
	"time"
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"not null" json:"username"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`                           // Hash
	Avatar    string    `gorm:"default:🎨" json:"avatar"`                     // emoji 头像
	Bio       string    `gorm:"size:200" json:"bio"`                         // 个人简介
	Role      string    `gorm:"size:20;default:'user';not null" json:"role"` // user, moderator, admin
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsModerator 版主和管理员都可以处理举报与申诉
func (u *User) IsModerator() bool {
	return u.Role == "moderator" || u.Role == "admin"
}
