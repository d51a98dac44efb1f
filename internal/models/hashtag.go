package models

import (
	"time"
)

type Hashtag struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:100;not null" json:"name"` // 小写规范化
	CreatedAt time.Time `json:"created_at"`
}

// PostHashtag 帖子与话题的关联行。
// CreatedAt 是关联自己的时间戳（区别于帖子时间），趋势窗口统计用的是它。
type PostHashtag struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;index;uniqueIndex:idx_post_hashtag" json:"post_id"`
	HashtagID uint      `gorm:"not null;index;uniqueIndex:idx_post_hashtag" json:"hashtag_id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
