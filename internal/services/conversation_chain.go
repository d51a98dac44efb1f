package services

import (
	"github.com/roywong35/human-art-social-sub000/internal/db"
	"github.com/roywong35/human-art-social-sub000/internal/models"
	"github.com/roywong35/human-art-social-sub000/internal/utils"
)

// postState 可见性判断用到的最小字段集合
type postState struct {
	ID                uint
	UserID            uint
	Kind              models.PostKind
	ParentID          *uint
	ReferencedID      *uint
	ConversationChain string
	SoftDeleted       bool
	Removed           bool
}

func stateOf(p *models.Post) postState {
	return postState{
		ID:                p.ID,
		UserID:            p.UserID,
		Kind:              p.Kind,
		ParentID:          p.ParentID,
		ReferencedID:      p.ReferencedID,
		ConversationChain: p.ConversationChain,
		SoftDeleted:       p.SoftDeleted,
		Removed:           p.Removed,
	}
}

// loadPostStates 批量加载帖子状态（包括已软删/已下架的行，链检查正是要发现它们）
func loadPostStates(ids []uint) (map[uint]postState, error) {
	states := make(map[uint]postState, len(ids))
	if len(ids) == 0 {
		return states, nil
	}

	var rows []models.Post
	err := db.DB.
		Select("id, user_id, kind, parent_id, referenced_id, conversation_chain, soft_deleted, removed").
		Where("id IN ?", ids).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	for i := range rows {
		states[rows[i].ID] = stateOf(&rows[i])
	}
	return states, nil
}

// IsChainValid 校验回复的祖先链是否完整可见。
// 对话链在创建回复时一次性写入，这里只做一次批量加载加集合判断，
// 不会随线程深度增长逐层查库。
func IsChainValid(post *models.Post) bool {
	ids := utils.SplitIDs(post.ConversationChain)
	if len(ids) == 0 {
		return true
	}

	states, err := loadPostStates(ids)
	if err != nil {
		return false
	}
	return chainValidWithin(stateOf(post), states)
}

// chainValidWithin 用已加载的状态集判断链有效性。
// 任一祖先（帖子自身除外）被软删或下架，整个子树都不可见；祖先缺失同样视为失效。
func chainValidWithin(p postState, states map[uint]postState) bool {
	for _, id := range utils.SplitIDs(p.ConversationChain) {
		if id == p.ID {
			continue
		}
		ancestor, ok := states[id]
		if !ok {
			return false
		}
		if ancestor.SoftDeleted || ancestor.Removed {
			return false
		}
	}
	return true
}
