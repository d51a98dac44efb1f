package services

import (
	"github.com/roywong35/human-art-social-sub000/internal/db"
	"github.com/roywong35/human-art-social-sub000/internal/models"
	"github.com/roywong35/human-art-social-sub000/internal/utils"
)

// IsVisible 判断单个帖子对指定浏览者是否可见。
// viewerID 为 0 表示未登录用户。
func IsVisible(post *models.Post, viewerID uint) bool {
	states, err := loadPostStates(relatedPostIDs([]models.Post{*post}))
	if err != nil {
		return false
	}
	states[post.ID] = stateOf(post)

	reported, err := reportedPostIDs(viewerID)
	if err != nil {
		return false
	}

	return visibleWithin(stateOf(post), viewerID, states, reported)
}

// FilterVisible 信息流批量过滤。
// 规则 5 不允许逐行查库：浏览者的举报集合和全局下架/删除状态各预取一次，
// 之后全部是内存集合判断。
func FilterVisible(posts []models.Post, viewerID uint) []models.Post {
	if len(posts) == 0 {
		return posts
	}

	states, err := loadPostStates(relatedPostIDs(posts))
	if err != nil {
		return nil
	}
	for i := range posts {
		states[posts[i].ID] = stateOf(&posts[i])
	}

	reported, err := reportedPostIDs(viewerID)
	if err != nil {
		return nil
	}

	visible := make([]models.Post, 0, len(posts))
	for i := range posts {
		if visibleWithin(stateOf(&posts[i]), viewerID, states, reported) {
			visible = append(visible, posts[i])
		}
	}
	return visible
}

// relatedPostIDs 收集候选集引用到的全部帖子 ID：回复目标、转发/引用目标、对话链祖先
func relatedPostIDs(posts []models.Post) []uint {
	seen := make(map[uint]bool)
	ids := make([]uint, 0, len(posts))

	add := func(id uint) {
		if id != 0 && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	for i := range posts {
		p := &posts[i]
		if p.ParentID != nil {
			add(*p.ParentID)
		}
		if p.ReferencedID != nil {
			add(*p.ReferencedID)
		}
		for _, id := range utils.SplitIDs(p.ConversationChain) {
			add(id)
		}
	}
	return ids
}

// reportedPostIDs 浏览者自己举报过（仍待处理）的帖子集合，一次查询
func reportedPostIDs(viewerID uint) (map[uint]bool, error) {
	reported := make(map[uint]bool)
	if viewerID == 0 {
		return reported, nil
	}

	var ids []uint
	err := db.DB.Model(&models.ContentReport{}).
		Where("reporter_id = ? AND status = ?", viewerID, models.ReportStatusPending).
		Pluck("post_id", &ids).Error
	if err != nil {
		return nil, err
	}

	for _, id := range ids {
		reported[id] = true
	}
	return reported, nil
}

// visibleWithin 按顺序套用可见性规则，遇到第一条不满足即返回。
//  1. 未被软删；
//  2. 未被下架（作者本人例外，作者要能看到自己被下架的作品去申诉）；
//  3. 转发/引用：目标帖子需通过规则 1-2（只查一跳）；
//  4. 回复：父帖需通过规则 1-2，且对话链完整；
//  5. 浏览者举报过的帖子及其衍生内容对举报者本人隐藏。
func visibleWithin(p postState, viewerID uint, states map[uint]postState, reported map[uint]bool) bool {
	if p.SoftDeleted {
		return false
	}
	if p.Removed && p.UserID != viewerID {
		return false
	}

	if p.Kind == models.PostKindRepost || p.Kind == models.PostKindQuote {
		if p.ReferencedID == nil {
			return false
		}
		ref, ok := states[*p.ReferencedID]
		if !ok || !passesBaseChecks(ref, viewerID) {
			return false
		}
	}

	if p.Kind == models.PostKindReply {
		if p.ParentID == nil {
			return false
		}
		parent, ok := states[*p.ParentID]
		if !ok || !passesBaseChecks(parent, viewerID) {
			return false
		}
		if !chainValidWithin(p, states) {
			return false
		}
	}

	if reported[p.ID] {
		return false
	}
	if p.ReferencedID != nil && reported[*p.ReferencedID] {
		return false
	}
	if p.ParentID != nil && reported[*p.ParentID] {
		return false
	}

	return true
}

// passesBaseChecks 规则 1-2（软删、下架+作者例外）
func passesBaseChecks(p postState, viewerID uint) bool {
	if p.SoftDeleted {
		return false
	}
	if p.Removed && p.UserID != viewerID {
		return false
	}
	return true
}
