package services

import (
	"errors"
	"testing"

	"github.com/roywong35/human-art-social-sub000/internal/db"
	"github.com/roywong35/human-art-social-sub000/internal/models"
)

func TestCreateAppealGuards(t *testing.T) {
	setupTestDB(t)

	author := createUser(t)
	stranger := createUser(t)
	post := mustCreatePost(t, author, models.PostKindOriginal, "artwork", nil, false)

	// 未达阈值不能申诉
	if _, err := CreateAppeal(post.ID, author.ID, "please restore", nil); !errors.Is(err, ErrAppealNotEligible) {
		t.Errorf("Expected ErrAppealNotEligible below threshold, got %v", err)
	}

	removePostViaReports(t, post)

	// 非作者不能申诉
	if _, err := CreateAppeal(post.ID, stranger.ID, "not mine", nil); !errors.Is(err, ErrAppealForbidden) {
		t.Errorf("Expected ErrAppealForbidden, got %v", err)
	}
	// 空文本
	if _, err := CreateAppeal(post.ID, author.ID, "   ", nil); !errors.Is(err, ErrEmptyAppealText) {
		t.Errorf("Expected ErrEmptyAppealText, got %v", err)
	}

	appeal, err := CreateAppeal(post.ID, author.ID, "this is original work", []string{"https://example.com/wip.png"})
	if err != nil {
		t.Fatalf("CreateAppeal failed: %v", err)
	}
	if appeal.Status != models.AppealStatusPending {
		t.Errorf("Expected pending status, got %s", appeal.Status)
	}
	if got := appeal.EvidenceList(); len(got) != 1 || got[0] != "https://example.com/wip.png" {
		t.Errorf("Evidence round-trip failed: %v", got)
	}

	// 一帖只能申诉一次
	if _, err := CreateAppeal(post.ID, author.ID, "second try", nil); !errors.Is(err, ErrAppealExists) {
		t.Errorf("Expected ErrAppealExists, got %v", err)
	}
}

func TestApproveAppealRestoresPost(t *testing.T) {
	setupTestDB(t)

	author := createUser(t)
	moderator := createModerator(t)
	viewer := createUser(t)
	post := mustCreatePost(t, author, models.PostKindOriginal, "artwork", nil, false)
	removePostViaReports(t, post)

	appeal, err := CreateAppeal(post.ID, author.ID, "process video attached", nil)
	if err != nil {
		t.Fatalf("CreateAppeal failed: %v", err)
	}

	approved, err := ApproveAppeal(appeal.ID, moderator.ID)
	if err != nil {
		t.Fatalf("ApproveAppeal failed: %v", err)
	}
	if approved.Status != models.AppealStatusApproved {
		t.Errorf("Expected approved status, got %s", approved.Status)
	}
	if approved.ReviewerID == nil || *approved.ReviewerID != moderator.ID {
		t.Error("Expected reviewer to be recorded")
	}

	// 举报清零，removed 清除，帖子重新可见
	if count := CountPending(post.ID); count != 0 {
		t.Errorf("Expected 0 pending reports after approval, got %d", count)
	}
	restored := reloadPost(t, post.ID)
	if restored.Removed {
		t.Error("Expected removed flag cleared after approval")
	}
	if !IsVisible(restored, viewer.ID) {
		t.Error("Expected restored post to be visible to other viewers")
	}

	var n int64
	db.DB.Model(&models.Notification{}).
		Where("user_id = ? AND post_id = ? AND type = ?",
			author.ID, post.ID, models.NotificationTypeAppealApproved).
		Count(&n)
	if n != 1 {
		t.Errorf("Expected one approval notification, got %d", n)
	}

	// 终态不可重复审批
	if _, err := ApproveAppeal(appeal.ID, moderator.ID); !errors.Is(err, ErrAppealNotPending) {
		t.Errorf("Expected ErrAppealNotPending on second approval, got %v", err)
	}
	if _, err := RejectAppeal(appeal.ID, moderator.ID, ""); !errors.Is(err, ErrAppealNotPending) {
		t.Errorf("Expected ErrAppealNotPending on reject after approval, got %v", err)
	}
}

func TestRejectAppealKeepsPostHidden(t *testing.T) {
	setupTestDB(t)

	author := createUser(t)
	moderator := createModerator(t)
	viewer := createUser(t)
	post := mustCreatePost(t, author, models.PostKindOriginal, "artwork", nil, false)
	removePostViaReports(t, post)

	appeal, err := CreateAppeal(post.ID, author.ID, "please reconsider", nil)
	if err != nil {
		t.Fatalf("CreateAppeal failed: %v", err)
	}

	rejected, err := RejectAppeal(appeal.ID, moderator.ID, "evidence insufficient")
	if err != nil {
		t.Fatalf("RejectAppeal failed: %v", err)
	}
	if rejected.Status != models.AppealStatusRejected {
		t.Errorf("Expected rejected status, got %s", rejected.Status)
	}

	// 举报仍为待处理，帖子继续隐藏
	if count := CountPending(post.ID); count != 3 {
		t.Errorf("Expected pending reports untouched after rejection, got %d", count)
	}
	hidden := reloadPost(t, post.ID)
	if !hidden.Removed {
		t.Error("Expected post to stay removed after rejection")
	}
	if IsVisible(hidden, viewer.ID) {
		t.Error("Expected rejected post to stay hidden")
	}

	var n int64
	db.DB.Model(&models.Notification{}).
		Where("user_id = ? AND type = ?", author.ID, models.NotificationTypeAppealRejected).
		Count(&n)
	if n != 1 {
		t.Errorf("Expected one rejection notification, got %d", n)
	}

	// 驳回后也不能再发起第二次申诉
	if _, err := CreateAppeal(post.ID, author.ID, "one more time", nil); !errors.Is(err, ErrAppealExists) {
		t.Errorf("Expected ErrAppealExists after rejection, got %v", err)
	}
}

func TestGetAppealStatusTransitions(t *testing.T) {
	setupTestDB(t)

	author := createUser(t)
	stranger := createUser(t)
	post := mustCreatePost(t, author, models.PostKindOriginal, "artwork", nil, false)

	// 只有作者能查状态
	if _, err := GetAppealStatus(post.ID, stranger.ID); !errors.Is(err, ErrAppealForbidden) {
		t.Errorf("Expected ErrAppealForbidden, got %v", err)
	}

	info, err := GetAppealStatus(post.ID, author.ID)
	if err != nil {
		t.Fatalf("GetAppealStatus failed: %v", err)
	}
	if info.HasAppeal || info.CanAppeal {
		t.Error("Expected no appeal and not eligible before removal")
	}

	removePostViaReports(t, post)

	info, err = GetAppealStatus(post.ID, author.ID)
	if err != nil {
		t.Fatalf("GetAppealStatus failed: %v", err)
	}
	if info.HasAppeal || !info.CanAppeal {
		t.Error("Expected eligible but no appeal after removal")
	}

	if _, err := CreateAppeal(post.ID, author.ID, "restore please", nil); err != nil {
		t.Fatalf("CreateAppeal failed: %v", err)
	}

	info, err = GetAppealStatus(post.ID, author.ID)
	if err != nil {
		t.Fatalf("GetAppealStatus failed: %v", err)
	}
	if !info.HasAppeal || info.Appeal == nil {
		t.Error("Expected appeal to be reported after creation")
	}
	if info.Appeal.Status != models.AppealStatusPending {
		t.Errorf("Expected pending appeal, got %s", info.Appeal.Status)
	}
}

func TestAppealNotFound(t *testing.T) {
	setupTestDB(t)

	moderator := createModerator(t)
	if _, err := ApproveAppeal(999, moderator.ID); !errors.Is(err, ErrAppealNotFound) {
		t.Errorf("Expected ErrAppealNotFound, got %v", err)
	}
	if _, err := RejectAppeal(999, moderator.ID, ""); !errors.Is(err, ErrAppealNotFound) {
		t.Errorf("Expected ErrAppealNotFound, got %v", err)
	}
}
