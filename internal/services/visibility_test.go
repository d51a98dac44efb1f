package services

import (
	"testing"

	"github.com/roywong35/human-art-social-sub000/internal/models"
)

func TestRemovedPostHiddenExceptAuthor(t *testing.T) {
	setupTestDB(t)

	author := createUser(t)
	viewer := createUser(t)
	post := mustCreatePost(t, author, models.PostKindOriginal, "artwork", nil, false)
	removePostViaReports(t, post)

	post = reloadPost(t, post.ID)
	if IsVisible(post, viewer.ID) {
		t.Error("Removed post should be hidden from other viewers")
	}
	// 作者始终能看到自己被下架的作品（用于申诉）
	if !IsVisible(post, author.ID) {
		t.Error("Removed post should stay visible to its author")
	}
	if IsVisible(post, 0) {
		t.Error("Removed post should be hidden from anonymous viewers")
	}
}

func TestSoftDeletedPostHidden(t *testing.T) {
	setupTestDB(t)

	author := createUser(t)
	viewer := createUser(t)
	post := mustCreatePost(t, author, models.PostKindOriginal, "artwork", nil, false)

	if err := SoftDeletePost(post.ID, author.ID); err != nil {
		t.Fatalf("SoftDeletePost failed: %v", err)
	}

	post = reloadPost(t, post.ID)
	if IsVisible(post, viewer.ID) {
		t.Error("Soft-deleted post should be hidden")
	}
}

func TestQuoteOfRemovedTargetHidden(t *testing.T) {
	setupTestDB(t)

	author := createUser(t)
	quoter := createUser(t)
	viewer := createUser(t)

	target := mustCreatePost(t, author, models.PostKindOriginal, "artwork", nil, false)
	quote := mustCreatePost(t, quoter, models.PostKindQuote, "look at this", target, false)
	repost := mustCreatePost(t, quoter, models.PostKindRepost, "", target, false)

	if !IsVisible(reloadPost(t, quote.ID), viewer.ID) {
		t.Fatal("Quote of a live target should be visible")
	}

	removePostViaReports(t, target)

	if IsVisible(reloadPost(t, quote.ID), viewer.ID) {
		t.Error("Quote of a removed target should be hidden")
	}
	if IsVisible(reloadPost(t, repost.ID), viewer.ID) {
		t.Error("Repost of a removed target should be hidden")
	}
	// 目标作者例外：引用的一跳检查对目标作者保留可见
	if !IsVisible(reloadPost(t, quote.ID), author.ID) {
		t.Error("Quote should stay visible to the removed target's author")
	}
}

func TestReplyChainPropagation(t *testing.T) {
	setupTestDB(t)

	root := createUser(t)
	replier := createUser(t)
	viewer := createUser(t)

	a := mustCreatePost(t, root, models.PostKindOriginal, "thread start", nil, false)
	b := mustCreatePost(t, replier, models.PostKindReply, "first reply", a, false)
	c := mustCreatePost(t, replier, models.PostKindReply, "second level", b, false)

	if c.ConversationChain == "" {
		t.Fatal("Reply should capture its conversation chain at creation")
	}
	if !IsVisible(reloadPost(t, c.ID), viewer.ID) {
		t.Fatal("Reply with live ancestors should be visible")
	}

	// 链顶软删后整个子树不可见
	if err := SoftDeletePost(a.ID, root.ID); err != nil {
		t.Fatalf("SoftDeletePost failed: %v", err)
	}

	if IsVisible(reloadPost(t, b.ID), viewer.ID) {
		t.Error("Direct reply should be hidden when parent is soft-deleted")
	}
	if IsVisible(reloadPost(t, c.ID), viewer.ID) {
		t.Error("Deep reply should be hidden when chain ancestor is soft-deleted")
	}

	if IsChainValid(reloadPost(t, c.ID)) {
		t.Error("Chain with soft-deleted ancestor should be invalid")
	}
}

func TestReporterSelfFilter(t *testing.T) {
	setupTestDB(t)

	author := createUser(t)
	reporter := createUser(t)
	other := createUser(t)

	post := mustCreatePost(t, author, models.PostKindOriginal, "artwork", nil, false)
	quote := mustCreatePost(t, other, models.PostKindQuote, "quoting", post, false)

	// 单条举报远低于阈值
	mustSubmitReport(t, reporter, post, models.ReportTypeSpam)

	if IsVisible(reloadPost(t, post.ID), reporter.ID) {
		t.Error("Reporter should not keep seeing the post they reported")
	}
	if IsVisible(reloadPost(t, quote.ID), reporter.ID) {
		t.Error("Reporter should not see quotes of the post they reported")
	}
	// 其他人不受影响
	if !IsVisible(reloadPost(t, post.ID), other.ID) {
		t.Error("Post below threshold should stay visible to others")
	}
	if !IsVisible(reloadPost(t, quote.ID), author.ID) {
		t.Error("Quote should stay visible to uninvolved viewers")
	}
}

func TestFilterVisibleBatch(t *testing.T) {
	setupTestDB(t)

	author := createUser(t)
	reporter := createUser(t)
	viewer := createUser(t)

	visiblePost := mustCreatePost(t, author, models.PostKindOriginal, "fine", nil, false)
	deletedPost := mustCreatePost(t, author, models.PostKindOriginal, "gone", nil, false)
	removedPost := mustCreatePost(t, author, models.PostKindOriginal, "flagged", nil, false)
	reportedPost := mustCreatePost(t, author, models.PostKindOriginal, "disliked", nil, false)

	if err := SoftDeletePost(deletedPost.ID, author.ID); err != nil {
		t.Fatalf("SoftDeletePost failed: %v", err)
	}
	removePostViaReports(t, removedPost)
	mustSubmitReport(t, reporter, reportedPost, models.ReportTypeOther)

	var posts []models.Post
	for _, id := range []uint{visiblePost.ID, deletedPost.ID, removedPost.ID, reportedPost.ID} {
		posts = append(posts, *reloadPost(t, id))
	}

	got := FilterVisible(posts, viewer.ID)
	if len(got) != 2 {
		t.Fatalf("Expected 2 visible posts for neutral viewer, got %d", len(got))
	}

	// 举报者还要过滤掉自己举报过的
	got = FilterVisible(posts, reporter.ID)
	if len(got) != 1 || got[0].ID != visiblePost.ID {
		t.Errorf("Expected only the clean post for the reporter, got %d posts", len(got))
	}

	// 作者能看到自己被下架的帖子，但软删的不行
	got = FilterVisible(posts, author.ID)
	if len(got) != 3 {
		t.Errorf("Expected author to see 3 posts (soft-deleted excluded), got %d", len(got))
	}
}
