package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/roywong35/human-art-social-sub000/internal/db"
	"github.com/roywong35/human-art-social-sub000/internal/models"
	"github.com/roywong35/human-art-social-sub000/internal/utils"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB 为每个测试创建独立的内存 SQLite 库。
// 连接串带唯一名字，避免 gorm 连接池拿到不同的 :memory: 实例
func setupTestDB(t *testing.T) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	db.DB = gdb
	utils.GetCache().Purge()
}

var userSeq int

func createUser(t *testing.T) *models.User {
	t.Helper()

	userSeq++
	user := &models.User{
		Username: fmt.Sprintf("user%d", userSeq),
		Email:    fmt.Sprintf("user%d@example.com", userSeq),
		Password: "not-a-real-hash",
	}
	if err := db.DB.Create(user).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	return user
}

func createModerator(t *testing.T) *models.User {
	t.Helper()

	mod := createUser(t)
	if err := db.DB.Model(mod).Update("role", "moderator").Error; err != nil {
		t.Fatalf("Failed to promote moderator: %v", err)
	}
	mod.Role = "moderator"
	return mod
}

func mustCreatePost(t *testing.T, author *models.User, kind models.PostKind, content string, target *models.Post, humanDrawing bool) *models.Post {
	t.Helper()

	var targetID *uint
	if target != nil {
		targetID = &target.ID
	}
	post, err := CreatePost(author.ID, kind, content, targetID, humanDrawing)
	if err != nil {
		t.Fatalf("Failed to create %s post: %v", kind, err)
	}
	return post
}

func mustSubmitReport(t *testing.T, reporter *models.User, post *models.Post, rtype models.ReportType) *models.ContentReport {
	t.Helper()

	report, err := SubmitReport(reporter.ID, post.ID, rtype, "test report")
	if err != nil {
		t.Fatalf("Failed to submit report: %v", err)
	}
	return report
}

// removePostViaReports 三个不同用户举报同一帖子，触发自动下架
func removePostViaReports(t *testing.T, post *models.Post) {
	t.Helper()

	for _, rtype := range []models.ReportType{
		models.ReportTypeSpam,
		models.ReportTypeHarassment,
		models.ReportTypeOther,
	} {
		mustSubmitReport(t, createUser(t), post, rtype)
	}
}

func reloadPost(t *testing.T, id uint) *models.Post {
	t.Helper()

	var post models.Post
	if err := db.DB.First(&post, id).Error; err != nil {
		t.Fatalf("Failed to reload post %d: %v", id, err)
	}
	return &post
}

// tagPostAt 手动打话题标签，关联行时间戳可控（趋势窗口测试用）
func tagPostAt(t *testing.T, post *models.Post, name string, at time.Time) {
	t.Helper()

	var tag models.Hashtag
	if err := db.DB.Where("name = ?", name).
		FirstOrCreate(&tag, models.Hashtag{Name: name}).Error; err != nil {
		t.Fatalf("Failed to create hashtag: %v", err)
	}
	link := models.PostHashtag{PostID: post.ID, HashtagID: tag.ID, CreatedAt: at}
	if err := db.DB.Create(&link).Error; err != nil {
		t.Fatalf("Failed to link hashtag: %v", err)
	}
}

func likePostAt(t *testing.T, user *models.User, post *models.Post, at time.Time) {
	t.Helper()

	like := models.Like{UserID: user.ID, PostID: post.ID, CreatedAt: at}
	if err := db.DB.Create(&like).Error; err != nil {
		t.Fatalf("Failed to create like: %v", err)
	}
}
