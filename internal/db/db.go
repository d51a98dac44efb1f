package db

import (
	"log"
	"os"

	"github.com/roywong35/human-art-social-sub000/internal/models"
	"github.com/roywong35/human-art-social-sub000/internal/utils"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		// Fallback for local dev if not set
		dsn = "host=localhost user=postgres password=postgres dbname=artsocial port=5432 sslmode=disable"
	}

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Database connection established")

	if err := Migrate(DB); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed")

	seedModerator()
}

// Migrate 迁移全部模型（测试库复用）
func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Like{},
		&models.Hashtag{},
		&models.PostHashtag{},
		&models.ContentReport{},
		&models.PostAppeal{},
		&models.Notification{},
	)
}

// seedModerator 通过环境变量创建初始版主账号（已存在则跳过）
func seedModerator() {
	email := os.Getenv("MOD_EMAIL")
	password := os.Getenv("MOD_PASSWORD")
	if email == "" || password == "" {
		return
	}

	var count int64
	DB.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		return
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		log.Printf("Failed to hash moderator password: %v", err)
		return
	}

	mod := models.User{
		Username: "moderator",
		Email:    email,
		Password: hash,
		Role:     "moderator",
	}
	if err := DB.Create(&mod).Error; err != nil {
		log.Printf("Failed to create moderator account: %v", err)
		return
	}
	log.Println("Initial moderator account created")
}
