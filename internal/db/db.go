package db

import (
	"log"
	"os"

	"greensnap/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		// Fallback for local dev if not set
		dsn = "host=localhost user=postgres password=postgres dbname=greensnap port=5432 sslmode=disable TimeZone=UTC"
	}

	var err error
	// TranslateError: 唯一索引冲突统一转成 gorm.ErrDuplicatedKey，
	// 去重集合靠这个判断作废符撞库
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Database connection established")

	// Auto Migrate
	err = DB.AutoMigrate(
		&models.Submission{},
		&models.NullifierRecord{},
		&models.StrikeRecord{},
		&models.StrikeLog{},
		&models.RewardAccount{},
		&models.RewardLog{},
		&models.ReviewAlert{},
		&models.AdminGrant{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed")

	// Seed initial admin grant
	seedAdminGrant()
}

// seedAdminGrant 用 ADMIN_TOKEN 环境变量补种一条管理授权
// 表里只存哈希，明文令牌不落库
func seedAdminGrant() {
	token := os.Getenv("ADMIN_TOKEN")
	if token == "" {
		log.Println("ADMIN_TOKEN not set, skipping admin grant seed")
		return
	}

	hash := hashSeedToken(token)

	var count int64
	DB.Model(&models.AdminGrant{}).Where("token_hash = ?", hash).Count(&count)
	if count > 0 {
		log.Println("Admin grant already seeded, skipping")
		return
	}

	grant := models.AdminGrant{
		TokenHash: hash,
		Role:      models.RoleAdmin,
		Label:     "seed",
	}
	if err := DB.Create(&grant).Error; err != nil {
		log.Printf("Failed to seed admin grant: %v", err)
		return
	}
	log.Println("Initial admin grant created successfully")
}
