package migration

import (
	"fmt"

	"github.com/cardnews/cardnews-backend/internal/codec"
	"github.com/cardnews/cardnews-backend/internal/domain"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	seedAdminEmail    = "admin@cardnews.com"
	seedAdminName     = "관리자"
	seedAdminPassword = "admin123"
	seedBcryptCost    = 12
)

// Models every table the API owns, in dependency order
func Models() []interface{} {
	return []interface{}{
		&domain.User{},
		&domain.Template{},
		&domain.Work{},
		&domain.WorkVersion{},
		&domain.Comment{},
		&domain.Like{},
	}
}

// Run executes AutoMigrate and seeds default data if the users table is empty.
func Run(db *gorm.DB) error {
	// 1. AutoMigrate - 테이블 없으면 생성, 컬럼/인덱스 추가
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	// 2. Seed - 사용자가 하나도 없을 때만 관리자와 기본 템플릿 삽입
	var count int64
	if err := db.Model(&domain.User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return nil
	}
	return Seed(db)
}

// Seed inserts the admin account and the default public template
func Seed(db *gorm.DB) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(seedAdminPassword), seedBcryptCost)
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}

	admin := domain.User{
		ID:       uuid.NewString(),
		Email:    seedAdminEmail,
		Name:     seedAdminName,
		Password: string(hash),
	}

	slides := []domain.Slide{
		{
			ID:              uuid.NewString(),
			Content:         "첫 번째 슬라이드",
			BackgroundColor: "#ffffff",
			TextColor:       "#000000",
			FontSize:        domain.DefaultFontSize,
			FontFamily:      domain.DefaultFontFamily,
		},
		{
			ID:              uuid.NewString(),
			Content:         "두 번째 슬라이드",
			BackgroundColor: "#f3f4f6",
			TextColor:       "#1f2937",
			FontSize:        domain.DefaultFontSize,
			FontFamily:      domain.DefaultFontFamily,
		},
	}

	tmpl := domain.Template{
		ID:          uuid.NewString(),
		Name:        "기본 템플릿",
		Description: "카드뉴스 기본 템플릿입니다.",
		Thumbnail:   "https://cardnews-images.s3.amazonaws.com/templates/default.jpg",
		Category:    "business",
		Tags:        codec.EncodeTags([]string{"기본", "비즈니스"}),
		Slides:      codec.EncodeSlides(slides),
		Language:    domain.DefaultLanguage,
		IsPublic:    true,
		AuthorID:    admin.ID,
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&admin).Error; err != nil {
			return fmt.Errorf("seed admin: %w", err)
		}
		if err := tx.Omit("Author").Create(&tmpl).Error; err != nil {
			return fmt.Errorf("seed template: %w", err)
		}
		return nil
	})
}
