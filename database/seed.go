package database

import (
	"fmt"
	"log"
	"os"

	"gorm.io/gorm"

	"github.com/devlaunch/academy-api/model"
	"github.com/devlaunch/academy-api/utils/auth"
)

// Seeder handles database seeding operations
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// SeedAll runs all seed functions
func (s *Seeder) SeedAll() error {
	log.Println("Starting database seeding...")

	if err := s.SeedAdminUser(); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	if err := s.SeedDefaultCourse(); err != nil {
		return fmt.Errorf("failed to seed default course: %w", err)
	}

	if err := s.SeedAppSettings(); err != nil {
		return fmt.Errorf("failed to seed app settings: %w", err)
	}

	log.Println("Database seeding completed.")
	return nil
}

// SeedAdminUser creates the initial admin account when ADMIN_EMAIL and
// ADMIN_PASSWORD are set and no admin exists yet.
func (s *Seeder) SeedAdminUser() error {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Println("ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	var count int64
	if err := s.db.Model(&model.User{}).Where("role = ?", model.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	admin := model.User{
		Email:        email,
		PasswordHash: hash,
		Name:         "Admin",
		Role:         model.RoleAdmin,
	}
	if err := s.db.Create(&admin).Error; err != nil {
		return err
	}

	log.Printf("Seeded admin user %s", email)
	return nil
}

// SeedDefaultCourse creates the flagship course if the catalog is empty.
func (s *Seeder) SeedDefaultCourse() error {
	var count int64
	if err := s.db.Model(&model.Course{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	course := model.Course{
		Title:            "Modern Web Development",
		Slug:             "modern-web-development",
		ShortDescription: "Full-stack web development from fundamentals to deployment.",
		Description:      "A project-based course covering HTML, CSS, JavaScript, React, Node.js and deployment.",
		Price:            29900,
		OriginalPrice:    59900,
		Discount:         "50% OFF",
		Duration:         "12 weeks",
		Level:            "Beginner to Advanced",
		Category:         "Web Development",
		Instructor:       "Academy Team",
		IsActive:         true,
	}
	if err := s.db.Create(&course).Error; err != nil {
		return err
	}

	log.Printf("Seeded default course %q (id=%d)", course.Title, course.ID)
	return nil
}

// SeedAppSettings creates default settings rows that the frontend reads.
func (s *Seeder) SeedAppSettings() error {
	defaults := []model.AppSetting{
		{Key: "logo_url", Value: "/logo.svg", Type: "string", Description: "Site logo URL", IsPublic: true, Category: "branding"},
		{Key: "support_email", Value: "support@example.com", Type: "string", Description: "Support contact shown in the footer", IsPublic: true, Category: "contact"},
		{Key: "enrollment_open", Value: "true", Type: "bool", Description: "Whether new enrollments are accepted", IsPublic: false, Category: "payments"},
	}

	for _, setting := range defaults {
		var existing model.AppSetting
		err := s.db.Where("key = ?", setting.Key).First(&existing).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}
		if err := s.db.Create(&setting).Error; err != nil {
			return err
		}
	}

	return nil
}
