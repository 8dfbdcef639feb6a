package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/devlaunch/academy-api/model"
)

// StatsService aggregates the numbers shown on the admin dashboard.
type StatsService struct {
	db *gorm.DB
}

// NewStatsService creates a new stats service
func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{db: db}
}

// DashboardStats is the admin dashboard summary
type DashboardStats struct {
	TotalStudents     int64   `json:"total_students"`
	EnrolledStudents  int64   `json:"enrolled_students"`
	TotalRevenue      float64 `json:"total_revenue"` // rupees, captured payments only
	RecentEnrollments int64   `json:"recent_enrollments"`
}

// GetDashboardStats computes totals, revenue from captured payments, and
// enrollments over the last 7 days.
func (s *StatsService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats

	db := s.db.WithContext(ctx)

	if err := db.Model(&model.User{}).Where("role = ?", model.RoleStudent).Count(&stats.TotalStudents).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&model.User{}).
		Where("role = ? AND enrolled_course = ?", model.RoleStudent, true).
		Count(&stats.EnrolledStudents).Error; err != nil {
		return nil, err
	}

	// Payments store paise; the dashboard shows rupees.
	var totalPaise int64
	if err := db.Model(&model.Payment{}).
		Where("status = ?", "captured").
		Select("COALESCE(SUM(amount), 0)").
		Scan(&totalPaise).Error; err != nil {
		return nil, err
	}
	stats.TotalRevenue = float64(totalPaise) / 100

	sevenDaysAgo := time.Now().AddDate(0, 0, -7)
	if err := db.Model(&model.User{}).
		Where("enrolled_course = ? AND updated_at >= ?", true, sevenDaysAgo).
		Count(&stats.RecentEnrollments).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}
