package cron

import (
	"fmt"
	"time"

	"github.com/devlaunch/academy-api/model"
)

// BackfillOrphanPayments attaches payment rows recorded before the payer had
// an account to the account that now owns the same email address.
func (m *CronManager) BackfillOrphanPayments() {
	jobName := "backfill_orphan_payments"

	result := m.db.Exec(`
		UPDATE payments
		SET user_id = users.id
		FROM users
		WHERE payments.user_id IS NULL
		  AND payments.email <> ''
		  AND LOWER(payments.email) = LOWER(users.email)
	`)
	if result.Error != nil {
		m.logJobError(jobName, result.Error)
		return
	}

	m.logJobComplete(jobName, fmt.Sprintf("Linked %d orphan payment(s) to user accounts", result.RowsAffected))
}

// CleanupExpiredBlacklistTokens removes blacklist entries whose tokens have
// expired on their own and no longer need to be tracked.
func (m *CronManager) CleanupExpiredBlacklistTokens() {
	jobName := "cleanup_token_blacklist"

	result := m.db.Where("expires_at < ?", time.Now()).Delete(&model.JWTTokenBlacklist{})
	if result.Error != nil {
		m.logJobError(jobName, result.Error)
		return
	}

	m.logJobComplete(jobName, fmt.Sprintf("Removed %d expired blacklist entries", result.RowsAffected))
}

// CleanupOldData prunes stale housekeeping rows: old cron job logs, used or
// expired password reset tokens, and announcements past their expiry.
func (m *CronManager) CleanupOldData() {
	jobName := "cleanup_old_data"

	cutoff := time.Now().AddDate(0, 0, -30)

	logs := m.db.Where("started_at < ?", cutoff).Delete(&model.CronJobLog{})
	if logs.Error != nil {
		m.logJobError(jobName, logs.Error)
		return
	}

	resets := m.db.Where("used_at IS NOT NULL OR expires_at < ?", time.Now()).Delete(&model.PasswordResetToken{})
	if resets.Error != nil {
		m.logJobError(jobName, resets.Error)
		return
	}

	announcements := m.db.Model(&model.Announcement{}).
		Where("expires_at IS NOT NULL AND expires_at < ? AND is_active = ?", time.Now(), true).
		Update("is_active", false)
	if announcements.Error != nil {
		m.logJobError(jobName, announcements.Error)
		return
	}

	m.logJobComplete(jobName, fmt.Sprintf(
		"Removed %d old job logs, %d reset tokens; deactivated %d expired announcements",
		logs.RowsAffected, resets.RowsAffected, announcements.RowsAffected,
	))
}
