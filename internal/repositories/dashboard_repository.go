package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	dbm "eatwise/internal/models/db_models"
)

type DashboardRepository interface {
	// KPIs / counts
	CountTotalAccounts(ctx context.Context) (int64, error)
	CountNewAccounts(ctx context.Context, start, end time.Time) (int64, error)
	CountSurveySubmissions(ctx context.Context) (int64, error)
	CountAccountsWithBehaviors(ctx context.Context) (int64, error)
	CountTipsInPeriod(ctx context.Context, start, end time.Time) (int64, error)

	// Time series
	NewUsersSeries(ctx context.Context, start, end time.Time, interval, tz string) ([]BucketSum, error)
	SubmissionsSeries(ctx context.Context, start, end time.Time, interval, tz string) ([]BucketSum, error)

	TopBehaviors(ctx context.Context, limit int) ([]BehaviorCountRow, error)
}

type dashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &dashboardRepository{db: db}
}

type BucketSum struct {
	Bucket time.Time `gorm:"column:bucket"`
	Sum    int64     `gorm:"column:sum"`
}

type BehaviorCountRow struct {
	BehaviorID    int    `gorm:"column:behavior_id"`
	BehaviorTitle string `gorm:"column:behavior_title"`
	Selected      int64  `gorm:"column:selected"`
	HighPriority  int64  `gorm:"column:high_priority"`
}

// dateTrunc buckets a column of UNIX seconds, e.g.
// date_trunc('day', timezone('Europe/Oslo', to_timestamp(created_at)))
func dateTrunc(tz string, unixColumn string) string {
	if tz == "" {
		return "date_trunc(?, to_timestamp(" + unixColumn + "))"
	}
	return "date_trunc(?, timezone(?, to_timestamp(" + unixColumn + ")))"
}

func truncArgs(interval, tz string) []interface{} {
	if tz == "" {
		return []interface{}{interval}
	}
	return []interface{}{interval, tz}
}

func (r *dashboardRepository) CountTotalAccounts(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&dbm.Account{}).Count(&n).Error
	return n, err
}

func (r *dashboardRepository) CountNewAccounts(ctx context.Context, start, end time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&dbm.Account{}).
		Where("created_at BETWEEN ? AND ?", start.Unix(), end.Unix()).
		Count(&n).Error
	return n, err
}

func (r *dashboardRepository) CountSurveySubmissions(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&dbm.QuestionAnswer{}).Count(&n).Error
	return n, err
}

func (r *dashboardRepository) CountAccountsWithBehaviors(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&dbm.UserBehavior{}).
		Distinct("account_id").
		Count(&n).Error
	return n, err
}

func (r *dashboardRepository) CountTipsInPeriod(ctx context.Context, start, end time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&dbm.UserTip{}).
		Where("created_at BETWEEN ? AND ?", start.Unix(), end.Unix()).
		Count(&n).Error
	return n, err
}

func (r *dashboardRepository) NewUsersSeries(ctx context.Context, start, end time.Time, interval, tz string) ([]BucketSum, error) {
	return r.countSeries(ctx, "accounts", start, end, interval, tz)
}

// SubmissionsSeries buckets by the first submission; resubmits only touch updated_at.
func (r *dashboardRepository) SubmissionsSeries(ctx context.Context, start, end time.Time, interval, tz string) ([]BucketSum, error) {
	return r.countSeries(ctx, "question_answers", start, end, interval, tz)
}

func (r *dashboardRepository) countSeries(ctx context.Context, table string, start, end time.Time, interval, tz string) ([]BucketSum, error) {
	var rows []BucketSum
	err := r.db.WithContext(ctx).
		Table(table).
		Select(dateTrunc(tz, "created_at")+" AS bucket, COUNT(*) AS sum", truncArgs(interval, tz)...).
		Where("deleted_at IS NULL").
		Where("created_at BETWEEN ? AND ?", start.Unix(), end.Unix()).
		Group("bucket").
		Order("bucket ASC").
		Find(&rows).Error
	return rows, err
}

func (r *dashboardRepository) TopBehaviors(ctx context.Context, limit int) ([]BehaviorCountRow, error) {
	var rows []BehaviorCountRow
	err := r.db.WithContext(ctx).
		Table("user_behaviors").
		Select(`
			behavior_id,
			MAX(behavior_title) AS behavior_title,
			COUNT(*) AS selected,
			COUNT(*) FILTER (WHERE high_priority) AS high_priority`).
		Where("deleted_at IS NULL").
		Group("behavior_id").
		Order("selected DESC, behavior_id ASC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}
