package services

import (
	"context"
	"time"

	resp "eatwise/internal/models/response_models"
	"eatwise/internal/repositories"
	"eatwise/pkg/logger"
	"eatwise/pkg/utils"
)

const topBehaviorsLimit = 10

type DashboardService interface {
	BuildDashboard(ctx context.Context, rng resp.TimeRange) (*resp.DashboardReport, error)
}

type dashboardService struct {
	repo repositories.DashboardRepository
	log  *logger.Logger
}

func NewDashboardService(repo repositories.DashboardRepository, log *logger.Logger) DashboardService {
	return &dashboardService{repo: repo, log: log}
}

// normalizeRange fills defaults (last 30 days, daily buckets) and orders the bounds.
func normalizeRange(r resp.TimeRange) resp.TimeRange {
	out := r
	if out.Interval == "" {
		out.Interval = "day"
	}
	if out.End.IsZero() {
		out.End = time.Now().UTC()
	}
	if out.Start.IsZero() {
		out.Start = out.End.AddDate(0, 0, -30)
	}
	if out.Start.After(out.End) {
		out.Start, out.End = out.End, out.Start
	}
	return out
}

func percent(part, whole int64) float64 {
	if whole <= 0 {
		return 0
	}
	return float64(part) * 100.0 / float64(whole)
}

func toSeries(rows []repositories.BucketSum) resp.CountSeries {
	out := resp.CountSeries{Points: make([]resp.SeriesPoint, 0, len(rows))}
	for _, r := range rows {
		out.Points = append(out.Points, resp.SeriesPoint{Bucket: r.Bucket, Value: r.Sum})
		out.Total += r.Sum
	}
	return out
}

func (s *dashboardService) BuildDashboard(ctx context.Context, rng resp.TimeRange) (*resp.DashboardReport, error) {
	rng = normalizeRange(rng)
	report, err := s.build(ctx, rng)
	if err != nil {
		s.log.Error("dashboard query failed", "error", err)
		return nil, utils.ErrDatabaseError
	}
	return report, nil
}

func (s *dashboardService) build(ctx context.Context, rng resp.TimeRange) (*resp.DashboardReport, error) {
	totalAccounts, err := s.repo.CountTotalAccounts(ctx)
	if err != nil {
		return nil, err
	}
	newAccounts, err := s.repo.CountNewAccounts(ctx, rng.Start, rng.End)
	if err != nil {
		return nil, err
	}
	surveys, err := s.repo.CountSurveySubmissions(ctx)
	if err != nil {
		return nil, err
	}
	withBehaviors, err := s.repo.CountAccountsWithBehaviors(ctx)
	if err != nil {
		return nil, err
	}
	tips, err := s.repo.CountTipsInPeriod(ctx, rng.Start, rng.End)
	if err != nil {
		return nil, err
	}

	newUsers, err := s.repo.NewUsersSeries(ctx, rng.Start, rng.End, rng.Interval, rng.Timezone)
	if err != nil {
		return nil, err
	}
	submissions, err := s.repo.SubmissionsSeries(ctx, rng.Start, rng.End, rng.Interval, rng.Timezone)
	if err != nil {
		return nil, err
	}

	behaviorRows, err := s.repo.TopBehaviors(ctx, topBehaviorsLimit)
	if err != nil {
		return nil, err
	}
	top := make([]resp.BehaviorPopularity, 0, len(behaviorRows))
	for _, r := range behaviorRows {
		top = append(top, resp.BehaviorPopularity{
			BehaviorID:    r.BehaviorID,
			BehaviorTitle: r.BehaviorTitle,
			Selected:      r.Selected,
			HighPriority:  r.HighPriority,
			Percent:       percent(r.Selected, withBehaviors),
		})
	}

	return &resp.DashboardReport{
		Range: rng,
		KPIs: resp.KPIBlock{
			TotalAccounts:       totalAccounts,
			NewAccounts:         newAccounts,
			SurveysSubmitted:    surveys,
			BehaviorsSubmitted:  withBehaviors,
			TipsGenerated:       tips,
			SurveyCompletionPct: percent(surveys, totalAccounts),
		},
		NewUsers:     toSeries(newUsers),
		Submissions:  toSeries(submissions),
		TopBehaviors: top,
	}, nil
}
