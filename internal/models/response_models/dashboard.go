package response_models

import "time"

type TimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	// "day" | "week" | "month"
	Interval string `json:"interval"`
	// Optional: timezone used for bucketing (defaults to UTC if empty)
	Timezone string `json:"timezone,omitempty"`
}

type KPIBlock struct {
	TotalAccounts      int64 `json:"total_accounts"`
	NewAccounts        int64 `json:"new_accounts"`
	SurveysSubmitted   int64 `json:"surveys_submitted"`
	BehaviorsSubmitted int64 `json:"behaviors_submitted"`
	TipsGenerated      int64 `json:"tips_generated"`

	// share of accounts with a stored survey, 0..100
	SurveyCompletionPct float64 `json:"survey_completion_pct"`
}

type SeriesPoint struct {
	Bucket time.Time `json:"bucket"`
	Value  int64     `json:"value"`
}

type CountSeries struct {
	Points []SeriesPoint `json:"points"`
	Total  int64         `json:"total"`
}

type BehaviorPopularity struct {
	BehaviorID    int     `json:"behavior_id"`
	BehaviorTitle string  `json:"behavior_title"`
	Selected      int64   `json:"selected"`
	HighPriority  int64   `json:"high_priority"`
	Percent       float64 `json:"percent"`
}

type DashboardReport struct {
	Range        TimeRange            `json:"range"`
	KPIs         KPIBlock             `json:"kpis"`
	NewUsers     CountSeries          `json:"new_users"`
	Submissions  CountSeries          `json:"survey_submissions"`
	TopBehaviors []BehaviorPopularity `json:"top_behaviors"`
}
