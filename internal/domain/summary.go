package domain

import "time"

// Known analytics period tokens.
const (
	PeriodDay     = "1d"
	PeriodWeek    = "7d"
	PeriodMonth   = "30d"
	DefaultPeriod = PeriodWeek
)

// ResolvePeriod maps a period token to its window start relative to now.
// Unrecognized tokens deliberately fall back to the 7d window rather
// than failing; the normalized token is returned alongside the start.
func ResolvePeriod(period string, now time.Time) (string, time.Time) {
	switch period {
	case PeriodDay:
		return PeriodDay, now.AddDate(0, 0, -1)
	case PeriodWeek:
		return PeriodWeek, now.AddDate(0, 0, -7)
	case PeriodMonth:
		return PeriodMonth, now.AddDate(0, 0, -30)
	default:
		return DefaultPeriod, now.AddDate(0, 0, -7)
	}
}

// ProviderStat aggregates usage for one provider inside a window.
type ProviderStat struct {
	Provider    string `json:"provider"`
	Count       int    `json:"count"`
	TotalTokens int    `json:"total_tokens"`
}

// DailyCount is the number of exchanges on one UTC calendar day.
type DailyCount struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Count int    `json:"count"`
}

// Summary is the windowed usage report served to admins. Providers and
// days with no activity are omitted, not zero-filled.
type Summary struct {
	Period        string         `json:"period"`
	TotalQueries  int            `json:"total_queries"`
	NewUsers      int            `json:"new_users"`
	ProviderStats []ProviderStat `json:"provider_stats"`
	DailyActivity []DailyCount   `json:"daily_activity"`
}
