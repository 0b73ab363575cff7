package analytics

import (
	"math"
	"sort"
	"sync"
	"time"

	"github.com/gcbaptista/go-ats-score/model"
)

const (
	maxEventsToKeep   = 10000 // Keep last 10k events in memory
	topMissingToShow  = 10
	dashboardWindow   = 24 * time.Hour
	comparisonPeriods = 2 // current window plus the one before it
)

// Service implements scoring analytics tracking and reporting.
// Events live in memory only and are dropped on restart.
type Service struct {
	mutex  sync.RWMutex
	events []model.ScoreEvent
	now    func() time.Time
}

// NewService creates a new analytics service
func NewService() *Service {
	return &Service{
		events: make([]model.ScoreEvent, 0),
		now:    time.Now,
	}
}

// TrackScoreEvent records a new scoring event
func (s *Service) TrackScoreEvent(event model.ScoreEvent) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	s.events = append(s.events, event)

	// Keep only the latest events to prevent unbounded growth
	if len(s.events) > maxEventsToKeep {
		s.events = s.events[len(s.events)-maxEventsToKeep:]
	}

	return nil
}

// EventCount returns the number of retained events
func (s *Service) EventCount() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.events)
}

// GetDashboardData returns complete analytics dashboard data for the last 24 hours
func (s *Service) GetDashboardData() (model.AnalyticsDashboard, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	now := s.now()
	windowStart := now.Add(-dashboardWindow)
	previousStart := now.Add(-comparisonPeriods * dashboardWindow)

	current := s.filterEventsByTimeRange(s.events, windowStart, now.Add(time.Nanosecond))
	previous := s.filterEventsByTimeRange(s.events, previousStart, windowStart)

	scored := filterByOutcome(current, model.OutcomeScored)
	previousScored := filterByOutcome(previous, model.OutcomeScored)

	dashboard := model.AnalyticsDashboard{
		TotalScored:       len(scored),
		ScoredChange:      s.calculateChangePercent(len(scored), len(previousScored)),
		AverageScore:      s.calculateAverageScore(scored),
		AvgResponseTime:   s.calculateAvgResponseTime(scored),
		Outcomes:          s.getOutcomeStats(current),
		ScoreDistribution: s.getScoreDistribution(scored),
		TopMissing:        s.getTopMissingKeywords(scored),
		GeneratedAt:       now,
	}

	return dashboard, nil
}

// filterEventsByTimeRange returns events within [start, end)
func (s *Service) filterEventsByTimeRange(events []model.ScoreEvent, start, end time.Time) []model.ScoreEvent {
	var filtered []model.ScoreEvent
	for _, event := range events {
		if !event.Timestamp.Before(start) && event.Timestamp.Before(end) {
			filtered = append(filtered, event)
		}
	}
	return filtered
}

func filterByOutcome(events []model.ScoreEvent, outcome string) []model.ScoreEvent {
	var filtered []model.ScoreEvent
	for _, event := range events {
		if event.Outcome == outcome {
			filtered = append(filtered, event)
		}
	}
	return filtered
}

// calculateChangePercent calculates percentage change between current and previous values
func (s *Service) calculateChangePercent(current, previous int) float64 {
	if previous == 0 {
		if current > 0 {
			return 100.0
		}
		return 0.0
	}
	return float64(current-previous) / float64(previous) * 100.0
}

// calculateAverageScore returns the mean score rounded to two decimals
func (s *Service) calculateAverageScore(events []model.ScoreEvent) float64 {
	if len(events) == 0 {
		return 0
	}
	var total float64
	for _, event := range events {
		total += event.Score
	}
	avg := total / float64(len(events))
	return math.Round(avg*100) / 100
}

// calculateAvgResponseTime calculates average response time for events in milliseconds
func (s *Service) calculateAvgResponseTime(events []model.ScoreEvent) int64 {
	if len(events) == 0 {
		return 0
	}

	var total time.Duration
	for _, event := range events {
		total += event.ResponseTime
	}
	avgDuration := total / time.Duration(len(events))
	return avgDuration.Milliseconds()
}

// getOutcomeStats counts events per outcome
func (s *Service) getOutcomeStats(events []model.ScoreEvent) model.OutcomeStats {
	stats := model.OutcomeStats{}

	for _, event := range events {
		switch event.Outcome {
		case model.OutcomeScored:
			stats.Scored++
		case model.OutcomeExtractionFailed:
			stats.ExtractionFailed++
		case model.OutcomeError:
			stats.Errors++
		}
	}

	return stats
}

// getScoreDistribution buckets scores into quarters
func (s *Service) getScoreDistribution(events []model.ScoreEvent) model.ScoreDistribution {
	dist := model.ScoreDistribution{}

	for _, event := range events {
		switch {
		case event.Score < 25:
			dist.Bucket0To25++
		case event.Score < 50:
			dist.Bucket25To50++
		case event.Score < 75:
			dist.Bucket50To75++
		default:
			dist.Bucket75To100++
		}
	}

	return dist
}

// getTopMissingKeywords returns the keywords most often missing from resumes
func (s *Service) getTopMissingKeywords(events []model.ScoreEvent) []model.MissingKeywordStat {
	counts := make(map[string]int)
	for _, event := range events {
		for _, keyword := range event.MissingKeywords {
			counts[keyword]++
		}
	}

	stats := make([]model.MissingKeywordStat, 0, len(counts))
	for keyword, count := range counts {
		stats = append(stats, model.MissingKeywordStat{Keyword: keyword, Count: count})
	}

	// Sort by count descending, then alphabetically for stable output
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}
		return stats[i].Keyword < stats[j].Keyword
	})

	if len(stats) > topMissingToShow {
		stats = stats[:topMissingToShow]
	}
	return stats
}
