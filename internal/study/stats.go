package study

import (
	"time"

	"github.com/studybuddy/studydeck/internal/domain"
)

const dayFormat = "2006-01-02"

// recordReview folds one review into the global stats. The review counter
// and the activity histogram grow on every review; the streak transition
// happens at most once per calendar day:
//   - last study was exactly yesterday: streak++
//   - gap of more than one day, or no prior study: streak restarts at 1
//   - already studied today: streak untouched
func recordReview(stats *domain.Stats, now time.Time) {
	stats.TotalReviews++
	today := now.Format(dayFormat)

	if stats.LastStudy != today {
		last, err := time.Parse(dayFormat, stats.LastStudy)
		switch {
		case stats.LastStudy == "" || err != nil:
			stats.Streak = 1
		default:
			gap := daysBetween(last, now)
			if gap == 1 {
				stats.Streak++
			} else if gap > 1 {
				stats.Streak = 1
			}
		}
		stats.LastStudy = today
	}

	if stats.Activity == nil {
		stats.Activity = make(map[string]int)
	}
	stats.Activity[today]++
}

// daysBetween counts whole calendar days from last's date to now's date.
func daysBetween(last, now time.Time) int {
	lastDay := time.Date(last.Year(), last.Month(), last.Day(), 0, 0, 0, 0, time.UTC)
	nowDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return int(nowDay.Sub(lastDay) / (24 * time.Hour))
}
