package gate

import (
	"strings"
	"time"

	"github.com/sosillc/bidgate/internal/model"
)

// dueDateFormats are the date layouts accepted for response dates, tried in
// order.
var dueDateFormats = []string{
	"2006-01-02",
	"01/02/2006",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"Jan 2, 2006",
	"January 2, 2006",
	"01-02-2006",
}

// parseDueDate parses a response date in any accepted format.
func parseDueDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dueDateFormats {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// scoreTiming handles Category 1: a due date strictly before today is a hard
// block. A missing or unparseable date is an indeterminate signal, never a
// knock-out.
func (e *Engine) scoreTiming(opp *model.Opportunity) model.CategoryScore {
	score := model.CategoryScore{}
	if e.cfg.DisableDeadlineCheck {
		return score
	}

	due, ok := parseDueDate(opp.DueDate)
	if !ok {
		if opp.DueDate != "" {
			score.Evidence = []string{"unparseable due date: " + opp.DueDate}
		}
		return score
	}

	today := e.now().Truncate(24 * time.Hour)
	if due.Truncate(24 * time.Hour).Before(today) {
		score.Score = hardBlockScore
		score.Triggered = true
		score.Evidence = []string{"response due date has passed: " + opp.DueDate}
	}
	return score
}
