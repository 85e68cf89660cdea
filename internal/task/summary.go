package task

import "github.com/karaage0703/pm-bot/internal/date"

// StateCount holds a count for an issue state.
type StateCount struct {
	State State `json:"state"`
	Count int   `json:"count"`
}

// CategoryCount holds a count for a title category.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// Summary is the aggregate view over one fetched board.
type Summary struct {
	Total      int             `json:"total"`
	Overdue    int             `json:"overdue"`
	NoDeadline int             `json:"no_deadline"`
	States     []StateCount    `json:"states"`
	Categories []CategoryCount `json:"categories"`
}

// Summarize computes board metrics as of today. States appear in a
// fixed open-first order; categories appear in first-seen order.
func Summarize(tasks []*Task, today date.Date) Summary {
	stateMap := make(map[State]int, 2)
	catMap := make(map[string]int)
	var catOrder []string

	s := Summary{Total: len(tasks)}
	for _, t := range tasks {
		stateMap[t.State]++

		cat := t.CategoryLabel()
		if _, seen := catMap[cat]; !seen {
			catOrder = append(catOrder, cat)
		}
		catMap[cat]++

		status := CheckOverdue(t, today)
		if status.Overdue {
			s.Overdue++
		}
		if status.Reason == ReasonNoDeadline {
			s.NoDeadline++
		}
	}

	for _, st := range []State{StateOpen, StateClosed} {
		if stateMap[st] > 0 {
			s.States = append(s.States, StateCount{State: st, Count: stateMap[st]})
		}
	}
	for _, cat := range catOrder {
		s.Categories = append(s.Categories, CategoryCount{Category: cat, Count: catMap[cat]})
	}
	return s
}
