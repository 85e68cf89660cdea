package task

import "sort"

// Sort sorts tasks by the given field. Open tasks sort before closed ones
// for the state field, and tasks without a deadline sort last for the
// deadline field.
func Sort(tasks []*Task, field string, reverse bool) {
	sort.SliceStable(tasks, func(i, j int) bool {
		less := compareTasks(tasks[i], tasks[j], field)
		if reverse {
			return !less
		}
		return less
	})
}

func compareTasks(a, b *Task, field string) bool {
	switch field {
	case "number":
		return a.Number < b.Number
	case "title":
		return a.Title < b.Title
	case "category":
		return a.CategoryLabel() < b.CategoryLabel()
	case "state":
		return stateRank(a.State) < stateRank(b.State)
	case "deadline":
		return compareDeadline(a, b)
	default:
		return a.Number < b.Number
	}
}

func stateRank(state State) int {
	if state == StateOpen {
		return 0
	}
	return 1
}

func compareDeadline(a, b *Task) bool {
	da, _ := EffectiveDeadline(a)
	db, _ := EffectiveDeadline(b)
	if da == nil && db == nil {
		return false
	}
	if da == nil {
		return false // nil sorts last
	}
	if db == nil {
		return true
	}
	return da.Before(db.Time)
}
