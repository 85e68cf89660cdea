package task

import "strings"

// Find returns the first task with the given issue number. A non-empty
// repo narrows the match to that repository, since numbers are only
// unique per repository.
func Find(tasks []*Task, number int, repo string) (*Task, bool) {
	for _, t := range tasks {
		if t.Number != number {
			continue
		}
		if repo != "" && !strings.EqualFold(t.Repository, repo) {
			continue
		}
		return t, true
	}
	return nil, false
}
