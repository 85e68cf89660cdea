package task

import "testing"

func TestList(t *testing.T) {
	tasks := filterFixture(t)

	t.Run("limit applies after sort", func(t *testing.T) {
		got := List(tasks, ListOptions{SortBy: "number", Reverse: true, Limit: 2})
		if len(got) != 2 {
			t.Fatalf("expected 2 tasks, got %d", len(got))
		}
		if got[0].Number != 3 || got[1].Number != 2 {
			t.Errorf("expected tasks 3 and 2, got %d and %d", got[0].Number, got[1].Number)
		}
	})

	t.Run("filter then sort", func(t *testing.T) {
		got := List(tasks, ListOptions{
			Filter: FilterOptions{Categories: []string{"開発"}},
			SortBy: "number",
		})
		if len(got) != 2 || got[0].Number != 1 || got[1].Number != 3 {
			t.Errorf("expected tasks 1 and 3, got %d tasks", len(got))
		}
	})

	t.Run("no options keeps fetch order", func(t *testing.T) {
		got := List(tasks, ListOptions{})
		if len(got) != 3 || got[0].Number != 1 || got[2].Number != 3 {
			t.Errorf("expected all tasks in fetch order, got %d", len(got))
		}
	})

	t.Run("does not mutate input", func(t *testing.T) {
		List(tasks, ListOptions{SortBy: "number", Reverse: true})
		if tasks[0].Number != 1 {
			t.Errorf("expected input order untouched, first task is %d", tasks[0].Number)
		}
	})
}
