package task

// ListOptions combines filtering, sorting and truncation for task queries.
type ListOptions struct {
	Filter  FilterOptions
	SortBy  string
	Reverse bool
	Limit   int // 0=no limit
}

// List filters, sorts and truncates tasks in that order, so a limit
// always keeps the first entries of the sorted result.
func List(tasks []*Task, opts ListOptions) []*Task {
	result := Filter(tasks, opts.Filter)
	if opts.SortBy != "" || opts.Reverse {
		Sort(result, opts.SortBy, opts.Reverse)
	}
	if opts.Limit > 0 && len(result) > opts.Limit {
		result = result[:opts.Limit]
	}
	return result
}
