package engine

import (
	"sort"

	"commission_go/internal/domain"
)

// PriorityGroup holds every line item sharing one priority, in input order.
type PriorityGroup struct {
	Priority int
	Lines    []domain.LineItem
}

// GroupByPriority partitions lines by priority. Groups come back sorted
// ascending; lines inside a group keep their input order.
func GroupByPriority(lines []domain.LineItem) []PriorityGroup {
	index := make(map[int]int)
	groups := make([]PriorityGroup, 0)

	for _, line := range lines {
		i, ok := index[line.Priority]
		if !ok {
			i = len(groups)
			index[line.Priority] = i
			groups = append(groups, PriorityGroup{Priority: line.Priority})
		}
		groups[i].Lines = append(groups[i].Lines, line)
	}

	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Priority < groups[j].Priority
	})

	return groups
}
