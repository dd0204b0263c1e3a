package todoview

import (
	"sort"
	"strings"
	"time"

	"github.com/hyuga-t/todo-front/internal/models"
)

// State is the per-view UI state threaded through the todo
// list handlers. It is never persisted.
type State struct {
	Query          string
	EditingTodoID  string
	DeleteTargetID string
	DialogOpen     bool
}

// Filter keeps the todos whose title or description contains
// query case-insensitively. An empty query keeps everything,
// relative order is preserved.
func Filter(todos []models.Todo, query string) []models.Todo {
	if query == "" {
		return todos
	}

	query = strings.ToLower(query)
	filtered := make([]models.Todo, 0, len(todos))
	for _, todo := range todos {
		if strings.Contains(strings.ToLower(todo.Title), query) {
			filtered = append(filtered, todo)
			continue
		}
		if todo.Description != nil && strings.Contains(strings.ToLower(*todo.Description), query) {
			filtered = append(filtered, todo)
		}
	}
	return filtered
}

// Sort orders todos so that urgent items surface first:
//
//  1. overdue todos (limit_date before now) come before
//     everything else, earliest deadline first,
//  2. among non-overdue todos a dated one always beats an
//     undated one, and two dated ones order by deadline,
//  3. two undated todos order by created_at, newest first.
//
// The one-sided-date rule is deliberate: having any deadline
// outranks recency. The input slice is not modified.
func Sort(todos []models.Todo, now time.Time) []models.Todo {
	sorted := make([]models.Todo, len(todos))
	copy(sorted, todos)

	sort.SliceStable(sorted, func(i, j int) bool {
		return less(&sorted[i], &sorted[j], now)
	})
	return sorted
}

func less(a, b *models.Todo, now time.Time) bool {
	aPast := a.LimitDate != nil && a.LimitDate.Before(now)
	bPast := b.LimitDate != nil && b.LimitDate.Before(now)

	if aPast && bPast {
		return a.LimitDate.Before(*b.LimitDate)
	}
	if aPast {
		return true
	}
	if bPast {
		return false
	}

	if a.LimitDate != nil && b.LimitDate != nil {
		return a.LimitDate.Before(*b.LimitDate)
	}
	if a.LimitDate != nil {
		return true
	}
	if b.LimitDate != nil {
		return false
	}

	return a.CreatedAt.After(b.CreatedAt)
}

// Apply runs Filter then Sort for one view state.
func Apply(todos []models.Todo, state State, now time.Time) []models.Todo {
	return Sort(Filter(todos, state.Query), now)
}
