package database

import (
	"fmt"
	"strings"

	"github.com/abefas/taskapi/models"
)

const taskColumns = "id, title, description, priority, status, created_at, updated_at"

// buildTaskQuery returns the listing query for filter. Conditions are
// ANDed and only added for the filters that are set.
func buildTaskQuery(filter models.TaskFilter) (string, []any) {
	var (
		where []string
		args  []any
	)
	if filter.Status != nil {
		args = append(args, *filter.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Priority != nil {
		args = append(args, *filter.Priority)
		where = append(where, fmt.Sprintf("priority = $%d", len(args)))
	}

	var b strings.Builder
	b.WriteString("SELECT " + taskColumns + " FROM tasks")
	if len(where) > 0 {
		b.WriteString(" WHERE " + strings.Join(where, " AND "))
	}
	b.WriteString(" ORDER BY created_at ASC, id ASC")

	return b.String(), args
}
