package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/atorrance/taskwell/internal/domain"
)

// parseTaskRef parses "12.3" into its ID pair. A bare "12" means (12, 1),
// the default sub-identifier every new task starts with.
func parseTaskRef(ref string) (int, int, error) {
	id1Str, id2Str, found := strings.Cut(ref, ".")
	id1, err := strconv.Atoi(id1Str)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid task reference %q, expected ID1 or ID1.ID2", ref)
	}
	id2 := 1
	if found {
		id2, err = strconv.Atoi(id2Str)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid task reference %q, expected ID1 or ID1.ID2", ref)
		}
	}
	return id1, id2, nil
}

// resolveTask finds the referenced task in the forest and selects it.
func resolveTask(app *App, ref string) (*domain.TaskItem, error) {
	id1, id2, err := parseTaskRef(ref)
	if err != nil {
		return nil, err
	}
	task := app.Planner.Forest().FindByID(id1, id2)
	if task == nil {
		return nil, fmt.Errorf("task %d.%d not found", id1, id2)
	}
	app.Planner.Select(task)
	return task, nil
}

// parseEntryRef parses "12" (generic timecode) or "12.3" (project booking).
func parseEntryRef(ref string) (int, *int, error) {
	id1Str, id2Str, found := strings.Cut(ref, ".")
	id1, err := strconv.Atoi(id1Str)
	if err != nil {
		return 0, nil, fmt.Errorf("invalid booking reference %q, expected ID1 or ID1.ID2", ref)
	}
	if !found {
		return id1, nil, nil
	}
	id2, err := strconv.Atoi(id2Str)
	if err != nil {
		return 0, nil, fmt.Errorf("invalid booking reference %q, expected ID1 or ID1.ID2", ref)
	}
	return id1, &id2, nil
}
