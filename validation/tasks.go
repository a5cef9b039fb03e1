package validation

import "github.com/abefas/taskapi/models"

// CreateTaskSchema describes a POST /tasks body.
var CreateTaskSchema = Schema{
	{Name: "title", Required: true, Kind: KindString},
	{Name: "description", Required: true, Kind: KindString, AllowEmpty: true},
	{Name: "priority", Kind: KindInteger, OneOf: priorities()},
}

// UpdateTaskSchema describes a PUT /tasks/{id} body.
var UpdateTaskSchema = Schema{
	{Name: "title", Kind: KindString},
	{Name: "description", Kind: KindString, AllowEmpty: true},
	{Name: "priority", Kind: KindInteger, OneOf: priorities()},
	{Name: "status", Kind: KindString, OneOf: statuses()},
}

// ValidateCreate checks a create payload and converts it.
func ValidateCreate(payload map[string]any) (models.NewTask, error) {
	if err := CreateTaskSchema.Validate(payload); err != nil {
		return models.NewTask{}, err
	}

	in := models.NewTask{
		Title:       payload["title"].(string),
		Description: payload["description"].(string),
	}
	if p, ok := asInt(payload["priority"]); ok {
		in.Priority = p
	}
	if s, ok := payload["status"].(string); ok {
		in.Status = s
	}
	return in, nil
}

// ValidateUpdate checks an update payload and converts the fields present.
func ValidateUpdate(payload map[string]any) (models.TaskPatch, error) {
	if err := UpdateTaskSchema.Validate(payload); err != nil {
		return models.TaskPatch{}, err
	}

	var patch models.TaskPatch
	if s, ok := payload["title"].(string); ok {
		patch.Title = &s
	}
	if s, ok := payload["description"].(string); ok {
		patch.Description = &s
	}
	if p, ok := asInt(payload["priority"]); ok {
		patch.Priority = &p
	}
	if s, ok := payload["status"].(string); ok {
		patch.Status = &s
	}
	return patch, nil
}

func priorities() []any {
	out := make([]any, 0, len(models.Priorities))
	for _, p := range models.Priorities {
		out = append(out, p)
	}
	return out
}

func statuses() []any {
	out := make([]any, 0, len(models.Statuses))
	for _, s := range models.Statuses {
		out = append(out, s)
	}
	return out
}
