package domain

// Action names an operation a caller may attempt against a resource.
type Action string

const (
	ActionView   Action = "view"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// AuthorizeTask applies the owner-only access rule: every supported action
// is allowed exactly when the caller owns the task. Roles do not exist here.
func AuthorizeTask(action Action, task *Task, callerID string) error {
	switch action {
	case ActionView, ActionUpdate, ActionDelete:
		if task.IsOwnedBy(callerID) {
			return nil
		}
		return ErrForbidden
	default:
		return ErrForbidden
	}
}
