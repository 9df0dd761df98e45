package undo

// Action identifies which coordinator transition committed.
type Action string

const (
	// ActionExecuted means a new command was applied.
	ActionExecuted Action = "executed"
	// ActionUndone means a command's inverse ran.
	ActionUndone Action = "undone"
	// ActionRedone means an undone command was reapplied.
	ActionRedone Action = "redone"
	// ActionCleared means the history was reset.
	ActionCleared Action = "cleared"
)

// Event is published on the coordinator's broker after every committed
// transition. Failed or rejected operations publish nothing.
type Event struct {
	Action Action
	Kind   Kind
	ID     string
	Label  string
}
