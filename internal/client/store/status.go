package store

import "github.com/dmitrijs2005/doccatalog/internal/client/models"

// Kind enumerates the workflow states.
type Kind int

const (
	Idle Kind = iota
	Loading
	Succeeded
	Failed
)

func (k Kind) String() string {
	switch k {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// WorkflowStatus is the single active feedback state of the store.
// Message is set only for Succeeded and Failed.
type WorkflowStatus struct {
	Kind    Kind
	Message string
}

func idle() WorkflowStatus    { return WorkflowStatus{Kind: Idle} }
func loading() WorkflowStatus { return WorkflowStatus{Kind: Loading} }

func succeeded(msg string) WorkflowStatus {
	return WorkflowStatus{Kind: Succeeded, Message: msg}
}

func failed(msg string) WorkflowStatus {
	return WorkflowStatus{Kind: Failed, Message: msg}
}

// Snapshot is a consistent copy of the store state.
type Snapshot struct {
	Status    WorkflowStatus
	Documents []models.DocumentRecord
}

// Success messages shown after mutating commands.
const (
	MsgUploaded = "File uploaded successfully!"
	MsgDeleted  = "Document deleted successfully!"
	MsgMigrated = "Document marked as migrated!"
)
