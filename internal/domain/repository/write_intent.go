package repository

// WriteOp tags the kind of storage operation a write intent carries
type WriteOp int

const (
	OpInsert WriteOp = iota
	OpReplace
	OpDelete
)

func (op WriteOp) String() string {
	switch op {
	case OpInsert:
		return "insert"
	case OpReplace:
		return "replace"
	case OpDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Collection names shared by every storage implementation
const (
	CollectionAuctions = "auctions"
	CollectionMembers  = "members"
	CollectionOutbox   = "outbox_events"
)

// WriteIntent is a deferred write: repositories enqueue intents on the active
// unit of work instead of touching storage, and the unit of work applies them
// in enqueue order inside one transaction. Document is nil for deletes.
type WriteIntent struct {
	Collection string
	Op         WriteOp
	ID         string
	Document   interface{}
}
