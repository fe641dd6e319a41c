package agent

import "time"

type EventType int

const (
	EventDecompose EventType = iota
	EventWork
	EventCheck
	EventRefine
)

func (t EventType) String() string {
	switch t {
	case EventDecompose:
		return "decompose"
	case EventWork:
		return "work"
	case EventCheck:
		return "check"
	case EventRefine:
		return "refine"
	default:
		return "unknown"
	}
}

// Event is emitted around every role call. A Pending event announces the
// call before it is made; the matching completed event carries the reply.
type Event struct {
	Type      EventType
	Role      Role
	Iteration int
	Pending   bool
	Prompt    string
	Text      string
	At        time.Time
}
