package clinic

// Status is an appointment lifecycle state. Appointments move forward only:
// scheduled -> confirmed -> checked_in -> in_progress -> completed, with
// cancelled and no_show as early exits. The database enforces membership via
// a CHECK constraint; the simulation only ever issues forward transitions.
type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusConfirmed  Status = "confirmed"
	StatusCheckedIn  Status = "checked_in"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
	StatusNoShow     Status = "no_show"
)

// AllStatuses lists every legal status in lifecycle order.
var AllStatuses = []Status{
	StatusScheduled,
	StatusConfirmed,
	StatusCheckedIn,
	StatusInProgress,
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
}

// forwardTransitions maps each non-terminal status to the statuses it may move to.
var forwardTransitions = map[Status][]Status{
	StatusScheduled:  {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusCheckedIn, StatusNoShow, StatusCancelled},
	StatusCheckedIn:  {StatusInProgress},
	StatusInProgress: {StatusCompleted},
}

// CanTransition reports whether moving from one status to another is a legal
// forward transition.
func CanTransition(from, to Status) bool {
	for _, t := range forwardTransitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether a status has no outbound transitions.
func (s Status) IsTerminal() bool {
	return len(forwardTransitions[s]) == 0
}

// IsValid reports whether s belongs to the status enumeration.
func (s Status) IsValid() bool {
	for _, v := range AllStatuses {
		if v == s {
			return true
		}
	}
	return false
}

func (s Status) String() string {
	return string(s)
}
