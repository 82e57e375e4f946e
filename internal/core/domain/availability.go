package domain

// Availability is the process-wide verdict about the remote backend.
// It moves from Unknown to exactly one of the other two states and
// never changes again for the process lifetime.
type Availability int

const (
	AvailabilityUnknown Availability = iota
	Available
	Unavailable
)

func (a Availability) String() string {
	switch a {
	case Available:
		return "available"
	case Unavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

func (a Availability) Resolved() bool {
	return a == Available || a == Unavailable
}
