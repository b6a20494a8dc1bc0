package stream

// State is the position of an engine in its signal session.
type State int

const (
	// Idle means no signal, or an empty one, is attached.
	Idle State = iota
	// Streaming means unread samples remain.
	Streaming
	// Consumed means every sample has been filtered.
	Consumed
)

// String returns the lower-case state name.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Streaming:
		return "streaming"
	case Consumed:
		return "consumed"
	default:
		return "unknown"
	}
}
