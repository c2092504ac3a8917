package domain

// Phase is the top-level state of a viewing session.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseViewing
	PhaseGated
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseViewing:
		return "viewing"
	case PhaseGated:
		return "gated"
	}
	return "unknown"
}

// GateReason explains why a session entered PhaseGated.
type GateReason string

const (
	GateNone        GateReason = ""
	GateVIPOnly     GateReason = "vip_only"
	GateTimeExpired GateReason = "time_expired"
)

// ViewingState is the mutable state owned by the viewing session.
// Current stays unchanged when a VIP selection is rejected; Attempted
// records the stream the viewer tried to open so an upgrade can land on it.
type ViewingState struct {
	Phase        Phase
	Current      *Stream
	Attempted    *Stream
	Reason       GateReason
	WatchSeconds int
	NavIndex     int
}
