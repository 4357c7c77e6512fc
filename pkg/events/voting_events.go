package events

import "time"

const (
	TypeChampionChanged = "champion.changed"
	TypeSessionChanged  = "session.changed"
)

// ChampionChangedEvent signals that a champion document under the given
// session was created, deleted or had its vote set mutated. Origin carries
// the instance id of the emitting process so consumers can skip their own
// mirrored events.
type ChampionChangedEvent struct {
	SessionID  string
	Origin     string
	OccurredAt time.Time
}

func (e ChampionChangedEvent) EventType() string { return TypeChampionChanged }

func (e ChampionChangedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"session_id": e.SessionID,
		"origin":     e.Origin,
	}
}

func (e ChampionChangedEvent) Timestamp() time.Time { return e.OccurredAt }

// SessionChangedEvent signals that the current voting session changed,
// typically after an operator reset.
type SessionChangedEvent struct {
	SessionID  string
	Origin     string
	OccurredAt time.Time
}

func (e SessionChangedEvent) EventType() string { return TypeSessionChanged }

func (e SessionChangedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"session_id": e.SessionID,
		"origin":     e.Origin,
	}
}

func (e SessionChangedEvent) Timestamp() time.Time { return e.OccurredAt }
