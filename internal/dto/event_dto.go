package dto

// ChampionChangedMessage travels over the change bus whenever a champion
// document under a session is created, removed or has its vote set mutated.
// Origin is the emitting instance id; consumers drop their own mirrored
// events.
type ChampionChangedMessage struct {
	SessionId string `json:"session_id"`
	Origin    string `json:"origin,omitempty"`
}

// SessionChangedMessage announces a new current session.
type SessionChangedMessage struct {
	SessionId string `json:"session_id"`
	Origin    string `json:"origin,omitempty"`
}
