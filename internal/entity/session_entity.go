package entity

import "time"

const (
	SessionStatusActive = "active"
)

// VotingSession is a time-bounded voting round. Exactly one session is
// "current" at any time: the one with the greatest CreatedAt. Old sessions
// are never deleted by the core, they simply stop being current.
type VotingSession struct {
	Id              string // time-derived, e.g. session_2026-08-31_14-05-09
	Title           string
	Description     string
	Status          string
	CreatedAt       time.Time
	EndDate         *time.Time
	MaxVotesPerUser *int // stored, not enforced
}
