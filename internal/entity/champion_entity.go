package entity

import (
	"time"

	"github.com/google/uuid"
)

// Champion is a votable entry scoped to one session. Votes is the ground
// truth: a set of voter ids, never a counter. VoteCount is always derived
// from it.
type Champion struct {
	Id          uuid.UUID
	SessionId   string
	Name        string
	ImageURL    string
	Description string
	Votes       []string
	CreatedAt   time.Time
	CreatedBy   string
	Extra       map[string]interface{} // open-ended document fields, kept opaque
}

// VoteCount is the cardinality of the vote set.
func (c *Champion) VoteCount() int {
	return len(c.Votes)
}

// HasVote reports whether the voter currently holds a vote on this champion.
func (c *Champion) HasVote(voterID string) bool {
	for _, v := range c.Votes {
		if v == voterID {
			return true
		}
	}
	return false
}
