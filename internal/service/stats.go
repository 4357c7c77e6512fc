package service

import "champ-voting-be/internal/entity"

// Pure projections over a view snapshot. They are recomputed on every
// snapshot and never cached: there is no independent counter to drift away
// from the vote sets.

// TotalVotes sums the derived vote counts of the snapshot.
func TotalVotes(snapshot []*entity.Champion) int {
	total := 0
	for _, champion := range snapshot {
		total += champion.VoteCount()
	}
	return total
}

// LeadingChampion returns the champion with the most votes, nil for an
// empty snapshot. Ties resolve to whichever entry the snapshot's
// deterministic order places first, i.e. alphabetically.
func LeadingChampion(snapshot []*entity.Champion) *entity.Champion {
	var leader *entity.Champion
	for _, champion := range snapshot {
		if leader == nil || champion.VoteCount() > leader.VoteCount() {
			leader = champion
		}
	}
	return leader
}

// UserVoteCount counts the champions whose vote set contains the voter.
// An absent voter id counts zero.
func UserVoteCount(snapshot []*entity.Champion, voterID string) int {
	if voterID == "" {
		return 0
	}
	count := 0
	for _, champion := range snapshot {
		if champion.HasVote(voterID) {
			count++
		}
	}
	return count
}
