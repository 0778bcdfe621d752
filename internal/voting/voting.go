// Package voting implements the quorum arithmetic for transaction
// proposals. It is the single authoritative implementation; clients may
// display their own projection of the tally but never decide outcomes.
package voting

import "trustvault/internal/models"

// Tally holds the vote counts for one proposal.
type Tally struct {
	Approve int
	Reject  int
}

// Count tallies a proposal's vote set.
func Count(votes map[string]models.VoteChoice) Tally {
	var t Tally
	for _, v := range votes {
		switch v {
		case models.VoteApprove:
			t.Approve++
		case models.VoteReject:
			t.Reject++
		}
	}
	return t
}

// Quorum returns the minimum number of approving votes required for a
// group of the given size: ceil(memberCount / 2).
func Quorum(memberCount int) int {
	return (memberCount + 1) / 2
}

// Outcome decides the status a pending proposal should hold given the
// current tally and group size.
//
// The proposal is approved once approvals reach quorum. It is rejected
// once rejections reach quorum, or once approval has become mathematically
// impossible (the remaining non-rejecting members could not reach quorum
// even if they all approved). Otherwise it stays pending.
func Outcome(t Tally, memberCount int) models.Status {
	q := Quorum(memberCount)
	if t.Approve >= q {
		return models.StatusApproved
	}
	if t.Reject >= q || memberCount-t.Reject < q {
		return models.StatusRejected
	}
	return models.StatusPending
}
