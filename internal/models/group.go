package models

import "github.com/shopspring/decimal"

// GroupStatusActive is the only group status currently assigned; the field
// exists so a group can be frozen or archived without deleting history.
const GroupStatusActive = "active"

// Group represents a shared savings pool (a "ranch") with a member set and
// a liquid balance. The balance changes only through an executed proposal
// or a direct member deposit.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group.
	Name string

	// CreatedBy is the user ID of the group owner.
	CreatedBy string

	// Members is the list of member user IDs. Non-empty once created:
	// the owner is always the first member.
	Members []string

	// Balance is the group's liquid funds. Never negative.
	Balance decimal.Decimal

	// Status is GroupStatusActive.
	Status string

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// IsMember reports whether userID is currently in the member set.
func (g *Group) IsMember(userID string) bool {
	for _, m := range g.Members {
		if m == userID {
			return true
		}
	}
	return false
}

// IsOwner reports whether userID created the group.
func (g *Group) IsOwner(userID string) bool {
	return g.CreatedBy == userID
}
