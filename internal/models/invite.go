package models

// InviteStatus is the lifecycle state of a group invite.
type InviteStatus string

const (
	InvitePending  InviteStatus = "pending"
	InviteAccepted InviteStatus = "accepted"
	InviteDeclined InviteStatus = "declined"
)

// Invite represents an invitation to join a group, addressed to an email
// so that not-yet-registered users can be invited too.
type Invite struct {
	// ID is the unique identifier for the invite (UUID format).
	ID string

	// GroupID is the group the invitee would join.
	GroupID string

	// InviterID is the user who sent the invite (always the group owner).
	InviterID string

	// InviteeEmail is the email address the invite is addressed to.
	InviteeEmail string

	// Status is pending until accepted or declined.
	Status InviteStatus

	// CreatedAt is the Unix timestamp when the invite was created.
	CreatedAt int64
}
