package models

import "github.com/shopspring/decimal"

// User represents a registered account.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string

	// Username is the display name of the user.
	Username string

	// Email is the user's email address (unique). Used for login and
	// for addressing group invites.
	Email string

	// PasswordHash is the bcrypt hash of the user's password.
	// Never serialized to API responses.
	PasswordHash string

	// Balance is the user's personal balance. Direct group deposits are
	// funded from here.
	Balance decimal.Decimal

	// Role is "member" for regular accounts.
	Role string

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64
}
