// Package models defines the core domain models for TrustVault.
//
// TrustVault pools money into shared groups ("ranches"). Money leaves or
// enters a group balance only through a voted transaction proposal, or
// through a direct member deposit from a personal balance.
//
// The important models are:
//   - User: registered account with a personal balance
//   - Group: shared pool with a member set and a liquid balance
//   - Proposal: a deposit/withdrawal request subject to member vote
//   - Invite: a pending invitation to join a group
//
// Relationships use ID strings rather than pointers to avoid circular
// references; all balances and amounts are decimal.Decimal, never floats.
package models
