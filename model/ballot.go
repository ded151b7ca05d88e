package model

import "time"

// Ballot is the immutable record of one cast vote. Ballots are append-only:
// they are never mutated or deleted, and at most one exists per
// (identity, election) pair. WalletAddress is a display/audit attribute
// supplied by an external signer; it is never an authorization credential.
type Ballot struct {
	ID            int       `json:"id"`
	IdentityID    int       `json:"identity_id"`
	CandidateID   int       `json:"candidate"`
	ElectionID    string    `json:"election_id"`
	WalletAddress string    `json:"wallet_address,omitempty"`
	CastAt        time.Time `json:"cast_at"`
}
