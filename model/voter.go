package model

import "time"

// VoterRecord is the eligibility record bound one-to-one to an Identity.
// It is created once by the voter and never deleted during an election.
type VoterRecord struct {
	ID               int       `json:"id"`
	IdentityID       int       `json:"identity_id"`
	FullName         string    `json:"full_name"`
	MiddleName       string    `json:"middle_name,omitempty"`
	LastName         string    `json:"last_name"`
	PermanentAddress string    `json:"permanent_address"`
	TemporaryAddress string    `json:"temporary_address,omitempty"`
	Age              int       `json:"age"`
	DOB              time.Time `json:"dob"`
	BloodGroup       string    `json:"blood_group,omitempty"`
	WalletAddress    string    `json:"wallet_address,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}
