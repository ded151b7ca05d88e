// file: model/request.go

package model

// RegisterIdentityRequest defines the payload for creating a new account.
// It includes validation tags to ensure data integrity at the entry point.
type RegisterIdentityRequest struct {
	Phone    string `json:"phone" validate:"required,len=10,numeric"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest defines the payload for authentication.
type LoginRequest struct {
	Phone    string `json:"phone" validate:"required,len=10,numeric"`
	Password string `json:"password" validate:"required,min=8"`
}

// RefreshRequest carries the opaque refresh token being rotated.
type RefreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

// RegisterVoterRequest defines the payload for voter-roll registration.
// Field names match the wire contract; dob is a YYYY-MM-DD date string and
// is cross-checked against age in the service layer.
type RegisterVoterRequest struct {
	FullName         string `json:"full_name" validate:"required,max=100"`
	MiddleName       string `json:"middle_name" validate:"omitempty,max=100"`
	LastName         string `json:"last_name" validate:"required,max=100"`
	PermanentAddress string `json:"permanent_address" validate:"required"`
	TemporaryAddress string `json:"temporary_address" validate:"omitempty"`
	Age              int    `json:"age" validate:"required,gte=18,lte=150"`
	DOB              string `json:"dob" validate:"required"`
	BloodGroup       string `json:"blood_group" validate:"omitempty,max=5"`
	WalletAddress    string `json:"wallet_address" validate:"omitempty"`
}

// CastVoteRequest defines the payload for casting a ballot.
type CastVoteRequest struct {
	Candidate     int    `json:"candidate" validate:"required,gt=0"`
	WalletAddress string `json:"wallet_address" validate:"omitempty"`
}

// AddCandidateRequest defines the admin payload for adding a candidate.
type AddCandidateRequest struct {
	FullName string `json:"full_name" validate:"required,max=100"`
	Party    string `json:"party" validate:"required,max=100"`
}
