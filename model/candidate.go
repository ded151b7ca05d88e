package model

import "time"

type Candidate struct {
	ID        int       `json:"candidate_id"`
	FullName  string    `json:"full_name"`
	Party     string    `json:"party"`
	CreatedAt time.Time `json:"created_at"`
}

// CandidateResult is one row of the ranked tally. Vote counts are derived
// from ballots on demand, never stored on the candidate.
type CandidateResult struct {
	CandidateID   int    `json:"candidate_id"`
	CandidateName string `json:"candidate_name"`
	TotalVotes    int    `json:"total_votes"`
}
