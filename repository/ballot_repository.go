package repository

import (
	"database/sql"
	"fmt"
	"voting-api/logger"
	"voting-api/model"

	"github.com/sirupsen/logrus"
)

// IBallotRepository defines the contract for ballot database operations.
// Ballots are append-only; there are no update or delete operations.
type IBallotRepository interface {
	Insert(ballot *model.Ballot) error
	CountByElection(electionID string) (int, error)
	Results(electionID string) ([]*model.CandidateResult, error)
	TopWinners(electionID string, limit int) ([]*model.CandidateResult, error)
}

// BallotRepository implements IBallotRepository.
type BallotRepository struct {
	DB *sql.DB
}

func NewBallotRepository(db *sql.DB) *BallotRepository {
	return &BallotRepository{DB: db}
}

// Insert records exactly one ballot. The single INSERT together with the
// (identity_id, election_id) unique constraint is the atomic
// check-not-voted-then-insert unit: under concurrent casts from the same
// identity one insert commits and every other surfaces ErrUniqueViolation.
func (r *BallotRepository) Insert(ballot *model.Ballot) error {
	log := logger.Log.WithFields(logrus.Fields{
		"identity_id":  ballot.IdentityID,
		"candidate_id": ballot.CandidateID,
		"election_id":  ballot.ElectionID,
	})
	log.Info("Executing query to insert a ballot")

	query := `INSERT INTO ballots (identity_id, candidate_id, election_id, wallet_address)
		VALUES ($1, $2, $3, NULLIF($4, '')) RETURNING id, cast_at`
	err := r.DB.QueryRow(query, ballot.IdentityID, ballot.CandidateID, ballot.ElectionID, ballot.WalletAddress).
		Scan(&ballot.ID, &ballot.CastAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("identity %d election %s: %w", ballot.IdentityID, ballot.ElectionID, ErrUniqueViolation)
		}
		log.WithError(err).Error("Failed to execute insert ballot query")
		return err
	}
	return nil
}

// CountByElection returns the total number of committed ballots.
func (r *BallotRepository) CountByElection(electionID string) (int, error) {
	var count int
	err := r.DB.QueryRow(`SELECT COUNT(*) FROM ballots WHERE election_id = $1`, electionID).Scan(&count)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to execute ballot count query")
		return 0, err
	}
	return count, nil
}

// Results aggregates committed ballots into the ranked tally. A single
// statement gives read-committed semantics: no partially committed ballot is
// visible. Zero-vote candidates are included; ordering is vote count
// descending with candidate id ascending as the stable tie-breaker, so
// repeated reads of an unchanged ballot box are deterministic.
func (r *BallotRepository) Results(electionID string) ([]*model.CandidateResult, error) {
	query := `
		SELECT c.id, c.full_name, COUNT(b.id) AS total_votes
		FROM candidates c
		LEFT JOIN ballots b ON b.candidate_id = c.id AND b.election_id = $1
		GROUP BY c.id, c.full_name
		ORDER BY total_votes DESC, c.id ASC`

	rows, err := r.DB.Query(query, electionID)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to execute tally query")
		return nil, err
	}
	defer rows.Close()

	var results []*model.CandidateResult
	for rows.Next() {
		var res model.CandidateResult
		if err := rows.Scan(&res.CandidateID, &res.CandidateName, &res.TotalVotes); err != nil {
			logger.Log.WithError(err).Error("Failed to scan tally row")
			return nil, err
		}
		results = append(results, &res)
	}
	return results, rows.Err()
}

// TopWinners returns the leading candidates that received at least one vote.
func (r *BallotRepository) TopWinners(electionID string, limit int) ([]*model.CandidateResult, error) {
	query := `
		SELECT c.id, c.full_name, COUNT(b.id) AS total_votes
		FROM candidates c
		JOIN ballots b ON b.candidate_id = c.id AND b.election_id = $1
		GROUP BY c.id, c.full_name
		ORDER BY total_votes DESC, c.id ASC
		LIMIT $2`

	rows, err := r.DB.Query(query, electionID, limit)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to execute top winners query")
		return nil, err
	}
	defer rows.Close()

	var results []*model.CandidateResult
	for rows.Next() {
		var res model.CandidateResult
		if err := rows.Scan(&res.CandidateID, &res.CandidateName, &res.TotalVotes); err != nil {
			logger.Log.WithError(err).Error("Failed to scan top winners row")
			return nil, err
		}
		results = append(results, &res)
	}
	return results, rows.Err()
}
