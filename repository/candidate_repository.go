package repository

import (
	"database/sql"
	"voting-api/logger"
	"voting-api/model"

	"github.com/sirupsen/logrus"
)

// ICandidateRepository defines the contract for candidate database operations.
type ICandidateRepository interface {
	Create(candidate *model.Candidate) error
	Delete(candidateID int) error
	GetAll() ([]*model.Candidate, error)
	ExistsByID(candidateID int) (bool, error)
}

// CandidateRepository implements ICandidateRepository.
type CandidateRepository struct {
	DB *sql.DB
}

func NewCandidateRepository(db *sql.DB) *CandidateRepository {
	return &CandidateRepository{DB: db}
}

func (r *CandidateRepository) Create(candidate *model.Candidate) error {
	log := logger.Log.WithFields(logrus.Fields{
		"full_name": candidate.FullName,
		"party":     candidate.Party,
	})
	log.Info("Executing query to create a new candidate")

	query := `INSERT INTO candidates (full_name, party) VALUES ($1, $2) RETURNING id, created_at`
	err := r.DB.QueryRow(query, candidate.FullName, candidate.Party).Scan(&candidate.ID, &candidate.CreatedAt)
	if err != nil {
		log.WithError(err).Error("Failed to execute create candidate query")
		return err
	}
	return nil
}

// Delete removes a candidate. Returns sql.ErrNoRows if no candidate matched
// and ErrForeignKeyViolation if ballots already reference the candidate.
func (r *CandidateRepository) Delete(candidateID int) error {
	log := logger.Log.WithField("candidate_id", candidateID)
	log.Info("Executing query to delete a candidate")

	res, err := r.DB.Exec(`DELETE FROM candidates WHERE id = $1`, candidateID)
	if err != nil {
		if isForeignKeyViolation(err) {
			log.Warn("Candidate has recorded ballots, delete rejected")
			return ErrForeignKeyViolation
		}
		log.WithError(err).Error("Failed to execute delete candidate query")
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// GetAll retrieves all candidates ordered by id.
func (r *CandidateRepository) GetAll() ([]*model.Candidate, error) {
	query := `SELECT id, full_name, party, created_at FROM candidates ORDER BY id`
	rows, err := r.DB.Query(query)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to execute query for all candidates")
		return nil, err
	}
	defer rows.Close()

	var candidates []*model.Candidate
	for rows.Next() {
		var c model.Candidate
		if err := rows.Scan(&c.ID, &c.FullName, &c.Party, &c.CreatedAt); err != nil {
			logger.Log.WithError(err).Error("Failed to scan candidate row")
			return nil, err
		}
		candidates = append(candidates, &c)
	}
	return candidates, rows.Err()
}

func (r *CandidateRepository) ExistsByID(candidateID int) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM candidates WHERE id = $1)`
	err := r.DB.QueryRow(query, candidateID).Scan(&exists)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to execute candidate exists query")
		return false, err
	}
	return exists, nil
}
