package repository

import (
	"database/sql"
	"fmt"
	"voting-api/logger"
	"voting-api/model"

	"github.com/sirupsen/logrus"
)

// IVoterRepository defines the contract for voter record database operations.
type IVoterRepository interface {
	Create(record *model.VoterRecord) error
	GetByIdentityID(identityID int) (*model.VoterRecord, error)
	ExistsByIdentityID(identityID int) (bool, error)
}

// VoterRepository implements IVoterRepository.
type VoterRepository struct {
	DB *sql.DB
}

func NewVoterRepository(db *sql.DB) *VoterRepository {
	return &VoterRepository{DB: db}
}

// Create inserts a voter record. The unique constraint on identity_id makes
// the check-then-insert atomic: under concurrent registration attempts for
// the same identity exactly one insert wins and the rest surface
// ErrUniqueViolation.
func (r *VoterRepository) Create(record *model.VoterRecord) error {
	log := logger.Log.WithFields(logrus.Fields{
		"identity_id": record.IdentityID,
		"full_name":   record.FullName,
	})
	log.Info("Executing query to create a new voter record")

	query := `INSERT INTO voter_records
		(identity_id, full_name, middle_name, last_name, permanent_address, temporary_address, age, dob, blood_group, wallet_address)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, NULLIF($6, ''), $7, $8, NULLIF($9, ''), NULLIF($10, ''))
		RETURNING id, created_at`
	err := r.DB.QueryRow(query,
		record.IdentityID, record.FullName, record.MiddleName, record.LastName,
		record.PermanentAddress, record.TemporaryAddress, record.Age, record.DOB,
		record.BloodGroup, record.WalletAddress,
	).Scan(&record.ID, &record.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("identity %d: %w", record.IdentityID, ErrUniqueViolation)
		}
		log.WithError(err).Error("Failed to execute create voter record query")
		return err
	}
	return nil
}

// GetByIdentityID retrieves the voter record bound to an identity.
func (r *VoterRepository) GetByIdentityID(identityID int) (*model.VoterRecord, error) {
	record := &model.VoterRecord{}
	var middleName, temporaryAddress, bloodGroup, walletAddress sql.NullString

	query := `SELECT id, identity_id, full_name, middle_name, last_name, permanent_address, temporary_address, age, dob, blood_group, wallet_address, created_at
		FROM voter_records WHERE identity_id = $1`
	err := r.DB.QueryRow(query, identityID).Scan(
		&record.ID, &record.IdentityID, &record.FullName, &middleName, &record.LastName,
		&record.PermanentAddress, &temporaryAddress, &record.Age, &record.DOB,
		&bloodGroup, &walletAddress, &record.CreatedAt,
	)
	if err != nil {
		if err != sql.ErrNoRows {
			logger.Log.WithError(err).Error("Failed to execute get voter record query")
		}
		return nil, err
	}

	record.MiddleName = middleName.String
	record.TemporaryAddress = temporaryAddress.String
	record.BloodGroup = bloodGroup.String
	record.WalletAddress = walletAddress.String
	return record, nil
}

// ExistsByIdentityID reports whether an identity has a voter record.
// Pure lookup, no side effect.
func (r *VoterRepository) ExistsByIdentityID(identityID int) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM voter_records WHERE identity_id = $1)`
	err := r.DB.QueryRow(query, identityID).Scan(&exists)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to execute voter record exists query")
		return false, err
	}
	return exists, nil
}
