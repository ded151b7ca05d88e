package repository

import (
	"database/sql"
	"fmt"
	"voting-api/logger"
	"voting-api/model"
)

// IIdentityRepository defines the contract for identity database operations.
type IIdentityRepository interface {
	Create(identity *model.Identity) error
	GetByPhone(phone string) (*model.Identity, error)
	GetByID(id int) (*model.Identity, error)
}

// IdentityRepository implements IIdentityRepository.
type IdentityRepository struct {
	DB *sql.DB
}

func NewIdentityRepository(db *sql.DB) *IdentityRepository {
	return &IdentityRepository{DB: db}
}

// Create inserts a new identity. A duplicate phone number surfaces as
// ErrUniqueViolation.
func (r *IdentityRepository) Create(identity *model.Identity) error {
	log := logger.Log.WithField("phone", identity.Phone)
	log.Info("Executing query to create a new identity")

	query := `INSERT INTO identities (phone, password, is_admin) VALUES ($1, $2, $3) RETURNING id, created_at`
	err := r.DB.QueryRow(query, identity.Phone, identity.Password, identity.IsAdmin).Scan(&identity.ID, &identity.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("phone %s: %w", identity.Phone, ErrUniqueViolation)
		}
		log.WithError(err).Error("Failed to execute create identity query")
		return err
	}
	return nil
}

func (r *IdentityRepository) GetByPhone(phone string) (*model.Identity, error) {
	identity := &model.Identity{}
	query := `SELECT id, phone, password, is_admin, created_at FROM identities WHERE phone = $1`
	err := r.DB.QueryRow(query, phone).Scan(&identity.ID, &identity.Phone, &identity.Password, &identity.IsAdmin, &identity.CreatedAt)
	if err != nil {
		if err != sql.ErrNoRows {
			logger.Log.WithError(err).Error("Failed to execute get identity by phone query")
		}
		return nil, err
	}
	return identity, nil
}

func (r *IdentityRepository) GetByID(id int) (*model.Identity, error) {
	identity := &model.Identity{}
	query := `SELECT id, phone, password, is_admin, created_at FROM identities WHERE id = $1`
	err := r.DB.QueryRow(query, id).Scan(&identity.ID, &identity.Phone, &identity.Password, &identity.IsAdmin, &identity.CreatedAt)
	if err != nil {
		if err != sql.ErrNoRows {
			logger.Log.WithError(err).Error("Failed to execute get identity by id query")
		}
		return nil, err
	}
	return identity, nil
}
