// file: repository/token_repository.go

package repository

import (
	"database/sql"
	"fmt"
	"voting-api/logger"
	"voting-api/model"

	"github.com/sirupsen/logrus"
)

// ITokenRepository defines the contract for refresh token database operations.
type ITokenRepository interface {
	Create(token *model.RefreshToken) error
	GetByTokenHash(tokenHash string) (*model.RefreshToken, error)
	Rotate(oldTokenHash string, newToken *model.RefreshToken) error
	DeleteByIdentityID(identityID int) error
}

// TokenRepository implements ITokenRepository.
type TokenRepository struct {
	DB *sql.DB
}

// NewTokenRepository creates a new TokenRepository.
func NewTokenRepository(db *sql.DB) *TokenRepository {
	return &TokenRepository{DB: db}
}

// Create inserts a new refresh token record into the database.
func (r *TokenRepository) Create(token *model.RefreshToken) error {
	log := logger.Log.WithFields(logrus.Fields{
		"identity_id": token.IdentityID,
		"expires_at":  token.ExpiresAt,
	})
	log.Info("Executing query to create a new refresh token")

	query := `INSERT INTO refresh_tokens (identity_id, token_hash, expires_at) VALUES ($1, $2, $3) RETURNING id, created_at`
	err := r.DB.QueryRow(query, token.IdentityID, token.TokenHash, token.ExpiresAt).Scan(&token.ID, &token.CreatedAt)
	if err != nil {
		log.WithError(err).Error("Failed to execute create refresh token query")
		return err
	}
	return nil
}

// GetByTokenHash retrieves a refresh token by its hashed value.
func (r *TokenRepository) GetByTokenHash(tokenHash string) (*model.RefreshToken, error) {
	token := &model.RefreshToken{}
	query := `SELECT id, identity_id, token_hash, expires_at, created_at FROM refresh_tokens WHERE token_hash = $1`
	err := r.DB.QueryRow(query, tokenHash).Scan(&token.ID, &token.IdentityID, &token.TokenHash, &token.ExpiresAt, &token.CreatedAt)
	if err != nil {
		if err != sql.ErrNoRows {
			logger.Log.WithError(err).Error("Failed to execute get refresh token by hash query")
		}
		return nil, err // Return sql.ErrNoRows if not found
	}
	return token, nil
}

// Rotate atomically replaces an old refresh token with its successor. If the
// old token was already rotated out by a concurrent refresh, the delete
// affects zero rows and sql.ErrNoRows is returned; exactly one of two racing
// refreshes wins.
func (r *TokenRepository) Rotate(oldTokenHash string, newToken *model.RefreshToken) error {
	log := logger.Log.WithField("identity_id", newToken.IdentityID)
	log.Info("Executing transaction to rotate refresh token")

	tx, err := r.DB.Begin()
	if err != nil {
		return fmt.Errorf("could not begin rotation transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`DELETE FROM refresh_tokens WHERE token_hash = $1`, oldTokenHash)
	if err != nil {
		log.WithError(err).Error("Failed to delete rotated-out refresh token")
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	query := `INSERT INTO refresh_tokens (identity_id, token_hash, expires_at) VALUES ($1, $2, $3) RETURNING id, created_at`
	err = tx.QueryRow(query, newToken.IdentityID, newToken.TokenHash, newToken.ExpiresAt).Scan(&newToken.ID, &newToken.CreatedAt)
	if err != nil {
		log.WithError(err).Error("Failed to insert replacement refresh token")
		return err
	}

	return tx.Commit()
}

// DeleteByIdentityID deletes all refresh tokens for a specific identity.
// This is used for logging out from all sessions.
func (r *TokenRepository) DeleteByIdentityID(identityID int) error {
	log := logger.Log.WithField("identity_id", identityID)
	log.Info("Executing query to delete all refresh tokens for an identity")

	query := `DELETE FROM refresh_tokens WHERE identity_id = $1`
	_, err := r.DB.Exec(query, identityID)
	if err != nil {
		log.WithError(err).Error("Failed to execute delete refresh tokens query")
		return err
	}
	return nil
}
