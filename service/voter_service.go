package service

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
	"voting-api/logger"
	"voting-api/model"
	"voting-api/repository"

	ethcommon "github.com/ethereum/go-ethereum/common"
)

var (
	ErrAlreadyRegistered = errors.New("identity is already registered as a voter")
	ErrNotRegistered     = errors.New("identity has no voter record")
	ErrValidation        = errors.New("validation failed")
)

// ageTolerance allows the declared age to lag the computed age by one year
// around a birthday boundary.
const ageTolerance = 1

// VoterService handles voter-roll registration and lookups.
type VoterService struct {
	voterRepo repository.IVoterRepository
}

func NewVoterService(voterRepo repository.IVoterRepository) *VoterService {
	return &VoterService{voterRepo: voterRepo}
}

// Register validates the eligibility attributes and creates the voter
// record. The repository's unique constraint makes the operation atomic per
// identity: concurrent registrations resolve to exactly one winner, the rest
// receive ErrAlreadyRegistered.
func (s *VoterService) Register(identityID int, req model.RegisterVoterRequest) (*model.VoterRecord, error) {
	dob, err := time.Parse("2006-01-02", req.DOB)
	if err != nil {
		return nil, fmt.Errorf("%w: dob must be a YYYY-MM-DD date", ErrValidation)
	}

	now := time.Now()
	if !dob.Before(now) {
		return nil, fmt.Errorf("%w: date of birth must be in the past", ErrValidation)
	}

	computedAge := yearsBetween(dob, now)
	if computedAge < 18 {
		return nil, fmt.Errorf("%w: voter must be at least 18 years old", ErrValidation)
	}
	if diff := computedAge - req.Age; diff < 0 || diff > ageTolerance {
		return nil, fmt.Errorf("%w: age %d is inconsistent with date of birth", ErrValidation, req.Age)
	}

	if req.WalletAddress != "" && !ethcommon.IsHexAddress(req.WalletAddress) {
		return nil, fmt.Errorf("%w: wallet_address is not a valid hex address", ErrValidation)
	}

	record := &model.VoterRecord{
		IdentityID:       identityID,
		FullName:         req.FullName,
		MiddleName:       req.MiddleName,
		LastName:         req.LastName,
		PermanentAddress: req.PermanentAddress,
		TemporaryAddress: req.TemporaryAddress,
		Age:              req.Age,
		DOB:              dob,
		BloodGroup:       req.BloodGroup,
		WalletAddress:    req.WalletAddress,
	}

	if err := s.voterRepo.Create(record); err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			return nil, ErrAlreadyRegistered
		}
		return nil, err
	}

	logger.Log.WithField("identity_id", identityID).Info("Voter registered")
	return record, nil
}

// IsRegistered reports whether an identity has a voter record.
func (s *VoterService) IsRegistered(identityID int) (bool, error) {
	return s.voterRepo.ExistsByIdentityID(identityID)
}

// GetByIdentity returns the voter record for an identity, or
// ErrNotRegistered if none exists.
func (s *VoterService) GetByIdentity(identityID int) (*model.VoterRecord, error) {
	record, err := s.voterRepo.GetByIdentityID(identityID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotRegistered
		}
		return nil, err
	}
	return record, nil
}

// yearsBetween computes completed years from dob to now.
func yearsBetween(dob, now time.Time) int {
	years := now.Year() - dob.Year()
	anniversary := dob.AddDate(years, 0, 0)
	if anniversary.After(now) {
		years--
	}
	return years
}
