// file: service/candidate_service.go

package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"
	"voting-api/logger"
	"voting-api/model"
	"voting-api/repository"
)

var (
	ErrCandidateNotFound = errors.New("candidate not found")
	ErrCandidateHasVotes = errors.New("candidate has recorded ballots and cannot be removed")
)

const candidateCacheKey = "candidates"

// CandidateService manages the admin-owned candidate roster. The list is
// served through a cache-aside Redis entry invalidated on every mutation.
// Admin privilege is enforced at the gateway; the service assumes callers
// are already authorized.
type CandidateService struct {
	repo        repository.ICandidateRepository
	redisClient ICacheClient
}

func NewCandidateService(repo repository.ICandidateRepository, redisClient ICacheClient) *CandidateService {
	return &CandidateService{
		repo:        repo,
		redisClient: redisClient,
	}
}

// Add creates a new candidate and invalidates the roster cache.
func (s *CandidateService) Add(fullName, party string) (*model.Candidate, error) {
	candidate := &model.Candidate{
		FullName: fullName,
		Party:    party,
	}
	if err := s.repo.Create(candidate); err != nil {
		return nil, err
	}

	s.redisClient.Del(context.Background(), candidateCacheKey)
	return candidate, nil
}

// Remove deletes a candidate and invalidates the roster cache. Candidates
// that already received ballots cannot be removed; the ballot box is
// append-only and their tally rows must survive.
func (s *CandidateService) Remove(candidateID int) error {
	if err := s.repo.Delete(candidateID); err != nil {
		if err == sql.ErrNoRows {
			return ErrCandidateNotFound
		}
		if errors.Is(err, repository.ErrForeignKeyViolation) {
			return ErrCandidateHasVotes
		}
		return err
	}

	s.redisClient.Del(context.Background(), candidateCacheKey)
	return nil
}

// List returns all candidates, utilizing a cache-aside strategy. Cache
// failures degrade to the database; they never fail the request.
func (s *CandidateService) List() ([]*model.Candidate, error) {
	ctx := context.Background()

	cached, err := s.redisClient.Get(ctx, candidateCacheKey).Result()
	if err == nil {
		var candidates []*model.Candidate
		if err := json.Unmarshal([]byte(cached), &candidates); err == nil {
			return candidates, nil
		}
	}

	candidates, err := s.repo.GetAll()
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(candidates)
	if err == nil {
		if err := s.redisClient.Set(ctx, candidateCacheKey, data, 10*time.Minute).Err(); err != nil {
			logger.Log.WithError(err).Warn("Failed to cache candidate list")
		}
	}

	return candidates, nil
}
