package service

import (
	"errors"
	"fmt"
	"time"
	"voting-api/logger"
	"voting-api/model"
	"voting-api/repository"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"
)

var (
	ErrAlreadyVoted     = errors.New("a ballot has already been cast for this identity")
	ErrUnknownCandidate = errors.New("candidate does not exist")
	ErrWindowClosed     = errors.New("the election window is closed")
	ErrNotEligible      = errors.New("identity is not eligible to cast a ballot")
)

// BallotAnchorer hands committed ballots to the external ledger pipeline.
// Anchoring is best-effort: it must never block or fail a cast.
type BallotAnchorer interface {
	Enqueue(ballot *model.Ballot)
}

// BallotService is the ballot box state machine. Per identity and election
// the only transition is NotVoted -> Voted, with no way back. The duplicate
// check and the insert are one atomic unit, delegated to the repository's
// unique constraint, so concurrent casts from one identity yield exactly one
// ballot.
type BallotService struct {
	ballotRepo    repository.IBallotRepository
	voterRepo     repository.IVoterRepository
	candidateRepo repository.ICandidateRepository
	window        model.ElectionWindow
	anchorer      BallotAnchorer

	now func() time.Time
}

func NewBallotService(
	ballotRepo repository.IBallotRepository,
	voterRepo repository.IVoterRepository,
	candidateRepo repository.ICandidateRepository,
	window model.ElectionWindow,
	anchorer BallotAnchorer,
) *BallotService {
	return &BallotService{
		ballotRepo:    ballotRepo,
		voterRepo:     voterRepo,
		candidateRepo: candidateRepo,
		window:        window,
		anchorer:      anchorer,
		now:           time.Now,
	}
}

// Cast records one ballot for the identity. Checks run in a fixed order:
// eligibility, registration, candidate existence, election window,
// duplicate. Administrative identities are not eligible to vote. The ballot
// insert is never retried on conflict; a unique-constraint rejection means
// another cast already committed.
func (s *BallotService) Cast(identityID int, isAdmin bool, req model.CastVoteRequest) (*model.Ballot, error) {
	log := logger.Log.WithFields(logrus.Fields{
		"identity_id":  identityID,
		"candidate_id": req.Candidate,
		"election_id":  s.window.ElectionID,
	})
	log.Info("Cast vote requested")

	if isAdmin {
		return nil, ErrNotEligible
	}

	registered, err := s.voterRepo.ExistsByIdentityID(identityID)
	if err != nil {
		return nil, fmt.Errorf("could not check voter registration: %w", err)
	}
	if !registered {
		return nil, ErrNotRegistered
	}

	exists, err := s.candidateRepo.ExistsByID(req.Candidate)
	if err != nil {
		return nil, fmt.Errorf("could not check candidate: %w", err)
	}
	if !exists {
		return nil, ErrUnknownCandidate
	}

	if !s.window.Contains(s.now()) {
		return nil, ErrWindowClosed
	}

	if req.WalletAddress != "" && !ethcommon.IsHexAddress(req.WalletAddress) {
		return nil, fmt.Errorf("%w: wallet_address is not a valid hex address", ErrValidation)
	}

	ballot := &model.Ballot{
		IdentityID:    identityID,
		CandidateID:   req.Candidate,
		ElectionID:    s.window.ElectionID,
		WalletAddress: req.WalletAddress,
	}
	if err := s.ballotRepo.Insert(ballot); err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			return nil, ErrAlreadyVoted
		}
		return nil, fmt.Errorf("could not insert ballot: %w", err)
	}

	log.WithField("ballot_id", ballot.ID).Info("Ballot committed")

	// The ballot box is the source of truth; ledger anchoring is audit-only
	// and must not affect the committed vote.
	if s.anchorer != nil {
		s.anchorer.Enqueue(ballot)
	}

	return ballot, nil
}

// Results returns the ranked tally: vote count descending, candidate id
// ascending on ties. The aggregation runs as a single read-committed query,
// so only ballots committed before the read began are reflected.
func (s *BallotService) Results() ([]*model.CandidateResult, error) {
	return s.ballotRepo.Results(s.window.ElectionID)
}

// TopWinners returns the three leading candidates that received votes.
func (s *BallotService) TopWinners() ([]*model.CandidateResult, error) {
	return s.ballotRepo.TopWinners(s.window.ElectionID, 3)
}

// TotalBallots returns the number of committed ballots for the election.
func (s *BallotService) TotalBallots() (int, error) {
	return s.ballotRepo.CountByElection(s.window.ElectionID)
}
