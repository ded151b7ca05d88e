// service/ballot_service_test.go
package service

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"
	"voting-api/model"
	"voting-api/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockCandidateRepo struct{ mock.Mock }

func (m *mockCandidateRepo) Create(candidate *model.Candidate) error {
	args := m.Called(candidate)
	return args.Error(0)
}
func (m *mockCandidateRepo) Delete(candidateID int) error {
	args := m.Called(candidateID)
	return args.Error(0)
}
func (m *mockCandidateRepo) GetAll() ([]*model.Candidate, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Candidate), args.Error(1)
}
func (m *mockCandidateRepo) ExistsByID(candidateID int) (bool, error) {
	args := m.Called(candidateID)
	return args.Bool(0), args.Error(1)
}

type mockBallotRepo struct{ mock.Mock }

func (m *mockBallotRepo) Insert(ballot *model.Ballot) error {
	args := m.Called(ballot)
	return args.Error(0)
}
func (m *mockBallotRepo) CountByElection(electionID string) (int, error) {
	args := m.Called(electionID)
	return args.Int(0), args.Error(1)
}
func (m *mockBallotRepo) Results(electionID string) ([]*model.CandidateResult, error) {
	args := m.Called(electionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.CandidateResult), args.Error(1)
}
func (m *mockBallotRepo) TopWinners(electionID string, limit int) ([]*model.CandidateResult, error) {
	args := m.Called(electionID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.CandidateResult), args.Error(1)
}

func testWindow() model.ElectionWindow {
	return model.ElectionWindow{
		ElectionID: "test-election",
		Start:      time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC),
		End:        time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC),
	}
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newCastFixture(t *testing.T) (*mockBallotRepo, *mockVoterRepo, *mockCandidateRepo, *BallotService) {
	t.Helper()
	ballotRepo := new(mockBallotRepo)
	voterRepo := new(mockVoterRepo)
	candidateRepo := new(mockCandidateRepo)
	svc := NewBallotService(ballotRepo, voterRepo, candidateRepo, testWindow(), nil)
	svc.now = fixedClock(testWindow().Start.Add(time.Hour))
	return ballotRepo, voterRepo, candidateRepo, svc
}

func TestBallotService_Cast(t *testing.T) {
	req := model.CastVoteRequest{Candidate: 1}

	t.Run("success", func(t *testing.T) {
		ballotRepo, voterRepo, candidateRepo, svc := newCastFixture(t)
		voterRepo.On("ExistsByIdentityID", 1).Return(true, nil).Once()
		candidateRepo.On("ExistsByID", 1).Return(true, nil).Once()
		ballotRepo.On("Insert", mock.AnythingOfType("*model.Ballot")).Return(nil).Once()

		ballot, err := svc.Cast(1, false, req)

		assert.NoError(t, err)
		assert.Equal(t, "test-election", ballot.ElectionID)
		assert.Equal(t, 1, ballot.CandidateID)
		ballotRepo.AssertExpectations(t)
	})

	t.Run("admin is not eligible", func(t *testing.T) {
		ballotRepo, _, _, svc := newCastFixture(t)

		_, err := svc.Cast(1, true, req)

		assert.ErrorIs(t, err, ErrNotEligible)
		ballotRepo.AssertNotCalled(t, "Insert")
	})

	t.Run("unregistered identity", func(t *testing.T) {
		ballotRepo, voterRepo, _, svc := newCastFixture(t)
		voterRepo.On("ExistsByIdentityID", 2).Return(false, nil).Once()

		_, err := svc.Cast(2, false, req)

		assert.ErrorIs(t, err, ErrNotRegistered)
		ballotRepo.AssertNotCalled(t, "Insert")
	})

	t.Run("unknown candidate", func(t *testing.T) {
		ballotRepo, voterRepo, candidateRepo, svc := newCastFixture(t)
		voterRepo.On("ExistsByIdentityID", 1).Return(true, nil).Once()
		candidateRepo.On("ExistsByID", 99).Return(false, nil).Once()

		_, err := svc.Cast(1, false, model.CastVoteRequest{Candidate: 99})

		assert.ErrorIs(t, err, ErrUnknownCandidate)
		ballotRepo.AssertNotCalled(t, "Insert")
	})

	t.Run("duplicate cast maps to AlreadyVoted", func(t *testing.T) {
		ballotRepo, voterRepo, candidateRepo, svc := newCastFixture(t)
		voterRepo.On("ExistsByIdentityID", 1).Return(true, nil).Once()
		candidateRepo.On("ExistsByID", 1).Return(true, nil).Once()
		ballotRepo.On("Insert", mock.AnythingOfType("*model.Ballot")).
			Return(fmt.Errorf("identity 1 election test-election: %w", repository.ErrUniqueViolation)).Once()

		_, err := svc.Cast(1, false, req)

		assert.ErrorIs(t, err, ErrAlreadyVoted)
	})

	t.Run("invalid wallet address", func(t *testing.T) {
		_, voterRepo, candidateRepo, svc := newCastFixture(t)
		voterRepo.On("ExistsByIdentityID", 1).Return(true, nil).Once()
		candidateRepo.On("ExistsByID", 1).Return(true, nil).Once()

		_, err := svc.Cast(1, false, model.CastVoteRequest{Candidate: 1, WalletAddress: "nope"})

		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestBallotService_ElectionWindow(t *testing.T) {
	req := model.CastVoteRequest{Candidate: 1}
	window := testWindow()

	cases := []struct {
		name    string
		now     time.Time
		wantErr error
	}{
		{"before start", window.Start.Add(-time.Second), ErrWindowClosed},
		{"exactly at start", window.Start, nil},
		{"inside window", window.Start.Add(4 * time.Hour), nil},
		{"exactly at end", window.End, ErrWindowClosed},
		{"after end", window.End.Add(time.Minute), ErrWindowClosed},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ballotRepo, voterRepo, candidateRepo, svc := newCastFixture(t)
			svc.now = fixedClock(tc.now)
			voterRepo.On("ExistsByIdentityID", 1).Return(true, nil).Once()
			candidateRepo.On("ExistsByID", 1).Return(true, nil).Once()
			if tc.wantErr == nil {
				ballotRepo.On("Insert", mock.AnythingOfType("*model.Ballot")).Return(nil).Once()
			}

			_, err := svc.Cast(1, false, req)

			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.wantErr)
				ballotRepo.AssertNotCalled(t, "Insert")
			}
		})
	}
}

// uniqueBallotRepo mimics the database's (identity, election) unique
// constraint so the service's concurrency contract can be exercised without
// a live database.
type uniqueBallotRepo struct {
	mu   sync.Mutex
	seen map[string]bool
}

func newUniqueBallotRepo() *uniqueBallotRepo {
	return &uniqueBallotRepo{seen: make(map[string]bool)}
}

func (r *uniqueBallotRepo) Insert(ballot *model.Ballot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := fmt.Sprintf("%d/%s", ballot.IdentityID, ballot.ElectionID)
	if r.seen[key] {
		return fmt.Errorf("identity %d election %s: %w", ballot.IdentityID, ballot.ElectionID, repository.ErrUniqueViolation)
	}
	r.seen[key] = true
	ballot.ID = len(r.seen)
	ballot.CastAt = time.Now()
	return nil
}

func (r *uniqueBallotRepo) CountByElection(string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.seen), nil
}

func (r *uniqueBallotRepo) Results(string) ([]*model.CandidateResult, error) { return nil, nil }
func (r *uniqueBallotRepo) TopWinners(string, int) ([]*model.CandidateResult, error) {
	return nil, nil
}

// TestBallotService_ConcurrentCasts verifies that N simultaneous casts from
// the same identity commit exactly one ballot, with every other caller
// observing AlreadyVoted.
func TestBallotService_ConcurrentCasts(t *testing.T) {
	voterRepo := new(mockVoterRepo)
	candidateRepo := new(mockCandidateRepo)
	voterRepo.On("ExistsByIdentityID", 1).Return(true, nil)
	candidateRepo.On("ExistsByID", 1).Return(true, nil)

	ballotRepo := newUniqueBallotRepo()
	svc := NewBallotService(ballotRepo, voterRepo, candidateRepo, testWindow(), nil)
	svc.now = fixedClock(testWindow().Start.Add(time.Hour))

	const numCasters = 32
	var successCount, conflictCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numCasters; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Cast(1, false, model.CastVoteRequest{Candidate: 1})
			switch {
			case err == nil:
				successCount.Add(1)
			case errors.Is(err, ErrAlreadyVoted):
				conflictCount.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), successCount.Load(), "exactly one cast must succeed")
	assert.Equal(t, int32(numCasters-1), conflictCount.Load(), "all other casts must observe AlreadyVoted")

	total, err := svc.TotalBallots()
	assert.NoError(t, err)
	assert.Equal(t, 1, total, "exactly one ballot must exist for the identity")
}

func TestBallotService_Results(t *testing.T) {
	ballotRepo := new(mockBallotRepo)
	ranked := []*model.CandidateResult{
		{CandidateID: 1, CandidateName: "A", TotalVotes: 1},
		{CandidateID: 2, CandidateName: "B", TotalVotes: 0},
	}
	ballotRepo.On("Results", "test-election").Return(ranked, nil).Twice()

	svc := NewBallotService(ballotRepo, new(mockVoterRepo), new(mockCandidateRepo), testWindow(), nil)

	first, err := svc.Results()
	assert.NoError(t, err)
	second, err := svc.Results()
	assert.NoError(t, err)

	assert.Equal(t, first, second, "repeated tallies of an unchanged ballot box are identical")
	assert.Equal(t, 1, first[0].CandidateID)
	assert.Equal(t, 1, first[0].TotalVotes)
	assert.Equal(t, 0, first[1].TotalVotes)
}
