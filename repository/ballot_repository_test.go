// repository/ballot_repository_test.go
package repository

import (
	"testing"
	"time"
	"voting-api/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestBallotRepository_Insert(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewBallotRepository(db)

	t.Run("success", func(t *testing.T) {
		castAt := time.Now()
		dbMock.ExpectQuery(`INSERT INTO ballots`).
			WithArgs(1, 2, "2026-general", "").
			WillReturnRows(sqlmock.NewRows([]string{"id", "cast_at"}).AddRow(10, castAt))

		ballot := &model.Ballot{IdentityID: 1, CandidateID: 2, ElectionID: "2026-general"}
		err := repo.Insert(ballot)

		assert.NoError(t, err)
		assert.Equal(t, 10, ballot.ID)
		assert.Equal(t, castAt, ballot.CastAt)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("duplicate cast surfaces the unique violation", func(t *testing.T) {
		dbMock.ExpectQuery(`INSERT INTO ballots`).
			WithArgs(1, 2, "2026-general", "").
			WillReturnError(&pq.Error{Code: "23505", Constraint: "one_ballot_per_identity"})

		ballot := &model.Ballot{IdentityID: 1, CandidateID: 2, ElectionID: "2026-general"}
		err := repo.Insert(ballot)

		assert.ErrorIs(t, err, ErrUniqueViolation)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})
}

func TestBallotRepository_Results(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewBallotRepository(db)

	rows := sqlmock.NewRows([]string{"id", "full_name", "total_votes"}).
		AddRow(2, "B", 5).
		AddRow(1, "A", 5).
		AddRow(3, "C", 0)
	dbMock.ExpectQuery(`SELECT c.id, c.full_name, COUNT`).
		WithArgs("2026-general").
		WillReturnRows(rows)

	results, err := repo.Results("2026-general")

	assert.NoError(t, err)
	assert.Len(t, results, 3, "zero-vote candidates are included in the tally")
	assert.Equal(t, 2, results[0].CandidateID)
	assert.Equal(t, 5, results[0].TotalVotes)
	assert.Equal(t, 0, results[2].TotalVotes)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestVoterRepository_Create_UniqueViolation(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewVoterRepository(db)

	dbMock.ExpectQuery(`INSERT INTO voter_records`).
		WillReturnError(&pq.Error{Code: "23505"})

	record := &model.VoterRecord{
		IdentityID:       1,
		FullName:         "Asha",
		LastName:         "Verma",
		PermanentAddress: "12 MG Road, Pune",
		Age:              22,
		DOB:              time.Date(2004, 1, 15, 0, 0, 0, 0, time.UTC),
	}
	err = repo.Create(record)

	assert.ErrorIs(t, err, ErrUniqueViolation)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestCandidateRepository_Delete_WithRecordedBallots(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewCandidateRepository(db)

	dbMock.ExpectExec(`DELETE FROM candidates WHERE id`).
		WithArgs(7).
		WillReturnError(&pq.Error{Code: "23503", Constraint: "ballots_candidate_id_fkey"})

	err = repo.Delete(7)

	assert.ErrorIs(t, err, ErrForeignKeyViolation)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestTokenRepository_Rotate(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewTokenRepository(db)

	t.Run("success", func(t *testing.T) {
		dbMock.ExpectBegin()
		dbMock.ExpectExec(`DELETE FROM refresh_tokens WHERE token_hash`).
			WithArgs("old-hash").
			WillReturnResult(sqlmock.NewResult(0, 1))
		dbMock.ExpectQuery(`INSERT INTO refresh_tokens`).
			WithArgs(7, "new-hash", sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(2, time.Now()))
		dbMock.ExpectCommit()

		newToken := &model.RefreshToken{IdentityID: 7, TokenHash: "new-hash", ExpiresAt: time.Now().Add(time.Hour)}
		err := repo.Rotate("old-hash", newToken)

		assert.NoError(t, err)
		assert.Equal(t, 2, newToken.ID)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("already rotated out", func(t *testing.T) {
		dbMock.ExpectBegin()
		dbMock.ExpectExec(`DELETE FROM refresh_tokens WHERE token_hash`).
			WithArgs("stale-hash").
			WillReturnResult(sqlmock.NewResult(0, 0))
		dbMock.ExpectRollback()

		newToken := &model.RefreshToken{IdentityID: 7, TokenHash: "newer-hash", ExpiresAt: time.Now().Add(time.Hour)}
		err := repo.Rotate("stale-hash", newToken)

		assert.Error(t, err)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})
}
