// file: app/test_app.go

package app

import (
	"database/sql"
	"net/http"
	"voting-api/config"
	"voting-api/handler"
	"voting-api/model"
	"voting-api/repository"
	"voting-api/router"
	"voting-api/service"

	"github.com/redis/go-redis/v9"
)

// TestApp bundles the wired router with its database handle for
// integration tests.
type TestApp struct {
	DB     *sql.DB
	Router http.Handler
}

// NewTestApp wires the full stack against the given connections. The
// election window comes from the loaded config; anchoring is disabled.
func NewTestApp(db *sql.DB, redisClient *redis.Client) *TestApp {
	start, end, err := config.AppConfig.ElectionWindow()
	if err != nil {
		panic(err)
	}
	window := model.ElectionWindow{
		ElectionID: config.AppConfig.Election.ID,
		Start:      start,
		End:        end,
	}

	identityRepo := repository.NewIdentityRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	voterRepo := repository.NewVoterRepository(db)
	candidateRepo := repository.NewCandidateRepository(db)
	ballotRepo := repository.NewBallotRepository(db)

	authService := service.NewAuthService(identityRepo, tokenRepo)
	voterService := service.NewVoterService(voterRepo)
	candidateService := service.NewCandidateService(candidateRepo, redisClient)
	ballotService := service.NewBallotService(ballotRepo, voterRepo, candidateRepo, window, nil)

	authHandler := handler.NewAuthHandler(authService)
	voterHandler := handler.NewVoterHandler(voterService)
	candidateHandler := handler.NewCandidateHandler(candidateService)
	voteHandler := handler.NewVoteHandler(ballotService)

	return &TestApp{
		DB:     db,
		Router: router.NewRouter(authHandler, voterHandler, candidateHandler, voteHandler),
	}
}
