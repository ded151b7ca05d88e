package router

import (
	"net/http"
	"voting-api/handler"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "voting-api/docs" // swagger docs registration
)

func NewRouter(
	authHandler *handler.AuthHandler,
	voterHandler *handler.VoterHandler,
	candidateHandler *handler.CandidateHandler,
	voteHandler *handler.VoteHandler,
) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", handler.HealthCheck)
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// Public routes
	mux.Handle("POST /user/register/{$}", handler.ErrorHandlingMiddleware(authHandler.Register))
	mux.Handle("POST /user/login/{$}", handler.ErrorHandlingMiddleware(authHandler.Login))
	mux.Handle("POST /auth/token/refresh/{$}", handler.ErrorHandlingMiddleware(authHandler.Refresh))

	// Protected routes
	mux.Handle("POST /api/logout/{$}", handler.AuthMiddleware(
		handler.ErrorHandlingMiddleware(authHandler.Logout)))

	mux.Handle("POST /voters/voters/create/{$}", handler.AuthMiddleware(
		handler.ErrorHandlingMiddleware(voterHandler.CreateVoter)))
	mux.Handle("GET /voters/voters/user/{$}", handler.AuthMiddleware(
		handler.ErrorHandlingMiddleware(voterHandler.GetOwnVoter)))

	mux.Handle("GET /candidate/candidates/{$}", handler.AuthMiddleware(
		handler.ErrorHandlingMiddleware(candidateHandler.ListCandidates)))

	mux.Handle("POST /votes/api/votes/{$}", handler.AuthMiddleware(
		handler.ErrorHandlingMiddleware(voteHandler.CastVote)))
	mux.Handle("GET /votes/api/votes/results/{$}", handler.AuthMiddleware(
		handler.ErrorHandlingMiddleware(voteHandler.Results)))
	mux.Handle("GET /votes/api/votes/top-winners/{$}", handler.AuthMiddleware(
		handler.ErrorHandlingMiddleware(voteHandler.TopWinners)))

	// Admin routes
	mux.Handle("POST /candidate/candidates/{$}", handler.AuthMiddleware(handler.AdminMiddleware(
		handler.ErrorHandlingMiddleware(candidateHandler.AddCandidate))))
	mux.Handle("DELETE /candidate/candidates/{id}", handler.AuthMiddleware(handler.AdminMiddleware(
		handler.ErrorHandlingMiddleware(candidateHandler.RemoveCandidate))))

	return mux
}
