package anchor

import (
	"context"
	"time"
	"voting-api/logger"
	"voting-api/model"

	"github.com/sirupsen/logrus"
	"gopkg.in/matryer/try.v1"
)

const (
	maxAttempts   = 3
	anchorTimeout = 10 * time.Second
)

// Worker drains committed ballots to the ledger in the background. Enqueue
// never blocks: when the buffer is full the anchor attempt is dropped with a
// warning, never the vote.
type Worker struct {
	ledger Ledger
	queue  chan *model.Ballot
	done   chan struct{}
}

func NewWorker(ledger Ledger, buffer int) *Worker {
	return &Worker{
		ledger: ledger,
		queue:  make(chan *model.Ballot, buffer),
		done:   make(chan struct{}),
	}
}

// Start launches the anchoring loop. It runs until Stop is called.
func (w *Worker) Start() {
	go func() {
		defer close(w.done)
		for ballot := range w.queue {
			w.anchor(ballot)
		}
	}()
}

// Enqueue hands a committed ballot to the anchoring loop without blocking.
func (w *Worker) Enqueue(ballot *model.Ballot) {
	select {
	case w.queue <- ballot:
	default:
		logger.Log.WithField("ballot_id", ballot.ID).Warn("Anchor queue full, dropping anchor attempt")
	}
}

// Stop drains the queue and waits for the loop to finish.
func (w *Worker) Stop() {
	close(w.queue)
	<-w.done
}

func (w *Worker) anchor(ballot *model.Ballot) {
	log := logger.Log.WithFields(logrus.Fields{
		"ballot_id":    ballot.ID,
		"candidate_id": ballot.CandidateID,
	})

	err := try.Do(func(attempt int) (bool, error) {
		ctx, cancel := context.WithTimeout(context.Background(), anchorTimeout)
		defer cancel()

		err := w.ledger.AnchorBallot(ctx, ballot)
		if err != nil && attempt < maxAttempts {
			time.Sleep(time.Duration(attempt) * time.Second)
		}
		return attempt < maxAttempts, err
	})
	if err != nil {
		log.WithError(err).Error("Failed to anchor ballot after retries")
		return
	}
	log.Info("Ballot anchored to ledger")
}
