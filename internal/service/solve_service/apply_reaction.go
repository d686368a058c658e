package solve_service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/tcp_snm/lcbot/internal/bot_errors"
	"github.com/tcp_snm/lcbot/internal/service/problem_service"
)

// ApplyReaction reconciles a single reaction event into the solve ledger.
// Events that do not concern a solved marker on a bot posted problem are
// Ignored without touching the store. Every mutation happens in one
// transaction, on failure nothing is persisted and ErrPersistenceFailed is
// returned.
func (s *SolveService) ApplyReaction(
	ctx context.Context,
	event ReactionEvent,
) (outcome Outcome, err error) {
	startedAt := time.Now()
	defer func() {
		reconcileDuration.Observe(time.Since(startedAt).Seconds())
		if err != nil {
			reconcileErrors.WithLabelValues(event.Kind.String()).Inc()
			return
		}
		reactionsTotal.WithLabelValues(event.Kind.String(), outcome.Kind.String()).Inc()
	}()

	// filter events that are not ours
	if reason, ignored := s.screen(event); ignored {
		return Outcome{Kind: OutcomeIgnored, IgnoreReason: reason}, nil
	}

	// resolve the problem reference
	ref, ok := s.resolve(event.Message)
	if !ok {
		return Outcome{Kind: OutcomeIgnored, IgnoreReason: IgnoredNoProblemRef}, nil
	}

	logger := s.logger.WithFields(logrus.Fields{
		"event_id":   uuid.NewString(),
		"kind":       event.Kind.String(),
		"user_id":    event.ReactorID,
		"problem_id": ref.ID,
	})

	username := event.ReactorUsername
	if username == "" {
		username = event.ReactorID
	}
	outcome = Outcome{
		UserID:   event.ReactorID,
		Username: username,
		Problem:  ref,
	}

	ctx, cancel := context.WithTimeout(ctx, s.StoreTimeout)
	defer cancel()

	switch event.Kind {
	case ReactionAdd:
		err = s.Ledger.WithinTx(ctx, func(tx LedgerTx) error {
			return s.markSolved(ctx, tx, &outcome, logger)
		})
	case ReactionRemove:
		err = s.Ledger.WithinTx(ctx, func(tx LedgerTx) error {
			return s.unmarkSolved(ctx, tx, &outcome, logger)
		})
	default:
		return Outcome{}, fmt.Errorf(
			"%w, unknown reaction kind %d",
			bot_errors.ErrInvalidInput,
			event.Kind,
		)
	}

	if errors.Is(err, errNoChange) {
		err = nil
		outcome.Stats = nil
	}
	if err != nil {
		if !errors.Is(err, bot_errors.ErrPersistenceFailed) {
			err = fmt.Errorf("%w, %w", bot_errors.ErrPersistenceFailed, err)
		}
		logger.Errorf("reconciliation rolled back, %v", err)
		return Outcome{}, err
	}

	if outcome.Kind == OutcomeSolved || outcome.Kind == OutcomeUnsolved {
		if s.Stats != nil {
			s.Stats.InvalidateUserStats(outcome.UserID)
		}
		logger.Infof("%s %s", outcome.Kind, outcome.Problem.ID)
	} else {
		logger.Debugf("%s, nothing changed", outcome.Kind)
	}
	return outcome, nil
}

func (s *SolveService) screen(event ReactionEvent) (IgnoreReason, bool) {
	if event.IsBot || event.ReactorID == s.BotUserID {
		return IgnoredBotReactor, true
	}
	if event.Emoji != s.SolvedEmoji {
		return IgnoredOtherEmoji, true
	}
	if event.Message.AuthorID != s.BotUserID {
		return IgnoredForeignMessage, true
	}
	if event.ReactorID == "" {
		return IgnoredNoReactor, true
	}
	return "", false
}

// resolve takes the first embed that carries a parseable problem reference
func (s *SolveService) resolve(message ReactedMessage) (problem_service.Problem, bool) {
	for _, embed := range message.Embeds {
		ref, err := problem_service.ParseProblemRef(embed.Title, embed.Description, embed.URL)
		if err != nil {
			s.logger.Debugf("skipping embed, %v", err)
			continue
		}
		return ref, true
	}
	return problem_service.Problem{}, false
}

func (s *SolveService) markSolved(
	ctx context.Context,
	tx LedgerTx,
	outcome *Outcome,
	logger *logrus.Entry,
) error {
	now := s.now()

	// the stored difficulty wins over the parsed one
	stored, err := tx.EnsureProblem(ctx, withPostedAt(outcome.Problem, now))
	if err != nil {
		return err
	}
	outcome.Problem = stored

	existing, found, err := tx.GetSolved(ctx, outcome.UserID, stored.ID)
	if err != nil {
		return err
	}
	if found {
		outcome.Kind = OutcomeAlreadySolved
		outcome.SolvedAt = existing.SolvedAt
		return errNoChange
	}

	if err = tx.UpsertUser(ctx, outcome.UserID, outcome.Username, now); err != nil {
		return err
	}

	inserted, err := tx.InsertSolved(ctx, SolveRecord{
		UserID:    outcome.UserID,
		ProblemID: stored.ID,
		SolvedAt:  now,
	})
	if err != nil && !bot_errors.IsUniqueViolation(err) {
		return err
	}
	if !inserted {
		// a concurrent add won the race
		outcome.Kind = OutcomeAlreadySolved
		return errNoChange
	}

	if stored.Difficulty.Bucket() == "" {
		logger.Warnf("problem %s has unknown difficulty, only the total is counted", stored.ID)
	}
	counters, err := tx.ApplyDelta(ctx, outcome.UserID, stored.Difficulty, 1, now)
	if err != nil {
		return err
	}

	outcome.Kind = OutcomeSolved
	outcome.SolvedAt = now
	outcome.Stats = &counters
	return nil
}

func (s *SolveService) unmarkSolved(
	ctx context.Context,
	tx LedgerTx,
	outcome *Outcome,
	logger *logrus.Entry,
) error {
	now := s.now()

	stored, err := tx.EnsureProblem(ctx, withPostedAt(outcome.Problem, now))
	if err != nil {
		return err
	}
	outcome.Problem = stored

	existing, found, err := tx.GetSolved(ctx, outcome.UserID, stored.ID)
	if err != nil {
		return err
	}
	if !found {
		outcome.Kind = OutcomeNotSolved
		return errNoChange
	}

	deleted, err := tx.DeleteSolved(ctx, outcome.UserID, stored.ID)
	if err != nil {
		return err
	}
	if !deleted {
		outcome.Kind = OutcomeNotSolved
		return errNoChange
	}

	if err = tx.UpsertUser(ctx, outcome.UserID, outcome.Username, now); err != nil {
		return err
	}
	if stored.Difficulty.Bucket() == "" {
		logger.Warnf("problem %s has unknown difficulty, only the total is decremented", stored.ID)
	}
	counters, err := tx.ApplyDelta(ctx, outcome.UserID, stored.Difficulty, -1, now)
	if err != nil {
		return err
	}

	outcome.Kind = OutcomeUnsolved
	outcome.SolvedAt = existing.SolvedAt
	outcome.Stats = &counters
	return nil
}

func withPostedAt(problem problem_service.Problem, at time.Time) problem_service.Problem {
	if problem.PostedAt.IsZero() {
		problem.PostedAt = at
	}
	return problem
}
