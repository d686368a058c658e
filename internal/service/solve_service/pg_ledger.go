package solve_service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	log "github.com/sirupsen/logrus"
	"github.com/tcp_snm/lcbot/internal/bot_errors"
	"github.com/tcp_snm/lcbot/internal/database"
	"github.com/tcp_snm/lcbot/internal/service/problem_service"
)

type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// PgLedger is the postgres backed Ledger, every WithinTx call runs in its
// own transaction
type PgLedger struct {
	Pool TxBeginner
	DB   *database.Queries
}

type pgLedgerTx struct {
	q *database.Queries
}

func (l *PgLedger) WithinTx(ctx context.Context, fn func(tx LedgerTx) error) error {
	tx, err := l.Pool.Begin(ctx)
	if err != nil {
		return bot_errors.HandleDBErrors(err, errMsgs, "cannot begin solve transaction")
	}
	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			log.Errorf("cannot rollback solve transaction, %v", rbErr)
		}
	}()

	if err = fn(&pgLedgerTx{q: l.DB.WithTx(tx)}); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return bot_errors.HandleDBErrors(err, errMsgs, "cannot commit solve transaction")
	}
	return nil
}

func (t *pgLedgerTx) EnsureProblem(
	ctx context.Context,
	problem problem_service.Problem,
) (problem_service.Problem, error) {
	_, err := t.q.InsertProblem(ctx, database.InsertProblemParams{
		ProblemID:  problem.ID,
		Title:      problem.Title,
		Difficulty: string(problem.Difficulty),
		URL:        problem.URL,
		PostedAt:   problem.PostedAt,
	})
	if err != nil {
		return problem_service.Problem{}, bot_errors.HandleDBErrors(
			err,
			errMsgs,
			fmt.Sprintf("cannot insert problem %s", problem.ID),
		)
	}

	dbProblem, err := t.q.GetProblemByID(ctx, problem.ID)
	if err != nil {
		return problem_service.Problem{}, bot_errors.HandleDBErrors(
			err,
			errMsgs,
			fmt.Sprintf("cannot fetch problem %s", problem.ID),
		)
	}
	return problem_service.FromDBProblem(dbProblem), nil
}

func (t *pgLedgerTx) UpsertUser(ctx context.Context, userID, username string, at time.Time) error {
	err := t.q.UpsertUser(ctx, database.UpsertUserParams{
		UserID:     userID,
		Username:   username,
		LastActive: at,
	})
	if err != nil {
		return bot_errors.HandleDBErrors(
			err,
			errMsgs,
			fmt.Sprintf("cannot upsert user %s", userID),
		)
	}
	return nil
}

func (t *pgLedgerTx) GetSolved(ctx context.Context, userID, problemID string) (SolveRecord, bool, error) {
	solved, err := t.q.GetSolved(ctx, database.GetSolvedParams{
		UserID:    userID,
		ProblemID: problemID,
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return SolveRecord{}, false, nil
	}
	if err != nil {
		return SolveRecord{}, false, bot_errors.HandleDBErrors(
			err,
			errMsgs,
			fmt.Sprintf("cannot fetch solve of %s by %s", problemID, userID),
		)
	}
	return SolveRecord{
		UserID:    solved.UserID,
		ProblemID: solved.ProblemID,
		SolvedAt:  solved.SolvedAt,
	}, true, nil
}

func (t *pgLedgerTx) InsertSolved(ctx context.Context, record SolveRecord) (bool, error) {
	rows, err := t.q.InsertSolved(ctx, database.InsertSolvedParams{
		UserID:    record.UserID,
		ProblemID: record.ProblemID,
		SolvedAt:  record.SolvedAt,
	})
	if err != nil {
		if bot_errors.IsUniqueViolation(err) {
			return false, nil
		}
		return false, bot_errors.HandleDBErrors(
			err,
			errMsgs,
			fmt.Sprintf("cannot insert solve of %s by %s", record.ProblemID, record.UserID),
		)
	}
	return rows > 0, nil
}

func (t *pgLedgerTx) DeleteSolved(ctx context.Context, userID, problemID string) (bool, error) {
	rows, err := t.q.DeleteSolved(ctx, database.DeleteSolvedParams{
		UserID:    userID,
		ProblemID: problemID,
	})
	if err != nil {
		return false, bot_errors.HandleDBErrors(
			err,
			errMsgs,
			fmt.Sprintf("cannot delete solve of %s by %s", problemID, userID),
		)
	}
	return rows > 0, nil
}

func (t *pgLedgerTx) ApplyDelta(
	ctx context.Context,
	userID string,
	difficulty problem_service.Difficulty,
	delta int32,
	at time.Time,
) (Counters, error) {
	user, err := t.q.ApplyUserSolveDelta(ctx, database.ApplyUserSolveDeltaParams{
		Delta:      delta,
		Bucket:     difficulty.Bucket(),
		LastActive: at,
		UserID:     userID,
	})
	if err != nil {
		return Counters{}, bot_errors.HandleDBErrors(
			err,
			errMsgs,
			fmt.Sprintf("cannot apply solve delta %d to %s", delta, userID),
		)
	}
	return Counters{
		Total:  user.TotalSolved,
		Easy:   user.EasySolved,
		Medium: user.MediumSolved,
		Hard:   user.HardSolved,
	}, nil
}
