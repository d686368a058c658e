package problem_service

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/tcp_snm/lcbot/internal/bot_errors"
	"github.com/tcp_snm/lcbot/internal/database"
	"github.com/tcp_snm/lcbot/internal/service"
)

// UpsertProblem records a posted problem. The first write wins, later posts of
// the same id leave the stored row untouched.
func (p *ProblemService) UpsertProblem(
	ctx context.Context,
	problem Problem,
) (Problem, error) {
	if err := service.ValidateInput(problem); err != nil {
		return Problem{}, err
	}
	if problem.PostedAt.IsZero() {
		problem.PostedAt = time.Now().UTC()
	}

	inserted, err := p.DB.InsertProblem(ctx, database.InsertProblemParams{
		ProblemID:  problem.ID,
		Title:      problem.Title,
		Difficulty: string(problem.Difficulty),
		URL:        problem.URL,
		PostedAt:   problem.PostedAt,
	})
	if err != nil {
		return Problem{}, bot_errors.HandleDBErrors(
			err,
			errMsgs,
			fmt.Sprintf("cannot insert problem %s into db", problem.ID),
		)
	}
	if inserted == 0 {
		log.Debugf("problem %s was already recorded", problem.ID)
		return p.GetProblemByID(ctx, problem.ID)
	}

	return problem, nil
}

func (p *ProblemService) GetProblemByID(
	ctx context.Context,
	id string,
) (Problem, error) {
	dbProblem, err := p.DB.GetProblemByID(ctx, id)
	if err != nil {
		return Problem{}, bot_errors.HandleDBErrors(
			err,
			errMsgs,
			fmt.Sprintf("cannot fetch problem with id %s", id),
		)
	}

	return FromDBProblem(dbProblem), nil
}

func (p *ProblemService) ListPostedIDs(ctx context.Context) (map[string]struct{}, error) {
	ids, err := p.DB.ListProblemIDs(ctx)
	if err != nil {
		return nil, bot_errors.HandleDBErrors(
			err,
			errMsgs,
			"cannot list posted problem ids",
		)
	}

	posted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		posted[id] = struct{}{}
	}
	return posted, nil
}
