package problem_service

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/tcp_snm/lcbot/internal/bot_errors"
)

// SelectUnsolved draws up to maxAttempts candidates and returns the first one
// that was never posted. The search is probabilistic: ErrExhausted means the
// catalog page is likely saturated, not that no unposted problem exists.
func (p *ProblemService) SelectUnsolved(
	ctx context.Context,
	maxAttempts int,
) (Candidate, error) {
	if maxAttempts <= 0 {
		maxAttempts = DefaultSelectAttempts
	}

	posted, err := p.ListPostedIDs(ctx)
	if err != nil {
		selectorResults.WithLabelValues("store_error").Inc()
		return Candidate{}, err
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		candidate, err := p.Catalog.RandomCandidate(ctx)
		if err != nil {
			selectorResults.WithLabelValues("catalog_error").Inc()
			if !errors.Is(err, bot_errors.ErrCatalogUnavailable) {
				err = bot_errors.WrapCatalogError(err)
			}
			log.Errorf("catalog draw %d failed, %v", attempt, err)
			return Candidate{}, err
		}

		if _, ok := posted[candidate.ID]; ok {
			log.Debugf(
				"attempt %d drew already posted problem %s",
				attempt,
				candidate.ID,
			)
			continue
		}

		selectorAttempts.Observe(float64(attempt))
		selectorResults.WithLabelValues("selected").Inc()
		log.WithField("attempt", attempt).Infof("selected problem %s", candidate.ID)
		return candidate, nil
	}

	selectorResults.WithLabelValues("exhausted").Inc()
	err = fmt.Errorf(
		"%w, all %d draws were already posted",
		bot_errors.ErrExhausted,
		maxAttempts,
	)
	log.Warn(err)
	return Candidate{}, err
}

// PublishUnsolved selects an unposted problem, posts it and records it.
// The problem is recorded after posting so a failed post does not burn it.
func (p *ProblemService) PublishUnsolved(
	ctx context.Context,
	weekly bool,
) (Problem, error) {
	candidate, err := p.SelectUnsolved(ctx, p.MaxAttempts)
	if err != nil {
		return Problem{}, err
	}

	if err = p.Poster.PostProblem(ctx, candidate, weekly); err != nil {
		log.Errorf("cannot post problem %s, %v", candidate.ID, err)
		return Problem{}, err
	}

	return p.UpsertProblem(ctx, candidate.Problem(time.Now().UTC()))
}
