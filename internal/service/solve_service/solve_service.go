package solve_service

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tcp_snm/lcbot/internal/bot_errors"
)

// Start checks the dependencies and fills defaults, it must be called
// before the service handles any event
func (s *SolveService) Start() error {
	if s.Ledger == nil {
		return fmt.Errorf("%w, solve service has no ledger", bot_errors.ErrComponentStart)
	}
	if s.BotUserID == "" {
		return fmt.Errorf("%w, solve service needs the bot user id", bot_errors.ErrComponentStart)
	}
	if s.SolvedEmoji == "" {
		s.SolvedEmoji = DefaultSolvedEmoji
	}
	if s.StoreTimeout <= 0 {
		s.StoreTimeout = DefaultStoreTimeout
	}
	if s.now == nil {
		s.now = time.Now
	}
	s.logger = logrus.WithFields(logrus.Fields{
		"from": "reaction-reconciler",
	})
	s.logger.Infof("started, tracking %s reactions on messages by %s", s.SolvedEmoji, s.BotUserID)
	return nil
}
