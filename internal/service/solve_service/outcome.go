package solve_service

import "fmt"

// ConfirmationMessage is the short text the relay may echo back to the
// channel. Empty for outcomes that deserve no reply.
func (o Outcome) ConfirmationMessage() string {
	switch o.Kind {
	case OutcomeSolved:
		msg := fmt.Sprintf(
			"✅ %s marked **%s** (%s) as solved!",
			o.Username, o.Problem.Title, o.Problem.Difficulty,
		)
		if o.Stats != nil {
			msg += fmt.Sprintf(" Total solved: %d", o.Stats.Total)
		}
		return msg
	case OutcomeUnsolved:
		return fmt.Sprintf("↩️ %s unmarked **%s** as solved.", o.Username, o.Problem.Title)
	case OutcomeAlreadySolved:
		// a concurrent solve can win the insert before its time is known
		if o.SolvedAt.IsZero() {
			return fmt.Sprintf("%s already solved **%s**.", o.Username, o.Problem.Title)
		}
		return fmt.Sprintf(
			"%s already solved **%s** on %s.",
			o.Username, o.Problem.Title, o.SolvedAt.Format("Jan 2, 2006"),
		)
	default:
		return ""
	}
}
