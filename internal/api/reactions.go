package api

import (
	"fmt"
	"net/http"

	log "github.com/sirupsen/logrus"
	"github.com/tcp_snm/lcbot/internal/service"
	"github.com/tcp_snm/lcbot/internal/service/solve_service"
)

// HandlerReaction receives reaction events relayed from the chat gateway
func (a *Api) HandlerReaction(w http.ResponseWriter, r *http.Request) {
	// decode from body
	var request reactionRequest
	err := decodeJsonBody(r.Body, &request)
	if err != nil {
		msg := fmt.Sprintf("invalid request payload, %s", err.Error())
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	// validate
	if err = service.ValidateInput(request); err != nil {
		handlerError(err, w)
		return
	}

	// get claims
	claims, err := service.GetClaimsFromContext(r.Context())
	if err != nil {
		handlerError(err, w)
		return
	}

	kind := solve_service.ReactionAdd
	if request.Kind == "remove" {
		kind = solve_service.ReactionRemove
	}

	outcome, err := a.SolveServiceConfig.ApplyReaction(r.Context(), solve_service.ReactionEvent{
		Kind:            kind,
		Emoji:           request.Emoji,
		ReactorID:       request.User.ID,
		ReactorUsername: request.User.Username,
		IsBot:           request.User.Bot,
		Message: solve_service.ReactedMessage{
			AuthorID: request.Message.AuthorID,
			Embeds:   request.Message.Embeds,
		},
	})
	if err != nil {
		handlerError(err, w)
		return
	}

	log.WithFields(log.Fields{
		"relay":   claims.RelayName,
		"user_id": request.User.ID,
	}).Debugf("reaction %s -> %s", request.Kind, outcome.Kind)

	respondWithValue(w, http.StatusOK, reactionResponse{
		Result:       outcome.Kind.String(),
		Confirmation: outcome.ConfirmationMessage(),
		Outcome:      outcome,
	})
}
