package api

import (
	"errors"
	"io"
	"net/http"

	log "github.com/sirupsen/logrus"
	"github.com/tcp_snm/lcbot/internal/service"
)

// HandlerPublishProblem posts a random unposted problem, the manual
// counterpart of the weekly task
func (a *Api) HandlerPublishProblem(w http.ResponseWriter, r *http.Request) {
	// the body is optional
	var request publishRequest
	err := decodeJsonBody(r.Body, &request)
	if err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// get claims
	claims, err := service.GetClaimsFromContext(r.Context())
	if err != nil {
		handlerError(err, w)
		return
	}

	problem, err := a.ProblemServiceConfig.PublishUnsolved(r.Context(), request.Weekly)
	if err != nil {
		handlerError(err, w)
		return
	}

	log.WithFields(log.Fields{
		"relay":      claims.RelayName,
		"problem_id": problem.ID,
	}).Info("problem published on request")

	respondWithValue(w, http.StatusCreated, problem)
}
