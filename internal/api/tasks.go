package api

import (
	"net/http"

	log "github.com/sirupsen/logrus"
	"github.com/tcp_snm/lcbot/internal/service"
)

func (a *Api) weeklyTaskState() (taskResponse, error) {
	state, err := a.Scheduler.GetTaskState(a.WeeklyTaskID)
	if err != nil {
		return taskResponse{}, err
	}
	return taskResponse{TaskID: a.WeeklyTaskID, State: state.String()}, nil
}

func (a *Api) HandlerGetWeeklyTask(w http.ResponseWriter, r *http.Request) {
	response, err := a.weeklyTaskState()
	if err != nil {
		handlerError(err, w)
		return
	}

	respondWithValue(w, http.StatusOK, response)
}

// HandlerTriggerWeeklyTask runs the weekly post now, the next weekly slot
// stays where it is
func (a *Api) HandlerTriggerWeeklyTask(w http.ResponseWriter, r *http.Request) {
	// get claims
	claims, err := service.GetClaimsFromContext(r.Context())
	if err != nil {
		handlerError(err, w)
		return
	}

	if err = a.Scheduler.TriggerTask(a.WeeklyTaskID); err != nil {
		handlerError(err, w)
		return
	}

	log.WithFields(log.Fields{
		"relay":   claims.RelayName,
		"task_id": a.WeeklyTaskID,
	}).Info("weekly task triggered")

	response, err := a.weeklyTaskState()
	if err != nil {
		handlerError(err, w)
		return
	}
	respondWithValue(w, http.StatusAccepted, response)
}

// HandlerKillWeeklyTask stops the weekly post until the next restart
func (a *Api) HandlerKillWeeklyTask(w http.ResponseWriter, r *http.Request) {
	// get claims
	claims, err := service.GetClaimsFromContext(r.Context())
	if err != nil {
		handlerError(err, w)
		return
	}

	if err = a.Scheduler.KillTask(a.WeeklyTaskID); err != nil {
		handlerError(err, w)
		return
	}

	log.WithFields(log.Fields{
		"relay":   claims.RelayName,
		"task_id": a.WeeklyTaskID,
	}).Warn("weekly task killed")

	response, err := a.weeklyTaskState()
	if err != nil {
		handlerError(err, w)
		return
	}
	respondWithValue(w, http.StatusOK, response)
}
