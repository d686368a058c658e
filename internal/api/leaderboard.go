package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"
	"github.com/tcp_snm/lcbot/internal/service"
)

func (a *Api) HandlerGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit, err := queryLimit(r)
	if err != nil {
		handlerError(err, w)
		return
	}

	entries, err := a.UserServiceConfig.GetLeaderboard(r.Context(), limit)
	if err != nil {
		handlerError(err, w)
		return
	}

	respondWithValue(w, http.StatusOK, entries)
}

func (a *Api) HandlerGetUserStats(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "user_id")

	profile, err := a.UserServiceConfig.GetUserProfile(r.Context(), userID, 0)
	if err != nil {
		handlerError(err, w)
		return
	}

	respondWithValue(w, http.StatusOK, profile)
}

func (a *Api) HandlerRebuildUserStats(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "user_id")

	// get claims
	claims, err := service.GetClaimsFromContext(r.Context())
	if err != nil {
		handlerError(err, w)
		return
	}

	user, err := a.UserServiceConfig.RebuildUserStats(r.Context(), userID)
	if err != nil {
		handlerError(err, w)
		return
	}

	log.WithFields(log.Fields{
		"relay":   claims.RelayName,
		"user_id": userID,
	}).Info("user stats rebuilt")

	respondWithValue(w, http.StatusOK, user)
}

func (a *Api) HandlerGetRecentlySolved(w http.ResponseWriter, r *http.Request) {
	limit, err := queryLimit(r)
	if err != nil {
		handlerError(err, w)
		return
	}

	recent, err := a.UserServiceConfig.GetRecentlySolved(r.Context(), limit)
	if err != nil {
		handlerError(err, w)
		return
	}

	respondWithValue(w, http.StatusOK, recent)
}

// HandlerPostUserStats shares the profile of a member with the channel
func (a *Api) HandlerPostUserStats(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "user_id")

	// the body is optional
	var request postStatsRequest
	err := decodeJsonBody(r.Body, &request)
	if err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
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

	profile, err := a.UserServiceConfig.GetUserProfile(r.Context(), userID, 0)
	if err != nil {
		handlerError(err, w)
		return
	}
	if err = a.Poster.PostStats(r.Context(), profile, request.AvatarURL); err != nil {
		handlerError(err, w)
		return
	}

	log.WithFields(log.Fields{
		"relay":   claims.RelayName,
		"user_id": userID,
	}).Info("user stats posted")

	respondWithValue(w, http.StatusOK, profile)
}

// HandlerPostLeaderboard posts the current leaderboard to the channel
func (a *Api) HandlerPostLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit, err := queryLimit(r)
	if err != nil {
		handlerError(err, w)
		return
	}

	// get claims
	claims, err := service.GetClaimsFromContext(r.Context())
	if err != nil {
		handlerError(err, w)
		return
	}

	entries, err := a.UserServiceConfig.GetLeaderboard(r.Context(), limit)
	if err != nil {
		handlerError(err, w)
		return
	}
	if err = a.Poster.PostLeaderboard(r.Context(), entries, a.CommunityName); err != nil {
		handlerError(err, w)
		return
	}

	log.WithField("relay", claims.RelayName).Info("leaderboard posted")

	respondWithValue(w, http.StatusOK, entries)
}
