package api

import (
	"context"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

func (a *Api) HandlerReadiness(w http.ResponseWriter, r *http.Request) {
	if a.DB != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := a.DB.Ping(ctx); err != nil {
			log.Warnf("readiness check failed, %v", err)
			respondWithValue(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	respondWithValue(w, http.StatusOK, map[string]string{"status": "ok"})
}
