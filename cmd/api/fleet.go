package main

import (
	"context"
	"net/http"
	"time"

	"transitcoop/internal/fleet"
)

// fleetSummaryHandler godoc
//
//	@Summary		Buses in service
//	@Description	Up to four in-service buses with owner, driver and official. A failed read is reported as state "failed" with 503.
//	@Tags			fleet
//	@Produce		json
//	@Success		200	{object}	fleet.Summary
//	@Failure		503	{object}	fleet.Summary
//	@Security		ApiKeyAuth
//	@Router			/fleet/summary [get]
func (app *application) fleetSummaryHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	summary := app.fleet.Load(ctx)

	status := http.StatusOK
	if summary.State == fleet.StateFailed {
		status = http.StatusServiceUnavailable
	}

	app.jsonResponse(w, status, summary)
}
