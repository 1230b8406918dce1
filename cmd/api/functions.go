package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"transitcoop/internal/domain/users"
	"transitcoop/internal/lookup"
	"transitcoop/internal/metrics"
	"transitcoop/internal/provisioning"
)

const maxFunctionBody = 1 << 20

type checkUserPayload struct {
	Email string `json:"email"`
}

// CheckUserResponse is returned for a matched account. A miss is just
// {"exists": false}.
type CheckUserResponse struct {
	Exists  bool            `json:"exists"`
	User    *lookup.UserRef `json:"user,omitempty"`
	Profile *users.Profile  `json:"profile"`
	Roles   []string        `json:"roles"`
}

type checkUserMiss struct {
	Exists bool `json:"exists"`
}

// ResetResponse is the body of both outcomes of the reset endpoint.
type ResetResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
	Error     string `json:"error,omitempty"`
}

// checkUserHandler godoc
//
//	@Summary		Look up an account by email
//	@Description	Case-insensitive lookup returning the account, its profile and its roles.
//	@Tags			functions
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		checkUserPayload	true	"Email to look up"
//	@Success		200		{object}	CheckUserResponse
//	@Failure		400		{object}	map[string]string
//	@Failure		405		{object}	map[string]string
//	@Failure		500		{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/functions/check-user [post]
func (app *application) checkUserHandler(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxFunctionBody))
	if err != nil {
		writeFunctionError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if len(bytes.TrimSpace(body)) == 0 {
		writeFunctionError(w, http.StatusBadRequest, "empty body")
		return
	}

	var payload checkUserPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		writeFunctionError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	email, err := lookup.NormalizeEmail(payload.Email)
	if err != nil {
		writeFunctionError(w, http.StatusBadRequest, "invalid email")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	res, err := app.lookup.Lookup(ctx, email)
	if err != nil {
		app.logger.Errorw("user lookup failed", "email", email, "error", err)
		writeFunctionError(w, http.StatusInternalServerError, "failed to look up user")
		return
	}

	if !res.Exists {
		writeJSON(w, http.StatusOK, checkUserMiss{Exists: false})
		return
	}

	writeJSON(w, http.StatusOK, CheckUserResponse{
		Exists:  true,
		User:    &res.User,
		Profile: res.Profile,
		Roles:   res.Roles,
	})
}

// resetBusAssignmentsHandler godoc
//
//	@Summary		Reset daily bus assignments
//	@Description	Runs the database procedure that clears the day's driver and official assignments.
//	@Tags			functions
//	@Produce		json
//	@Success		200	{object}	ResetResponse
//	@Failure		405	{object}	map[string]string
//	@Failure		500	{object}	ResetResponse
//	@Security		ApiKeyAuth
//	@Router			/functions/reset-bus-assignments [post]
func (app *application) resetBusAssignmentsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	n, err := app.store.Assignments.ResetDaily(ctx)
	metrics.ObserveReset("manual", n, err)
	if err != nil {
		app.logger.Errorw("assignment reset failed", "error", err)

		msg := err.Error()
		if msg == "" {
			msg = "failed to reset bus assignments"
		}
		writeJSON(w, http.StatusInternalServerError, ResetResponse{Success: false, Error: msg})
		return
	}

	app.logger.Infow("assignments reset", "records_processed", n)
	writeJSON(w, http.StatusOK, ResetResponse{
		Success:   true,
		Message:   "Bus assignments reset successfully",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// createTestUsersHandler godoc
//
//	@Summary		Provision demo accounts
//	@Description	Creates or completes one demo account per role and returns per-account outcomes. Result status is one of success (created), updated (missing role or profile added), existing (already complete, no change) or error. summary.existing counts both updated and existing accounts.
//	@Tags			functions
//	@Produce		json
//	@Success		200	{object}	provisioning.Response
//	@Failure		405	{object}	map[string]string
//	@Failure		500	{object}	provisioning.Response
//	@Security		ApiKeyAuth
//	@Router			/functions/create-test-users [post]
func (app *application) createTestUsersHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()

	resp, err := app.provisioner.Invoke(ctx)
	if err != nil {
		app.logger.Errorw("provisioning failed", "error", err)

		msg := "failed to provision test users"
		if errors.Is(err, context.DeadlineExceeded) {
			msg = "provisioning timed out"
		}
		writeJSON(w, http.StatusInternalServerError, provisioning.Response{
			Results: []provisioning.Result{},
			Error:   msg,
		})
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
