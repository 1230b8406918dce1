package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"transitcoop/internal/domain/accesscontrol"
	"transitcoop/internal/roles"
)

type SetActiveRolePayload struct {
	Role string `json:"role" validate:"required,max=64"`
}

// getRolesHandler godoc
//
//	@Summary		Current role selection
//	@Description	Returns the active role, every assigned role with its display descriptor, and whether switching is possible.
//	@Tags			roles
//	@Produce		json
//	@Success		200	{object}	roles.View
//	@Failure		401	{object}	error
//	@Failure		500	{object}	error
//	@Security		ApiKeyAuth
//	@Router			/me/roles [get]
func (app *application) getRolesHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	sel, err := app.store.AccessControl.GetSelection(ctx, user.ID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, sel.View())
}

// setActiveRoleHandler godoc
//
//	@Summary		Switch the active role
//	@Description	Persists the active role and returns a fresh token pair carrying it.
//	@Tags			roles
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		SetActiveRolePayload	true	"Role to act as"
//	@Success		200		{object}	Envelope
//	@Failure		400		{object}	error
//	@Failure		403		{object}	error
//	@Failure		500		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/me/active-role [post]
func (app *application) setActiveRoleHandler(w http.ResponseWriter, r *http.Request) {
	var payload SetActiveRolePayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	user := getUserFromContext(r)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := app.switchRole(ctx, w, r, payload.Role); err != nil {
		return
	}

	tokens, err := app.issueTokens(ctx, user.ID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, tokens)
}

// switchRole persists the new active role and writes the error response
// itself when it fails.
func (app *application) switchRole(ctx context.Context, w http.ResponseWriter, r *http.Request, raw string) error {
	user := getUserFromContext(r)

	role := roles.Role(raw)
	if parsed, ok := roles.Parse(raw); ok {
		role = parsed
	}

	_, err := app.store.AccessControl.SetActiveRole(ctx, user.ID, role)
	switch {
	case err == nil:
		app.logger.Infow("active role switched", "user_id", user.ID, "role", role)
		return nil
	case errors.Is(err, roles.ErrRoleNotAssigned):
		app.forbiddenResponse(w, r, err)
	case errors.Is(err, accesscontrol.ErrAccountNotFound):
		app.notFoundResponse(w, r, err)
	default:
		app.internalServerError(w, r, err)
	}
	return err
}
