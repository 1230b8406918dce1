package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"transitcoop/internal/domain/users"
	"transitcoop/internal/roles"

	"github.com/google/uuid"
)

type CreateUserTokenPayload struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=3,max=72"`
}

type RefreshTokenPayload struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// TokenResponse represents the structure of the tokens in the response. made for swagger doc success output
type TokenResponse struct {
	AccessToken  string     `json:"access_token"`
	RefreshToken string     `json:"refresh_token"`
	UserID       string     `json:"user_id"`
	Roles        roles.View `json:"roles"`
}

// Envelope is a wrapper for API responses.made for swagger doc success output
type Envelope struct {
	Data TokenResponse `json:"data"`
}

var errInvalidCredentials = errors.New("invalid credentials")

// createTokenHandler godoc
//
//	@Summary		Login to get Token
//	@Description	Creates access and refresh tokens carrying the account's roles and active role.
//	@Tags			authentication
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		CreateUserTokenPayload	true	"User credentials"
//	@Success		200		{object}	Envelope
//	@Failure		400		{object}	error
//	@Failure		401		{object}	error
//	@Failure		500		{object}	error
//	@Router			/authentication/token [post]
func (app *application) createTokenHandler(w http.ResponseWriter, r *http.Request) {
	var payload CreateUserTokenPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	user, err := app.verifyCredentials(ctx, payload.Email, payload.Password)
	if err != nil {
		switch {
		case errors.Is(err, errInvalidCredentials):
			app.unauthorizedErrorResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	tokens, err := app.issueTokens(ctx, user.ID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, tokens)
}

// refreshTokenHandler godoc
//
//	@Summary		Refresh tokens
//	@Description	Exchanges a refresh token for a new token pair with the current role selection.
//	@Tags			authentication
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		RefreshTokenPayload	true	"Refresh token"
//	@Success		200		{object}	Envelope
//	@Failure		400		{object}	error
//	@Failure		401		{object}	error
//	@Router			/authentication/refresh [post]
func (app *application) refreshTokenHandler(w http.ResponseWriter, r *http.Request) {
	var payload RefreshTokenPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	userID, err := app.authenticator.ValidateRefreshToken(payload.RefreshToken)
	if err != nil {
		app.unauthorizedErrorResponse(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	user, err := app.store.Users.GetByID(ctx, userID)
	if err != nil || !user.IsActive {
		app.unauthorizedErrorResponse(w, r, errInvalidCredentials)
		return
	}

	tokens, err := app.issueTokens(ctx, user.ID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, tokens)
}

// verifyCredentials maps unknown accounts, disabled accounts and wrong
// passwords to errInvalidCredentials.
func (app *application) verifyCredentials(ctx context.Context, email, password string) (*users.User, error) {
	user, err := app.store.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return nil, errInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, errInvalidCredentials
	}

	if err := user.Password.Compare(password); err != nil {
		return nil, errInvalidCredentials
	}

	return user, nil
}

func (app *application) issueTokens(ctx context.Context, userID uuid.UUID) (*TokenResponse, error) {
	sel, err := app.store.AccessControl.GetSelection(ctx, userID)
	if err != nil {
		return nil, err
	}

	access, refresh, err := app.authenticator.GenerateTokens(
		userID,
		roles.ToStrings(sel.Assigned()),
		string(sel.Active()),
	)
	if err != nil {
		return nil, err
	}

	return &TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		UserID:       userID.String(),
		Roles:        sel.View(),
	}, nil
}
