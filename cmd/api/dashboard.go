package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"transitcoop/internal/auth"
	"transitcoop/internal/provisioning"
	"transitcoop/internal/roles"
	"transitcoop/internal/ui"
)

const sessionTTL = time.Hour * 24 * 3

var flashMessages = map[string]string{
	"role":  "That role is not assigned to your account.",
	"error": "Something went wrong. Try again later.",
}

func (app *application) loginPageHandler(w http.ResponseWriter, r *http.Request) {
	ui.Render(w, http.StatusOK, ui.LoginPage(""))
}

func (app *application) loginHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		ui.Render(w, http.StatusBadRequest, ui.LoginPage("Invalid form submission."))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	user, err := app.verifyCredentials(ctx, r.PostForm.Get("email"), r.PostForm.Get("password"))
	if err != nil {
		if errors.Is(err, errInvalidCredentials) {
			ui.Render(w, http.StatusUnauthorized, ui.LoginPage("Invalid email or password."))
			return
		}
		app.logger.Errorw("dashboard login failed", "error", err)
		ui.Render(w, http.StatusInternalServerError, ui.LoginPage("Sign in is unavailable right now."))
		return
	}

	tokens, err := app.issueTokens(ctx, user.ID)
	if err != nil {
		app.logger.Errorw("dashboard token issue failed", "user_id", user.ID, "error", err)
		ui.Render(w, http.StatusInternalServerError, ui.LoginPage("Sign in is unavailable right now."))
		return
	}

	app.setSessionCookie(w, tokens.AccessToken)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (app *application) logoutHandler(w http.ResponseWriter, r *http.Request) {
	clearSessionCookie(w)
	http.Redirect(w, r, "/dashboard/login", http.StatusSeeOther)
}

func (app *application) dashboardHandler(w http.ResponseWriter, r *http.Request) {
	data := app.dashboardData(r)
	data.Flash = flashMessages[r.URL.Query().Get("flash")]

	ui.Render(w, http.StatusOK, ui.DashboardPage(data))
}

func (app *application) dashboardFleetHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	ui.Render(w, http.StatusOK, ui.FleetSection(app.fleet.Load(ctx)))
}

func (app *application) dashboardActiveRoleHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/dashboard?flash=error", http.StatusSeeOther)
		return
	}

	user := getUserFromContext(r)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	role := roles.Role(r.PostForm.Get("role"))
	if _, err := app.store.AccessControl.SetActiveRole(ctx, user.ID, role); err != nil {
		flash := "error"
		if errors.Is(err, roles.ErrRoleNotAssigned) {
			flash = "role"
		} else {
			app.logger.Errorw("dashboard role switch failed", "user_id", user.ID, "error", err)
		}
		http.Redirect(w, r, "/dashboard?flash="+flash, http.StatusSeeOther)
		return
	}

	tokens, err := app.issueTokens(ctx, user.ID)
	if err != nil {
		app.logger.Errorw("dashboard token issue failed", "user_id", user.ID, "error", err)
		http.Redirect(w, r, "/dashboard?flash=error", http.StatusSeeOther)
		return
	}

	app.setSessionCookie(w, tokens.AccessToken)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (app *application) dashboardProvisioningHandler(w http.ResponseWriter, r *http.Request) {
	data := app.dashboardData(r)
	if !data.CanProvision {
		ui.Render(w, http.StatusForbidden, ui.ErrorPage("Forbidden", "Only administrators can create test users."))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()

	out, err := provisioning.Run(ctx, app.provisioning)
	if err != nil {
		app.logger.Errorw("dashboard provisioning failed", "error", err)
	}
	data.Provisioning = &out

	ui.Render(w, http.StatusOK, ui.DashboardPage(data))
}

// dashboardData builds the shared page state. The role selection is read
// fresh; the token claims are the fallback when that read fails.
func (app *application) dashboardData(r *http.Request) ui.DashboardData {
	user := getUserFromContext(r)

	sel, err := app.store.AccessControl.GetSelection(r.Context(), user.ID)
	if err != nil {
		app.logger.Warnw("role selection unavailable, using token claims", "user_id", user.ID, "error", err)
		sel = roles.NewSelection(nil, "")
		if claims, ok := r.Context().Value(claimsCtx).(*auth.Claims); ok {
			sel = roles.NewSelection(roles.FromStrings(claims.Roles), roles.Role(claims.ActiveRole))
		}
	}

	return ui.DashboardData{
		Header: ui.HeaderData{
			Roles:    sel.View(),
			Now:      time.Now(),
			Location: app.config.location,
		},
		CanProvision: sel.Active() == roles.RoleAdministrator,
	}
}

func (app *application) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     accessTokenCookie,
		Value:    token,
		Path:     "/dashboard",
		MaxAge:   int(sessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   app.config.env == "production",
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     accessTokenCookie,
		Value:    "",
		Path:     "/dashboard",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
