package main

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"

	"transitcoop/internal/auth"
	"transitcoop/internal/domain/users"
	"transitcoop/internal/fleet"
	"transitcoop/internal/ui"

	"github.com/go-chi/cors"
)

type ctxKey string

const (
	userCtx   ctxKey = "user"
	claimsCtx ctxKey = "claims"

	accessTokenCookie = "access_token"
	functionsPrefix   = "/v1/functions/"
	fragmentHeader    = "X-Fragment"
)

// functionHeaders is the header allowlist callers of the function
// endpoints send.
var functionHeaders = []string{"authorization", "x-client-info", "apikey", "content-type"}

// corsMiddleware applies the open function-endpoint policy under
// /v1/functions/ and the API policy everywhere else. It runs before routing
// so preflights never reach a 405.
func corsMiddleware() func(http.Handler) http.Handler {
	functions := cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"POST", "OPTIONS"},
		AllowedHeaders: functionHeaders,
		MaxAge:         300,
	})
	api := cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	})

	return func(next http.Handler) http.Handler {
		fn, rest := functions(next), api(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasPrefix(r.URL.Path, functionsPrefix) {
				fn.ServeHTTP(w, r)
				return
			}
			rest.ServeHTTP(w, r)
		})
	}
}

// functionMethods answers OPTIONS with an empty 200 and rejects anything
// but POST.
func functionMethods(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodOptions:
			w.WriteHeader(http.StatusOK)
		case http.MethodPost:
			next.ServeHTTP(w, r)
		default:
			w.Header().Set("Allow", "POST, OPTIONS")
			writeFunctionError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
	})
}

// ServiceKeyMiddleware accepts the service key in the apikey header or as a
// bearer token.
func (app *application) ServiceKeyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get("apikey")
		if key == "" {
			key = bearerToken(r)
		}

		if !auth.ServiceKeyMatches(app.config.serviceKey, key) {
			app.logger.Warnw("function call rejected", "path", r.URL.Path, "remote", r.RemoteAddr)
			writeFunctionError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (app *application) RateLimiterMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if app.config.rateLimiter.Enabled && app.rateLimiter != nil {
			if allow, retryAfter := app.rateLimiter.Allow(r.RemoteAddr); !allow {
				app.rateLimitExceededResponse(w, r, retryAfter.String())
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}

func (app *application) BasicAuthMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// read the auth header
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				app.unauthorizedBasicErrorResponse(w, r, fmt.Errorf("authorization header is missing"))
				return
			}

			// parse it -> get the base64
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Basic" {
				app.unauthorizedBasicErrorResponse(w, r, fmt.Errorf("authorization header is malformed"))
				return
			}

			decoded, err := base64.StdEncoding.DecodeString(parts[1])
			if err != nil {
				app.unauthorizedBasicErrorResponse(w, r, err)
				return
			}

			creds := strings.SplitN(string(decoded), ":", 2)
			if len(creds) != 2 ||
				!auth.ServiceKeyMatches(app.config.auth.basic.user, creds[0]) ||
				!auth.ServiceKeyMatches(app.config.auth.basic.pass, creds[1]) {
				app.unauthorizedBasicErrorResponse(w, r, fmt.Errorf("invalid credentials"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (app *application) AuthTokenMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			app.unauthorizedErrorResponse(w, r, fmt.Errorf("authorization header is missing or malformed"))
			return
		}

		ctx, err := app.authenticate(r.Context(), token)
		if err != nil {
			app.unauthorizedErrorResponse(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// DashboardAuthMiddleware reads the access token cookie and sends anonymous
// visitors to the login page. Fragment requests get a 401 with the failed
// fragment instead of a redirect.
func (app *application) DashboardAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(accessTokenCookie)
		if err != nil || cookie.Value == "" {
			app.dashboardUnauthorized(w, r)
			return
		}

		ctx, err := app.authenticate(r.Context(), cookie.Value)
		if err != nil {
			app.logger.Infow("dashboard session rejected", "error", err)
			clearSessionCookie(w)
			app.dashboardUnauthorized(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (app *application) dashboardUnauthorized(w http.ResponseWriter, r *http.Request) {
	if isFragmentRequest(r) {
		ui.Render(w, http.StatusUnauthorized, ui.FleetSection(fleet.Summary{
			State: fleet.StateFailed,
			Cards: []fleet.Card{},
			Error: "Your session has expired. Sign in again.",
		}))
		return
	}
	http.Redirect(w, r, "/dashboard/login", http.StatusSeeOther)
}

func isFragmentRequest(r *http.Request) bool {
	return r.Header.Get(fragmentHeader) != "" || r.URL.Path == ui.FleetFragmentPath
}

func (app *application) authenticate(ctx context.Context, token string) (context.Context, error) {
	claims, err := app.authenticator.ValidateAccessToken(token)
	if err != nil {
		return nil, err
	}

	userID, err := claims.UserID()
	if err != nil {
		return nil, err
	}

	user, err := app.store.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, fmt.Errorf("account %s is disabled", user.ID)
	}

	ctx = context.WithValue(ctx, userCtx, user)
	ctx = context.WithValue(ctx, claimsCtx, claims)
	return ctx, nil
}

func bearerToken(r *http.Request) string {
	parts := strings.Split(r.Header.Get("Authorization"), " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

func getUserFromContext(r *http.Request) *users.User {
	if user, ok := r.Context().Value(userCtx).(*users.User); ok {
		return user
	}
	return nil
}
