package main

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"transitcoop/docs" //this is required to generate swagger docs
	"transitcoop/internal/auth"
	"transitcoop/internal/domain/storage"
	"transitcoop/internal/fleet"
	"transitcoop/internal/lookup"
	"transitcoop/internal/metrics"
	"transitcoop/internal/provisioning"
	"transitcoop/internal/ratelimiter"
	"transitcoop/internal/scheduler"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
)

type application struct {
	config        config
	store         *storage.Container
	logger        *zap.SugaredLogger
	authenticator auth.Authenticator
	rateLimiter   ratelimiter.Limiter
	fleet         *fleet.Provider
	lookup        *lookup.Service
	// provisioner backs the create-test-users endpoint; provisioning is what
	// the dashboard invokes, either the same provisioner or a remote Client.
	provisioner  provisioning.Invoker
	provisioning provisioning.Invoker
	scheduler    *scheduler.Scheduler
}

type config struct {
	addr        string
	db          dbConfig
	env         string
	apiURL      string
	location    *time.Location
	auth        authConfig
	serviceKey  string
	provisionTo string
	reset       resetConfig
	mail        mailConfig
	rateLimiter ratelimiter.Config
}

type authConfig struct {
	basic basicConfig
	token tokenConfig
}

type tokenConfig struct {
	refreshSecret string
	secret        string
	iss           string
}

type basicConfig struct {
	user string
	pass string
}

type resetConfig struct {
	schedule string
}

type mailConfig struct {
	host      string
	port      int
	username  string
	password  string
	fromEmail string
	domain    string
}

type dbConfig struct {
	addr         string
	maxOpenConns int
	maxIdleTime  string
	autoMigrate  bool
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(corsMiddleware())

	//Set a timeout value on the request context (ctx), that will signal through ctx.Done() that the request has timed out and further processing should be stopped
	r.Use(middleware.Timeout(60 * time.Second))

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
	})

	r.Route("/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Get("/health", app.healthCheckHandler)
			docsURL := fmt.Sprintf("%s/v1/swagger/doc.json", app.config.apiURL)
			r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(docsURL)))

			r.With(app.BasicAuthMiddleware()).Get("/debug/vars", expvar.Handler().ServeHTTP)

			// Public routes
			r.Route("/authentication", func(r chi.Router) {
				r.Post("/token", app.createTokenHandler)
				r.Post("/refresh", app.refreshTokenHandler)
			})

			r.Group(func(r chi.Router) {
				r.Use(app.AuthTokenMiddleware)

				r.Get("/me/roles", app.getRolesHandler)
				r.Post("/me/active-role", app.setActiveRoleHandler)
				r.Get("/fleet/summary", app.fleetSummaryHandler)
			})
		})

		r.Route("/functions", func(r chi.Router) {
			r.Use(functionMethods)
			r.Use(app.ServiceKeyMiddleware)
			r.Use(app.RateLimiterMiddleware)

			r.HandleFunc("/create-test-users", app.createTestUsersHandler)
			r.HandleFunc("/check-user", app.checkUserHandler)
			r.HandleFunc("/reset-bus-assignments", app.resetBusAssignmentsHandler)
		})
	})

	r.Route("/dashboard", func(r chi.Router) {
		r.Get("/login", app.loginPageHandler)
		r.Post("/login", app.loginHandler)
		r.Post("/logout", app.logoutHandler)

		r.Group(func(r chi.Router) {
			r.Use(app.DashboardAuthMiddleware)

			r.Get("/", app.dashboardHandler)
			r.Get("/fleet", app.dashboardFleetHandler)
			r.Post("/active-role", app.dashboardActiveRoleHandler)
			r.Post("/provisioning", app.dashboardProvisioningHandler)
		})
	})

	return r
}

func (app *application) run(mux http.Handler) error {
	// Docs
	docs.SwaggerInfo.Version = version
	docs.SwaggerInfo.Host = app.config.apiURL
	docs.SwaggerInfo.BasePath = "/v1"

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 90,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	if err := app.startBackgroundJobs(); err != nil {
		return err
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		app.stopBackgroundJobs()
		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Infow("server has started", "addr", app.config.addr, "env", app.config.env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Infow("server has stopped", "addr", app.config.addr, "env", app.config.env)

	return nil
}
