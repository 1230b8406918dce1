package main

import (
	"expvar"
	"fmt"
	"log"
	"net/http"
	"os"
	"runtime"
	"time"

	"transitcoop/internal/auth"
	"transitcoop/internal/db"
	"transitcoop/internal/domain/storage"
	"transitcoop/internal/fleet"
	"transitcoop/internal/lookup"
	"transitcoop/internal/mailer"
	"transitcoop/internal/media"
	"transitcoop/internal/provisioning"
	"transitcoop/internal/ratelimiter"
	"transitcoop/internal/scheduler"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger creates a new zap logger with color.
func NewLogger() (*zap.SugaredLogger, error) {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder

	consoleEncoder := zapcore.NewConsoleEncoder(encoderCfg)

	core := zapcore.NewCore(consoleEncoder, zapcore.AddSync(os.Stdout), zapcore.InfoLevel)

	return zap.New(core).Sugar(), nil
}

var version = "0.1.0"

//	@title			Transit Cooperative API
//	@description	Role-based dashboard API for a transit cooperative: roles, fleet summary and operator functions.

//	@contact.name	API Support
//	@contact.url	http://www.swagger.io/support
//	@contact.email	support@swagger.io

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@BasePath					/v1
//	@securityDefinitions.apikey	ApiKeyAuth
//	@in							header
//	@name						Authorization
//	@description

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	logger, err := NewLogger()
	if err != nil {
		fmt.Println("Error creating logger:", err)
		return
	}
	defer logger.Sync()

	cfg, err := loadConfig()
	if err != nil {
		logger.Fatalw("invalid configuration", "error", err)
	}

	if cfg.db.autoMigrate {
		if err := db.Migrate(cfg.db.addr); err != nil {
			logger.Fatalw("migrations failed", "error", err)
		}
		logger.Info("database migrations applied")
	}

	// Database
	pool, err := db.New(db.Config{
		Addr:         cfg.db.addr,
		MaxOpenConns: int32(cfg.db.maxOpenConns),
		MaxIdleTime:  cfg.db.maxIdleTime,
		AppName:      "transitcoop-api",
	})
	if err != nil {
		logger.Fatal(err)
	}
	defer pool.Close()
	logger.Info("database connection pool established")

	store := storage.NewContainer(pool)

	var images media.Resolver = media.Passthrough{}
	if u := os.Getenv("CLOUDINARY_URL"); u != "" {
		cld, err := media.NewCloudinaryResolver(u)
		if err != nil {
			logger.Fatal(err)
		}
		images = cld
	}

	// credentials e-mail is optional
	var mail mailer.Client
	if cfg.mail.host != "" {
		smtp, err := mailer.NewSMTPClient(mailer.SMTPConfig{
			Host:      cfg.mail.host,
			Port:      cfg.mail.port,
			Username:  cfg.mail.username,
			Password:  cfg.mail.password,
			FromEmail: cfg.mail.fromEmail,
		})
		if err != nil {
			logger.Fatal(err)
		}
		mail = smtp
	}

	rateLimiter := ratelimiter.NewFixedWindowLimiter(
		cfg.rateLimiter.RequestsPerTimeFrame,
		cfg.rateLimiter.TimeFrame,
	)

	jwtAuthenticator := auth.NewJWTAuthenticator(
		cfg.auth.token.secret,
		cfg.auth.token.refreshSecret,
		cfg.auth.token.iss,
		cfg.auth.token.iss,
	)

	provisioner := provisioning.NewProvisioner(
		store.Users,
		store.AccessControl,
		mail,
		provisioning.DefaultRoster(cfg.mail.domain),
		logger,
	)

	// the dashboard calls a remote provisioning endpoint when one is
	// configured, the local provisioner otherwise
	var dashboardProvisioning provisioning.Invoker = provisioner
	if cfg.provisionTo != "" {
		dashboardProvisioning = provisioning.NewClient(cfg.provisionTo, cfg.serviceKey, &http.Client{Timeout: time.Minute})
	}

	app := &application{
		config:        cfg,
		logger:        logger,
		store:         store,
		authenticator: jwtAuthenticator,
		rateLimiter:   rateLimiter,
		fleet:         fleet.NewProvider(store.Buses, images, logger),
		lookup:        lookup.NewService(store.Users, store.AccessControl, logger),
		provisioner:   provisioner,
		provisioning:  dashboardProvisioning,
		scheduler:     scheduler.New(store.Assignments, cfg.location, logger),
	}

	//Metrics collected http://localhost:8080/v1/debug/vars
	expvar.NewString("version").Set(version)
	expvar.Publish("database", expvar.Func(func() any {
		s := pool.Stat()
		return map[string]int64{
			"total_conns":    int64(s.TotalConns()),
			"idle_conns":     int64(s.IdleConns()),
			"acquired_conns": int64(s.AcquiredConns()),
			"acquire_count":  s.AcquireCount(),
		}
	}))
	expvar.Publish("goroutines", expvar.Func(func() any {
		return runtime.NumGoroutine()
	}))

	mux := app.mount()

	logger.Fatal(app.run(mux))
}
