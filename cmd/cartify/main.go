package main

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/django/v3"
	goerrors "github.com/goliatone/go-errors"
	"github.com/rs/zerolog"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/cartify/cartify/auth"
	"github.com/cartify/cartify/config"
	"github.com/cartify/cartify/store"
	"github.com/cartify/cartify/web"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := config.NewLogger(config.LoggerOptions{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("cartify exited")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	sqldb, err := sql.Open(sqliteshim.ShimName, cfg.Database.DSN)
	if err != nil {
		return err
	}
	db := bun.NewDB(sqldb, sqlitedialect.New())
	defer db.Close()

	repos := store.NewManager(db)
	if err := repos.CreateSchema(ctx); err != nil {
		return err
	}
	if err := seedAdmin(ctx, repos, log); err != nil {
		return err
	}

	authCfg := cfg.AuthCoreConfig()

	resolver := auth.NewResolver(repos.Users()).
		WithLogger(config.NewAuthLogger(log, "resolver"))
	authn := auth.NewAuthenticator(resolver)
	sessions := auth.NewSessions(authCfg)
	rememberMe := auth.NewRememberMe(authCfg, resolver)
	matcher := auth.MustMatcher(web.AccessRules())
	outcomes := auth.NewOutcomes(authCfg).
		WithLogger(config.NewAuthLogger(log, "outcomes"))
	guard := auth.NewGuard(authCfg, sessions, rememberMe, matcher, outcomes).
		WithLogger(config.NewAuthLogger(log, "guard"))

	engine := django.New("./views", ".html")

	app := fiber.New(fiber.Config{
		AppName:               "cartify",
		Views:                 engine,
		DisableStartupMessage: cfg.Env != "development",
		ErrorHandler:          errorHandler(log),
	})

	app.Static("/css", "./public/css")
	app.Static("/js", "./public/js")
	app.Static("/images", "./public/images")

	app.Use(web.CSRF(web.CSRFConfig{Key: []byte(cfg.Auth.CSRFKey)}))
	app.Use(guard.Middleware())

	web.Register(app, repos, authn, guard, config.NewAuthLogger(log, "web"))

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("cartify listening")
		errCh <- app.Listen(":" + cfg.Port)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return app.ShutdownWithContext(shutdownCtx)
	}
}

// seedAdmin guarantees one administrator exists so a fresh database is
// not locked out of /admin.
func seedAdmin(ctx context.Context, repos *store.Manager, log zerolog.Logger) error {
	const adminEmail = "admin@cartify.com"

	_, err := repos.Users().GetByEmail(ctx, adminEmail)
	if err == nil {
		return nil
	}
	if !goerrors.IsNotFound(err) {
		return err
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	_, err = repos.Users().Register(ctx, &store.User{
		FullName:     "Cartify Admin",
		Email:        adminEmail,
		PasswordHash: hash,
		Role:         auth.RoleAdmin,
		Status:       store.UserStatusActive,
	})
	if err != nil {
		return err
	}
	log.Info().Str("email", adminEmail).Msg("seeded admin account")
	return nil
}

func errorHandler(log zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
		}
		if code >= fiber.StatusInternalServerError {
			log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
		}
		return c.Status(code).Render("error/500", fiber.Map{
			"status": code,
		})
	}
}
