package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"postboard/config"
	"postboard/db"
	"postboard/handler"
	"postboard/store"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"golang.org/x/crypto/acme/autocert"
)

func main() {
	c, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	e := newServer()
	if c.Env == config.DevEnv {
		e.Logger.SetLevel(log.DEBUG)
	} else {
		e.Logger.SetLevel(log.INFO)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.Open(ctx, c.DB)
	if err != nil {
		e.Logger.Fatal(err)
	}
	defer pool.Close()
	e.Logger.Info("Connected to the database")

	if c.DB.AutoMigrate {
		e.Logger.Info("Running database schema migrations...")
		if err := db.Migrate(pool, c.DB.Driver); err != nil {
			if db.IsNoChange(err) {
				e.Logger.Info("No database schema migration ran. Database schema already in latest version")
			} else {
				e.Logger.Fatalf("Error during database schema migration: %v", err)
			}
		}
	}

	h := handler.Handler{
		Posts: store.New(pool, store.Dialect(c.DB.Driver)),
	}
	h.Register(e)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			e.Logger.Error(err)
		}
	}()

	if err := start(e, c); err != nil && !errors.Is(err, http.ErrServerClosed) {
		e.Logger.Fatal(err)
	}
}

func newServer() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.Logger())
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = handler.HTTPErrorHandler
	return e
}

func start(e *echo.Echo, c *config.Config) error {
	if c.AddressListen != "" {
		return e.Start(c.AddressListen)
	}
	if c.WhitelistHost == "" {
		return e.Start(config.DefaultAddress)
	}
	// Cache certificates to avoid issues with rate limits (https://letsencrypt.org/docs/rate-limits)
	e.AutoTLSManager.Cache = autocert.DirCache(c.AutocertCache)
	e.AutoTLSManager.HostPolicy = autocert.HostWhitelist(c.WhitelistHost)
	e.Pre(middleware.HTTPSRedirect())
	return e.StartAutoTLS(":443")
}
