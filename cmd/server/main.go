package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/aryanpathak02/EmailDispatcher/internal/config"
	"github.com/aryanpathak02/EmailDispatcher/internal/handler"
	"github.com/aryanpathak02/EmailDispatcher/internal/logging"
	"github.com/aryanpathak02/EmailDispatcher/internal/mail"
	"github.com/aryanpathak02/EmailDispatcher/internal/ratelimit"
	"github.com/aryanpathak02/EmailDispatcher/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel)

	var sender mail.Sender
	if cfg.MailConfigured() {
		switch cfg.Mail.Service {
		case "relay":
			sender = mail.NewRelaySender(cfg.Mail.RelayURL, cfg.Mail.RelayToken)
		default:
			sender = mail.NewSMTPSender(mail.SMTPConfig{
				Host:     cfg.Mail.SMTPHost,
				Port:     cfg.Mail.SMTPPort,
				Username: cfg.Mail.User,
				Password: cfg.Mail.Password,
			})
		}
	} else {
		// The service keeps running; /send-email alone reports 500
		// until relay credentials are provided.
		slog.Warn("email configuration missing, email functionality disabled",
			"missing", strings.Join(cfg.MissingMailVars(), ", "))
	}
	dispatcher := service.NewDispatchService(sender, cfg.FromAddress(), cfg.Mail.Recipient, cfg.Mail.Subject)

	store := ratelimit.NewMemoryStore()
	janitorCtx, stopJanitor := context.WithCancel(context.Background())
	defer stopJanitor()
	store.StartJanitor(janitorCtx, 5*time.Minute)

	limiter := ratelimit.New(ratelimit.Options{
		Store: store,
		Tiers: map[ratelimit.Tier]ratelimit.TierConfig{
			ratelimit.TierGeneral: {Window: cfg.RateLimit.GeneralWindow, MaxRequests: cfg.RateLimit.GeneralMax},
			ratelimit.TierEmail:   {Window: cfg.RateLimit.EmailWindow, MaxRequests: cfg.RateLimit.EmailMax},
			ratelimit.TierHealth:  {Window: cfg.RateLimit.HealthWindow, MaxRequests: cfg.RateLimit.HealthMax},
			ratelimit.TierStrict:  {Window: cfg.RateLimit.StrictWindow, MaxRequests: cfg.RateLimit.StrictMax},
		},
		Enabled:        cfg.Production(),
		TrustedProxies: cfg.RateLimit.TrustedProxies,
	})
	if !limiter.Enabled() {
		slog.Info("rate limiting disabled outside production")
	}

	h := handler.New(cfg, limiter, dispatcher)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      h.Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server listening",
			"addr", server.Addr,
			"environment", cfg.Environment,
			"allowed_origin", cfg.CORS.Origin,
			"email_configured", cfg.MailConfigured(),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatal("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}
