package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/benchline/benchline/internal/api"
	"github.com/benchline/benchline/internal/config"
	"github.com/benchline/benchline/internal/logging"
	"github.com/benchline/benchline/internal/portal"
	"github.com/benchline/benchline/internal/session"
	"github.com/benchline/benchline/internal/tui"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, closer, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("logging: %v", err)
	}
	defer closer.Close()

	sess := restoreSession(logger)

	httpClient := &http.Client{}
	newGateway := func(token string) portal.Gateway {
		return api.New(cfg.API.BaseURL, token, httpClient, logger)
	}

	app := tui.New(ctx, cfg, tui.Deps{
		Session:    sess,
		Gateway:    newGateway(sess.Token),
		NewGateway: newGateway,
		Log:        logger,
	})

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}

// restoreSession loads the stored bearer token, if any. An expired or
// unreadable token falls back to an empty session, which sends the TUI to
// the sign-in view.
func restoreSession(logger zerolog.Logger) session.Context {
	token, err := session.LoadToken()
	if err != nil {
		logger.Debug().Err(err).Msg("no stored session")
		return session.Context{}
	}
	sess, err := session.FromToken(token)
	if err != nil {
		logger.Warn().Err(err).Msg("stored session token unreadable, discarding")
		_ = session.ClearToken()
		return session.Context{}
	}
	if sess.Expired(time.Now()) {
		logger.Info().Time("expired_at", sess.ExpiresAt).Msg("stored session expired")
		_ = session.ClearToken()
		return session.Context{}
	}
	return sess
}
