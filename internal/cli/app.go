// Package cli implements the interactive command loop of the sintac tool.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dbarbosa/libanac/internal/config"
	"github.com/dbarbosa/libanac/internal/logbook"
	"github.com/dbarbosa/libanac/internal/logging"
	"github.com/dbarbosa/libanac/internal/session"
)

type App struct {
	config  *config.Config
	session *session.Session
	logbook *logbook.Client
	reader  *bufio.Reader
	out     io.Writer
}

// NewApp collects credentials, opens the portal session, and resolves the
// pilot's logbook id. The password comes from SINTAC_PASSWORD or, failing
// that, an interactive no-echo prompt; it is never read from configuration.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	reader := bufio.NewReader(os.Stdin)

	username := cfg.Username
	if username == "" {
		var err error
		username, err = GetSimpleText(reader, "Portal username", os.Stdout)
		if err != nil {
			return nil, err
		}
	}

	password := os.Getenv("SINTAC_PASSWORD")
	if password == "" {
		pw, err := GetPassword(os.Stdout)
		if err != nil {
			return nil, err
		}
		password = string(pw)
	}

	sess, err := session.New(ctx, session.Config{
		BaseURL:           cfg.BaseURL,
		CACertPath:        cfg.CACertPath,
		KeepAliveInterval: cfg.KeepAliveInterval,
		RequestTimeout:    cfg.RequestTimeout,
		Logger:            log,
	}, session.Credentials{Username: username, Password: password})
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	lb, err := logbook.New(ctx, sess)
	if err != nil {
		_ = sess.Close()
		return nil, err
	}

	return &App{
		config:  cfg,
		session: sess,
		logbook: lb,
		reader:  reader,
		out:     os.Stdout,
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.session.Close()
	a.root(ctx)
}
