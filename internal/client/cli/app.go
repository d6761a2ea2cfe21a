package cli

import (
	"bufio"
	"context"
	"os"
	"path/filepath"

	"github.com/phoenix-letters/phoenix-go/internal/client/api"
	"github.com/phoenix-letters/phoenix-go/internal/client/auth"
	"github.com/phoenix-letters/phoenix-go/internal/client/config"
	"github.com/phoenix-letters/phoenix-go/internal/client/services"
	"github.com/phoenix-letters/phoenix-go/internal/filex"
	"github.com/phoenix-letters/phoenix-go/internal/logging"
)

type App struct {
	config      *config.Config
	authService services.AuthService
	log         logging.Logger
	reader      *bufio.Reader
	userEmail   string
}

func NewApp(cfg *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()

	tokenFile := cfg.TokenFile
	if tokenFile == "" {
		dir, err := filex.AppDir()
		if err != nil {
			return nil, err
		}
		tokenFile = filepath.Join(dir, "tokens.json")
	}

	store, err := auth.NewFileStore(tokenFile, cfg.ReadBuffer)
	if err != nil {
		return nil, err
	}

	notifier := auth.NewNotifier()
	mgr := auth.NewManager(store, notifier, auth.Settings{
		RefreshTimeout:   cfg.RefreshTimeout,
		ReadBuffer:       cfg.ReadBuffer,
		SetSafetyMargin:  cfg.SetSafetyMargin,
		FallbackLifetime: cfg.FallbackLifetime,
	}, log)

	apiClient := api.NewClient(cfg.APIBaseURL, cfg.RequestTimeout, mgr, log)
	mgr.SetRefresher(apiClient)

	app := &App{
		config:      cfg,
		authService: services.NewAuthService(apiClient, mgr),
		log:         log,
		reader:      bufio.NewReader(os.Stdin),
	}

	// React to the end of the session however it comes about: drop back to
	// the signed-out prompt.
	notifier.Subscribe(func(reason auth.Reason) {
		app.userEmail = ""
		if reason != auth.ReasonLoggedOut {
			printlnFn("Session expired, please log in again.")
		}
	})

	if app.authService.HasSession() {
		app.userEmail = app.authService.Email()
		log.Info(ctx, "session restored", "email", app.userEmail)
	}

	return app, nil
}

func (a *App) Run(ctx context.Context) {
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.authService.HasSession()
}
