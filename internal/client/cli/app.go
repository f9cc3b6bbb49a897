package cli

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/vacayhq/vacay/internal/client/api"
	"github.com/vacayhq/vacay/internal/client/config"
	"github.com/vacayhq/vacay/internal/client/models"
	"github.com/vacayhq/vacay/internal/client/progress"
	"github.com/vacayhq/vacay/internal/client/session"
	"github.com/vacayhq/vacay/internal/client/upload"

	_ "modernc.org/sqlite"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// App ties the API client, the session store, and the upload pipeline
// together behind the REPL commands.
type App struct {
	config       *config.Config
	api          *api.HTTPClient
	store        *session.Store
	tracker      *progress.Tracker
	uploader     *upload.Orchestrator
	userEmail    string
	currentAlbum *models.Album
	loggedIn     bool
	Mode         Mode
	reader       *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {

	ctx := context.Background()

	store, err := session.Open(ctx, c.DatabasePath)
	if err != nil {
		log.Printf("error opening session store: %s", err.Error())
		return nil, err
	}

	apiClient := api.NewHTTPClient(c.ServerAddr)
	apiClient.OnTokensUpdated(func(pair models.TokenPair) {
		if err := store.SaveTokens(context.Background(), pair); err != nil {
			log.Printf("error persisting session: %s", err.Error())
		}
	})

	a := &App{
		config:  c,
		api:     apiClient,
		store:   store,
		tracker: progress.NewTracker(),
		reader:  bufio.NewReader(os.Stdin),
	}
	a.tracker.OnChange(a.renderProgress)

	a.uploader = upload.NewOrchestrator(apiClient, a.tracker, c.UploadConcurrency)
	a.uploader.OnRejected(func(r upload.Rejection) {
		printlnFn(fmt.Sprintf("Skipped %s: %s", r.Name, r.Reason))
	})
	a.uploader.OnSettled(func() {
		if err := a.Media(context.Background()); err != nil {
			log.Printf("error refreshing album media: %s", err.Error())
		}
	})

	a.restoreSession(ctx)

	return a, nil
}

// restoreSession reuses tokens and the last opened album from a previous run.
// Failures are not fatal, the user just has to log in again.
func (a *App) restoreSession(ctx context.Context) {
	pair, err := a.store.LoadTokens(ctx)
	if err != nil || pair == nil {
		return
	}
	a.api.SetTokens(*pair)
	a.loggedIn = true

	if email, err := a.store.Email(ctx); err == nil {
		a.userEmail = email
	}

	albumID, err := a.store.CurrentAlbum(ctx)
	if err != nil || albumID == "" {
		return
	}
	album, err := a.api.GetAlbum(ctx, albumID)
	if err != nil {
		return
	}
	a.currentAlbum = album
}

func (a *App) isLoggedIn() bool {
	return a.loggedIn
}

func (a *App) setMode(mode Mode) {
	if a.Mode != mode {
		a.Mode = mode
		log.Printf("Switched to %s mode\n", mode)
	}
}

func (a *App) getStatus() string {
	s := ""
	if a.userEmail != "" {
		s = a.userEmail
	}
	if a.currentAlbum != nil {
		s = s + " @" + a.currentAlbum.Title
	}
	if a.Mode != "" {
		s = s + " " + string(a.Mode)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

func (a *App) renderProgress(tasks []progress.Task) {
	for _, t := range tasks {
		if t.Message != "" {
			printlnFn(fmt.Sprintf("  [%3d%%] %s: %s (%s)", t.Percent, t.Name, t.Status, t.Message))
		} else {
			printlnFn(fmt.Sprintf("  [%3d%%] %s: %s", t.Percent, t.Name, t.Status))
		}
	}
}

// Run starts the REPL and blocks until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.store.Close()

	log.Println("Welcome to Vacay CLI (type 'help' for commands)")

	go func() {
		a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)
	}()

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

// StartOnlineStatusWatcher periodically pings the server and flips the
// connectivity mode shown in the prompt.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			err := a.api.Ping(pingCtx)
			cancel()

			if err != nil {
				a.setMode(ModeOffline)
			} else {
				a.setMode(ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}
