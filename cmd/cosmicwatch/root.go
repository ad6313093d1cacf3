package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/cosmicwatch/cosmicwatch-go/internal/apiclient"
	"github.com/cosmicwatch/cosmicwatch-go/internal/config"
	"github.com/cosmicwatch/cosmicwatch-go/internal/neo"
	"github.com/cosmicwatch/cosmicwatch-go/internal/prefs"
)

var errNotSignedIn = errors.New("not signed in: run `cosmicwatch login` or `cosmicwatch signup` first")

// app holds the collaborators shared by every command. Fields left nil are
// built from flags and the environment before the command runs.
type app struct {
	out    io.Writer
	in     *bufio.Reader
	now    func() time.Time
	logger *slog.Logger

	store *prefs.Store
	feed  *neo.Client
	api   *apiclient.Client
}

func rootCmd(a *app) *cobra.Command {
	var (
		prefsPath string
		apiURL    string
		logLevel  string
	)

	cmd := &cobra.Command{
		Use:           "cosmicwatch",
		Short:         "Track near-Earth objects from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		Long: `cosmicwatch browses NASA's near-Earth object feed with a risk score for
every object, keeps a personal watchlist and shows upcoming close approaches.

Feed data is cached for five minutes. When the live feed is unreachable a
built-in dataset is shown instead.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd.OutOrStdout(), cmd.InOrStdin(), prefsPath, apiURL, logLevel)
		},
	}

	cmd.PersistentFlags().StringVar(&prefsPath, "prefs", os.Getenv("COSMICWATCH_PREFS"), "Preferences file (default $XDG_CONFIG_HOME/cosmicwatch/storage.json)")
	cmd.PersistentFlags().StringVar(&apiURL, "api-url", envOr("API_URL", "http://localhost:3001"), "Cosmic Watch API base URL")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", envOr("LOG_LEVEL", "warn"), "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		signupCmd(a),
		loginCmd(a),
		logoutCmd(a),
		whoamiCmd(a),
		feedCmd(a),
		showCmd(a),
		trackCmd(a),
		alertsCmd(a),
		unitCmd(a),
	)
	return cmd
}

func (a *app) init(out io.Writer, in io.Reader, prefsPath, apiURL, logLevel string) error {
	if a.out == nil {
		a.out = out
	}
	if a.in == nil {
		a.in = bufio.NewReader(in)
	}
	if a.now == nil {
		a.now = time.Now
	}

	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(logLevel)); err != nil {
		lvl = slog.LevelWarn
	}
	if a.logger == nil {
		a.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	}

	if a.store == nil {
		if prefsPath == "" {
			p, err := prefs.DefaultPath()
			if err != nil {
				return err
			}
			prefsPath = p
		}
		store, err := prefs.Open(prefsPath)
		if err != nil {
			return err
		}
		a.store = store
	}

	if a.feed == nil {
		cfg := config.LoadNeo()
		live := neo.NewLiveSource(cfg.BaseURL, cfg.APIKey, &http.Client{Timeout: cfg.Timeout})
		a.feed = neo.NewClient(
			neo.NewSource(cfg.Source, live),
			neo.WithCache(neo.NewCache(cfg.CacheTTL)),
			neo.WithLogger(a.logger),
		)
	}

	if a.api == nil {
		a.api = apiclient.New(apiURL, nil)
	}
	return nil
}

// requireUser mirrors the web client's protected routes.
func (a *app) requireUser() (prefs.Preferences, error) {
	p := a.store.Snapshot()
	if !p.LoggedIn() {
		return p, errNotSignedIn
	}
	return p, nil
}

// prompt reads one line from the input when value is empty.
func (a *app) prompt(label, value string) (string, error) {
	if value != "" {
		return value, nil
	}
	fmt.Fprintf(a.out, "%s: ", label)
	line, err := a.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("reading %s: %w", strings.ToLower(label), err)
	}
	return strings.TrimSpace(line), nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
