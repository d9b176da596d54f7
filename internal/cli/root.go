// Package cli implements bioctl, a terminal editor for a bio page. Every
// command opens an editing session on the user's document, applies one
// change and waits for it to be saved before exiting.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/bio/internal/catalog"
	"github.com/MrSnakeDoc/bio/internal/domain"
	"github.com/MrSnakeDoc/bio/internal/engine"
	"github.com/MrSnakeDoc/bio/internal/logger"
	"github.com/MrSnakeDoc/bio/internal/storeclient"
)

// ErrCancelled is returned when a confirmation is answered with no.
var ErrCancelled = errors.New("cancelled by user")

// ErrNotSaved is returned when a change was applied locally but the store
// rejected it.
var ErrNotSaved = errors.New("changes were not saved")

type cli struct {
	api         string
	user        string
	token       string
	logLevel    string
	placeholder string
	offline     bool
	yes         bool

	in  *bufio.Reader
	out *syncWriter
	log logger.Logger

	// newStore opens the document store for a session.
	newStore func() (storeclient.Store, error)
}

// NewRootCmd builds the bioctl command tree reading answers from in and
// printing to out.
func NewRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	c := &cli{in: bufio.NewReader(in), out: &syncWriter{w: out}}
	c.newStore = c.defaultStore
	return c.rootCmd()
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "bioctl",
		Short:         "Edit a bio page from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if c.log == nil {
				c.log = logger.New(c.logLevel, true)
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&c.api, "api", envOr("BIOCTL_API", "http://localhost:8080"), "bio server base URL")
	f.StringVar(&c.user, "user", os.Getenv("BIOCTL_USER"), "username whose page is edited, empty for an anonymous session")
	f.StringVar(&c.token, "token", os.Getenv("BIOCTL_TOKEN"), "session token returned by login")
	f.StringVar(&c.logLevel, "log-level", envOr("BIOCTL_LOG_LEVEL", "error"), "log level (debug, info, warn, error)")
	f.StringVar(&c.placeholder, "placeholder", os.Getenv("BIOCTL_PLACEHOLDER"), "YAML document shown to anonymous sessions")
	f.BoolVar(&c.offline, "offline", false, "edit an in-memory document instead of the server")
	f.BoolVarP(&c.yes, "yes", "y", false, "answer yes to confirmations")

	root.AddCommand(
		c.showCmd(),
		c.loginCmd(),
		c.profileCmd(),
		c.linkCmd(),
		c.groupCmd(),
		c.socialCmd(),
		c.paletteCmd(),
		c.themeCmd(),
		c.catalogCmd(),
		c.exportCmd(),
		c.importCmd(),
	)
	return root
}

func (c *cli) defaultStore() (storeclient.Store, error) {
	if c.offline {
		return storeclient.NewMemory(), nil
	}
	if c.user != "" && c.token == "" {
		return nil, fmt.Errorf("--token is required for user %q, run bioctl login first", c.user)
	}
	return storeclient.NewHTTP(c.api, storeclient.WithToken(c.token)), nil
}

// session loads the document, runs fn and waits for every change fn made
// to settle. Notifications are printed as they arrive; an error
// notification makes the session fail with ErrNotSaved.
func (c *cli) session(ctx context.Context, fn func(e *engine.Engine) error) error {
	store, err := c.newStore()
	if err != nil {
		return err
	}

	var failed atomic.Bool
	opts := engine.Options{
		Username: c.user,
		Logger:   c.log,
		Notifier: engine.NotifierFunc(func(n engine.Notification) {
			if n.Level == engine.LevelError {
				failed.Store(true)
			}
			c.printNotification(n)
		}),
		OnLogout: func() {
			c.log.Warn("session rejected, continuing anonymously", logger.String("user", c.user))
		},
	}
	if c.placeholder != "" {
		doc, err := catalog.LoadPlaceholder(c.placeholder, time.Now())
		if err != nil {
			return err
		}
		opts.Placeholder = func(time.Time) domain.Document { return doc.Clone() }
	}

	e := engine.New(store, opts)
	defer e.Close()

	if err := e.Load(ctx); err != nil {
		return err
	}
	if err := fn(e); err != nil {
		return err
	}
	if err := e.Flush(ctx); err != nil {
		return err
	}
	if failed.Load() {
		return ErrNotSaved
	}
	return nil
}

// confirm asks the user to accept a pending confirmation.
func (c *cli) confirm(conf *engine.Confirmation) error {
	if !c.yes {
		c.out.Printf("%s\n%s (y/N): ", conf.Title, conf.Message)
		answer, err := c.in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			conf.Dismiss()
			return fmt.Errorf("read answer: %w", err)
		}
		answer = strings.ToLower(strings.TrimSpace(answer))
		if answer != "y" && answer != "yes" {
			conf.Dismiss()
			return ErrCancelled
		}
	}
	return conf.Confirm()
}

func (c *cli) printNotification(n engine.Notification) {
	mark := "✅"
	switch n.Level {
	case engine.LevelError:
		mark = "❌"
	case engine.LevelInfo:
		mark = "ℹ️"
	}
	c.out.Printf("%s %s\n", mark, n.Message)
}

// syncWriter serializes writes coming from the command and from the
// engine's persistence worker.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

func (s *syncWriter) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(s, format, args...)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
