package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/yash-srivastava19/thicket/internal/ai"
	"github.com/yash-srivastava19/thicket/internal/applog"
	"github.com/yash-srivastava19/thicket/internal/config"
	"github.com/yash-srivastava19/thicket/internal/links"
	"github.com/yash-srivastava19/thicket/internal/pages"
	"github.com/yash-srivastava19/thicket/internal/portrait"
	"github.com/yash-srivastava19/thicket/internal/theme"
	"github.com/yash-srivastava19/thicket/internal/ui"
)

const version = "0.1.0"

const farewell = "thicket: see you next time"

// errReported means the user has already been told what went wrong.
var errReported = errors.New("reported")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := &cli.Command{
		Name:      "thicket",
		Usage:     "browse a directory of interlinked markdown pages",
		Version:   version,
		ArgsUsage: "[pages-dir]",
		Action:    runBrowser,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to config file",
				Value:   config.DefaultPath(),
				Sources: cli.EnvVars("THICKET_CONFIG"),
			},
			&cli.StringFlag{
				Name:    "theme",
				Aliases: []string{"t"},
				Usage:   "color theme",
				Sources: cli.EnvVars("THICKET_THEME"),
			},
			&cli.BoolFlag{
				Name:    "no-overlay",
				Usage:   "hide the portrait and chat panel",
				Sources: cli.EnvVars("THICKET_NO_OVERLAY"),
			},
			&cli.StringFlag{
				Name:    "editor",
				Usage:   "editor command used by the e key",
				Sources: cli.EnvVars("EDITOR"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "list",
				Aliases:   []string{"ls"},
				Usage:     "print all pages",
				ArgsUsage: "[pages-dir]",
				Action:    runList,
			},
			{
				Name:      "links",
				Usage:     "print the links found in a page",
				ArgsUsage: "<pages-dir> <page>",
				Action:    runLinks,
			},
			{
				Name:      "new",
				Usage:     "create a page",
				ArgsUsage: "<pages-dir> <name>",
				Action:    runNew,
			},
		},
	}

	if err := cmd.Run(ctx, os.Args); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "thicket: %v\n", err)
		}
		os.Exit(1)
	}
}

// loadConfig reads the config file and applies the command-line overrides.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, err
	}
	if cmd.IsSet("theme") {
		cfg.Theme = cmd.String("theme")
	}
	if cmd.IsSet("no-overlay") {
		cfg.NoOverlay = cmd.Bool("no-overlay")
	}
	if cmd.IsSet("editor") {
		cfg.Editor = cmd.String("editor")
	}
	if dir := cmd.Args().First(); dir != "" {
		cfg.PagesDir = dir
	}

	if _, err := theme.Lookup(cfg.Theme); err != nil {
		printThemes(os.Stdout, cfg.Theme)
		return nil, errReported
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func printThemes(w io.Writer, name string) {
	fmt.Fprintf(w, "unknown theme %q; valid themes:\n", name)
	for _, n := range theme.Names() {
		fmt.Fprintln(w, n)
	}
}

func openStore(dir string) (*pages.Store, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("pages directory %q does not exist", dir)
	}
	store := pages.NewStore(dir)
	store.Discover()
	return store, nil
}

func runBrowser(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	store, err := openStore(cfg.PagesDir)
	if err != nil {
		return err
	}

	logger, closer, err := applog.New(cfg.Log.Path, cfg.Log.Level)
	if err != nil {
		return err
	}
	defer closer.Close()
	slog.SetDefault(logger)

	// No terminal to draw on: print the index and stop.
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return ui.WritePageList(os.Stdout, store.Root(), store.Pages())
	}

	var frames []string
	if cfg.Overlay.PortraitDir != "" {
		frames, err = portrait.Load(cfg.Overlay.PortraitDir)
		if err != nil {
			logger.Warn("portrait frames unavailable, using built-in",
				slog.String("dir", cfg.Overlay.PortraitDir),
				slog.String("error", err.Error()))
		}
	}

	completer := ai.New(cfg.AI.Provider, cfg.AI.APIKey, cfg.AI.Model)
	logger.Info("starting",
		slog.String("pages_dir", store.Root()),
		slog.Int("pages", len(store.Pages())),
		slog.String("theme", cfg.Theme),
		slog.String("ai_provider", completer.Name()))

	app := ui.New(store, ui.Options{
		Theme:         theme.MustLookup(cfg.Theme),
		Editor:        cfg.Editor,
		NoOverlay:     cfg.NoOverlay,
		SideThreshold: cfg.Overlay.SideThreshold,
		Portrait:      portrait.New(frames),
		Completer:     completer,
		Logger:        logger,
		Context:       ctx,
	})
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	fmt.Println(farewell)
	if err != nil && ctx.Err() == nil {
		return err
	}
	if ctx.Err() != nil {
		logger.Info("stopped by signal")
	}
	return nil
}

func runList(_ context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	store, err := openStore(cfg.PagesDir)
	if err != nil {
		return err
	}
	return ui.WritePageList(os.Stdout, store.Root(), store.Pages())
}

func runLinks(_ context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() < 2 {
		return fmt.Errorf("usage: thicket links <pages-dir> <page>")
	}
	store, err := openStore(cmd.Args().Get(0))
	if err != nil {
		return err
	}
	name := cmd.Args().Get(1)
	p, ok := store.FindByName(name)
	if !ok {
		return fmt.Errorf("%w: %q", pages.ErrNotFound, name)
	}
	lines, err := store.LoadContent(p)
	if err != nil {
		return err
	}
	return ui.WriteLinks(os.Stdout, p, links.Parse(lines))
}

func runNew(_ context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() < 2 {
		return fmt.Errorf("usage: thicket new <pages-dir> <name>")
	}
	store, err := openStore(cmd.Args().Get(0))
	if err != nil {
		return err
	}
	name := cmd.Args().Get(1)
	if p, ok := store.FindByName(name); ok {
		fmt.Printf("exists: %s\n", p.Path)
		return nil
	}
	p, err := store.CreatePage(name)
	if err != nil {
		return err
	}
	fmt.Println(p.Path)
	return nil
}
