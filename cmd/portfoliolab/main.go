package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/alecthomas/kong"

	"github.com/MykhailoOS/PortfolioLab/internal/config"
	"github.com/MykhailoOS/PortfolioLab/internal/daemon"
	"github.com/MykhailoOS/PortfolioLab/internal/export"
	"github.com/MykhailoOS/PortfolioLab/internal/portfolio"
	"github.com/MykhailoOS/PortfolioLab/internal/publish"
	"github.com/MykhailoOS/PortfolioLab/internal/validate"
)

var CLI struct {
	Config  string `short:"c" help:"Configuration file path" default:"portfoliolab.yaml"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Export struct {
		Document string `short:"d" help:"Portfolio document path (overrides config)"`
		Output   string `short:"o" help:"Output directory for the archive (overrides config)"`
		Report   bool   `help:"Write an export report next to the archive"`
	} `cmd:"" help:"Validate, render and package the portfolio into a zip archive"`

	Validate struct {
		Document string `short:"d" help:"Portfolio document path (overrides config)"`
	} `cmd:"" help:"Run pre-flight validation without exporting"`

	Publish struct {
		Document     string `short:"d" help:"Portfolio document path (overrides config)"`
		Owner        string `help:"Repository owner (overrides config)"`
		Repo         string `help:"Repository name (overrides config)"`
		Branch       string `help:"Target branch (overrides config)"`
		BasePath     string `help:"Base path in the repository: / or /docs (overrides config)"`
		Message      string `short:"m" help:"Commit message"`
		Local        string `help:"Publish into a local git repository at this path instead of GitHub"`
		CreateRepo   bool   `help:"Create the repository if it does not exist"`
		CreateBranch bool   `help:"Create the target branch from the default branch if it does not exist"`
		Private      bool   `help:"Create the repository as private (with --create-repo)"`
	} `cmd:"" help:"Export the portfolio and push the generated site to GitHub"`

	Repos struct{} `cmd:"" help:"List the connected account's repositories"`

	Branches struct {
		Owner string `help:"Repository owner (overrides config)"`
		Repo  string `help:"Repository name (overrides config)"`
	} `cmd:"" help:"List branches of the publish repository"`

	Connect struct {
		Token string `arg:"" help:"GitHub personal access token"`
	} `cmd:"" help:"Validate and store a GitHub personal access token"`

	Disconnect struct{} `cmd:"" help:"Remove the stored GitHub token and saved push settings"`

	Init struct {
		Document string `short:"d" help:"Where to write the seed portfolio document" default:"portfolio.json"`
		Force    bool   `help:"Overwrite existing files"`
	} `cmd:"" help:"Create a configuration file and a seed portfolio document"`

	Report struct {
		Document string `short:"d" help:"Portfolio document path (overrides config)"`
		Output   string `short:"o" help:"Report output path" default:"export-report.md"`
		HTML     bool   `help:"Also write an HTML rendition of the report"`
	} `cmd:"" help:"Run an export and write a detailed report"`

	Daemon struct{} `cmd:"" help:"Run continuously: re-export on document changes and serve metrics"`
}

func main() {
	kctx := kong.Parse(&CLI)

	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	cfg := loadConfig()
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var err error
	switch kctx.Command() {
	case "export":
		err = runExport(ctx, cfg)
	case "validate":
		err = runValidate(ctx, cfg)
	case "publish":
		err = runPublish(ctx, cfg)
	case "repos":
		err = runRepos(ctx, cfg)
	case "branches":
		err = runBranches(ctx, cfg)
	case "connect <token>":
		err = runConnect(ctx, cfg, CLI.Connect.Token)
	case "disconnect":
		err = runDisconnect(ctx, cfg)
	case "init":
		err = config.Init(CLI.Config, CLI.Init.Document, CLI.Init.Force)
	case "report":
		err = runReport(ctx, cfg)
	case "daemon":
		err = daemon.New(cfg).Run(ctx)
	default:
		err = fmt.Errorf("unknown command: %s", kctx.Command())
	}
	if err != nil {
		slog.Error("command failed", "command", kctx.Command(), "error", err)
		os.Exit(1)
	}
}

// loadConfig loads the config file when it exists and falls back to
// defaults, then applies CLI overrides.
func loadConfig() *config.Config {
	var cfg *config.Config
	if _, statErr := os.Stat(CLI.Config); statErr != nil {
		cfg = config.Default()
	} else {
		var err error
		cfg, err = config.Load(CLI.Config)
		if err != nil {
			cfg = config.Default()
			slog.Warn("using default configuration", "path", CLI.Config, "error", err)
		}
	}

	for _, override := range []struct {
		value  string
		target *string
	}{
		{CLI.Export.Document, &cfg.Document},
		{CLI.Validate.Document, &cfg.Document},
		{CLI.Publish.Document, &cfg.Document},
		{CLI.Report.Document, &cfg.Document},
		{CLI.Export.Output, &cfg.Output.Directory},
		{CLI.Publish.Owner, &cfg.Publish.Owner},
		{CLI.Publish.Repo, &cfg.Publish.Repo},
		{CLI.Branches.Owner, &cfg.Publish.Owner},
		{CLI.Branches.Repo, &cfg.Publish.Repo},
		{CLI.Publish.Branch, &cfg.Publish.Branch},
		{CLI.Publish.BasePath, &cfg.Publish.BasePath},
		{CLI.Publish.Message, &cfg.Publish.Message},
	} {
		if override.value != "" {
			*override.target = override.value
		}
	}
	if CLI.Export.Report {
		cfg.Output.Report = true
	}
	return cfg
}

// newPipeline builds the export pipeline, wiring the NATS emitter when
// event publishing is configured.
func newPipeline(cfg *config.Config) (*export.Pipeline, func()) {
	if cfg.Events.NATSURL == "" {
		return export.New(), func() {}
	}
	emitter, err := validate.NewNATSEmitter(cfg.Events.NATSURL, cfg.Events.Subject)
	if err != nil {
		slog.Warn("event publishing disabled", "url", cfg.Events.NATSURL, "error", err)
		return export.New(), func() {}
	}
	validator := validate.New(validate.WithEventEmitter(emitter))
	return export.New(export.WithValidator(validator)), emitter.Close
}

func runExport(ctx context.Context, cfg *config.Config) error {
	doc, err := portfolio.Load(cfg.Document)
	if err != nil {
		return err
	}

	pipeline, cleanup := newPipeline(cfg)
	defer cleanup()
	res := pipeline.Run(ctx, doc, false)
	if !res.Success {
		printValidationErrors(res.Errors)
		return fmt.Errorf("export refused: %d validation errors", len(res.Errors))
	}

	archivePath := filepath.Join(cfg.Output.Directory, res.ArchiveName)
	if err := os.WriteFile(archivePath, res.Archive, 0o644); err != nil {
		return fmt.Errorf("write archive: %w", err)
	}
	if cfg.Output.Report {
		reportPath := filepath.Join(cfg.Output.Directory, "export-report.md")
		if err := export.WriteReport(res, reportPath); err != nil {
			return err
		}
	}

	fmt.Printf("Exported %s (%d bytes, %d pages, %d assets)\n",
		archivePath, res.Stats.FileSize, res.Stats.PageCount, res.Stats.AssetCount)
	return nil
}

func runValidate(ctx context.Context, cfg *config.Config) error {
	doc, err := portfolio.Load(cfg.Document)
	if err != nil {
		return err
	}

	errs := validate.New().Validate(ctx, doc, false)
	if len(errs) == 0 {
		fmt.Println("Portfolio is valid.")
		return nil
	}
	printValidationErrors(errs)
	return fmt.Errorf("%d validation errors", len(errs))
}

func runPublish(ctx context.Context, cfg *config.Config) error {
	doc, err := portfolio.Load(cfg.Document)
	if err != nil {
		return err
	}

	pipeline, cleanup := newPipeline(cfg)
	defer cleanup()
	res := pipeline.Run(ctx, doc, false)
	if !res.Success {
		printValidationErrors(res.Errors)
		return fmt.Errorf("export refused: %d validation errors", len(res.Errors))
	}

	if CLI.Publish.Local != "" {
		publisher, err := publish.NewLocalPublisher(CLI.Publish.Local)
		if err != nil {
			return err
		}
		hash, err := publisher.Publish(ctx, cfg.Publish.BasePath, res.Files, cfg.Publish.Message)
		if err != nil {
			return err
		}
		fmt.Printf("Committed %d files to %s (%s)\n", len(res.Files), CLI.Publish.Local, hash[:8])
		return nil
	}

	if cfg.Publish.Owner == "" || cfg.Publish.Repo == "" {
		return fmt.Errorf("publish destination incomplete: owner and repo are required")
	}
	if !publish.IsValidRepoName(cfg.Publish.Repo) {
		return fmt.Errorf("invalid repository name %q", cfg.Publish.Repo)
	}
	if !publish.IsValidBranchName(cfg.Publish.Branch) {
		return fmt.Errorf("invalid branch name %q", cfg.Publish.Branch)
	}

	token, store, err := resolveToken(ctx, cfg)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}

	client, err := publish.NewGitHubClient(token)
	if err != nil {
		return err
	}

	pushCfg := publish.PushConfig{
		Owner:    cfg.Publish.Owner,
		Repo:     cfg.Publish.Repo,
		Branch:   cfg.Publish.Branch,
		BasePath: cfg.Publish.BasePath,
		Message:  cfg.Publish.Message,
	}
	if err := ensureDestination(ctx, client, pushCfg); err != nil {
		return err
	}
	result := client.Push(ctx, pushCfg, res.Files, func(status publish.Status, message string, current, total int) {
		if status == publish.StatusUploading && total > 0 {
			fmt.Printf("\r%s (%d/%d)", message, current, total)
			if current == total {
				fmt.Println()
			}
			return
		}
		fmt.Println(message)
	})
	if !result.Success {
		return fmt.Errorf("push failed: %s", result.Error)
	}

	if store != nil {
		if err := store.SaveSettings(ctx, publish.Settings{
			ProjectID:  doc.ID,
			Owner:      pushCfg.Owner,
			Repo:       pushCfg.Repo,
			Branch:     pushCfg.Branch,
			BasePath:   pushCfg.BasePath,
			LastPushAt: time.Now().UTC(),
		}); err != nil {
			slog.Warn("could not save push settings", "error", err)
		}
	}

	fmt.Printf("Pushed %d files: %s\n", result.FilesUpdated, result.CommitURL)
	fmt.Printf("GitHub Pages (once enabled): %s\n", publish.PagesURL(pushCfg.Owner, pushCfg.Repo))
	return nil
}

// ensureDestination creates the repository and branch ahead of a push when
// the corresponding --create-* flags are set.
func ensureDestination(ctx context.Context, client *publish.GitHubClient, pushCfg publish.PushConfig) error {
	if CLI.Publish.CreateRepo {
		if _, err := client.GetRepo(ctx, pushCfg.Owner, pushCfg.Repo); err != nil {
			repo, err := client.CreateRepo(ctx, pushCfg.Repo, CLI.Publish.Private, "")
			if err != nil {
				return err
			}
			fmt.Printf("Created repository %s\n", repo.FullName)
		}
	}
	if CLI.Publish.CreateBranch {
		if _, err := client.GetBranch(ctx, pushCfg.Owner, pushCfg.Repo, pushCfg.Branch); err != nil {
			repo, err := client.GetRepo(ctx, pushCfg.Owner, pushCfg.Repo)
			if err != nil {
				return err
			}
			if err := client.CreateBranch(ctx, pushCfg.Owner, pushCfg.Repo, pushCfg.Branch, repo.DefaultBranch); err != nil {
				return err
			}
			fmt.Printf("Created branch %s from %s\n", pushCfg.Branch, repo.DefaultBranch)
		}
	}
	return nil
}

// newGitHubClient resolves a token and builds an API client; the returned
// cleanup closes the settings store when one was opened.
func newGitHubClient(ctx context.Context, cfg *config.Config) (*publish.GitHubClient, func(), error) {
	token, store, err := resolveToken(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {}
	if store != nil {
		cleanup = func() { _ = store.Close() }
	}
	client, err := publish.NewGitHubClient(token)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return client, cleanup, nil
}

func runRepos(ctx context.Context, cfg *config.Config) error {
	client, cleanup, err := newGitHubClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	repos, err := client.ListRepos(ctx, 1, 100)
	if err != nil {
		return err
	}
	for _, r := range repos {
		visibility := "public"
		if r.Private {
			visibility = "private"
		}
		fmt.Printf("%s\t%s\tdefault: %s\n", r.FullName, visibility, r.DefaultBranch)
	}
	return nil
}

func runBranches(ctx context.Context, cfg *config.Config) error {
	if cfg.Publish.Owner == "" || cfg.Publish.Repo == "" {
		return fmt.Errorf("repository incomplete: owner and repo are required")
	}
	client, cleanup, err := newGitHubClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	branches, err := client.ListBranches(ctx, cfg.Publish.Owner, cfg.Publish.Repo)
	if err != nil {
		return err
	}
	for _, b := range branches {
		marker := ""
		if b.Protected {
			marker = " (protected)"
		}
		fmt.Printf("%s\t%s%s\n", b.Name, b.Commit.SHA, marker)
	}
	return nil
}

// resolveToken prefers the configured token (GITHUB_TOKEN included) and
// falls back to the settings store.
func resolveToken(ctx context.Context, cfg *config.Config) (string, publish.Store, error) {
	store := openStore(cfg)
	if cfg.Publish.Token != "" {
		return cfg.Publish.Token, store, nil
	}
	if store != nil {
		token, err := store.Token(ctx)
		if err == nil && token != "" {
			return token, store, nil
		}
	}
	if store != nil {
		_ = store.Close()
	}
	return "", nil, fmt.Errorf("no GitHub token: set GITHUB_TOKEN or run `portfoliolab connect <token>`")
}

// openStore opens the settings database, returning nil when unavailable so
// publishing still works with only an environment token.
func openStore(cfg *config.Config) publish.Store {
	if err := os.MkdirAll(filepath.Dir(cfg.Publish.Store), 0o700); err != nil {
		slog.Debug("settings store unavailable", "path", cfg.Publish.Store, "error", err)
		return nil
	}
	store, err := publish.NewSQLiteStore(cfg.Publish.Store)
	if err != nil {
		slog.Debug("settings store unavailable", "path", cfg.Publish.Store, "error", err)
		return nil
	}
	return store
}

func runConnect(ctx context.Context, cfg *config.Config, token string) error {
	if !publish.IsValidPAT(token) {
		return fmt.Errorf("token does not look like a GitHub personal access token")
	}

	client, err := publish.NewGitHubClient(token)
	if err != nil {
		return err
	}
	user, err := client.GetUser(ctx)
	if err != nil {
		return fmt.Errorf("token rejected by GitHub: %w", err)
	}

	store := openStore(cfg)
	if store == nil {
		return fmt.Errorf("settings store unavailable at %s", cfg.Publish.Store)
	}
	defer store.Close()
	if err := store.SaveToken(ctx, token); err != nil {
		return err
	}

	fmt.Printf("Connected as %s.\n", user.Login)
	return nil
}

func runDisconnect(ctx context.Context, cfg *config.Config) error {
	store := openStore(cfg)
	if store == nil {
		return fmt.Errorf("settings store unavailable at %s", cfg.Publish.Store)
	}
	defer store.Close()
	if err := store.RemoveToken(ctx); err != nil {
		return err
	}
	fmt.Println("GitHub token and saved push settings removed.")
	return nil
}

func runReport(ctx context.Context, cfg *config.Config) error {
	doc, err := portfolio.Load(cfg.Document)
	if err != nil {
		return err
	}

	pipeline, cleanup := newPipeline(cfg)
	defer cleanup()
	res := pipeline.Run(ctx, doc, false)
	if err := export.WriteReport(res, CLI.Report.Output); err != nil {
		return err
	}
	fmt.Printf("Report written to %s\n", CLI.Report.Output)

	if CLI.Report.HTML {
		md, err := os.ReadFile(CLI.Report.Output)
		if err != nil {
			return err
		}
		html, err := export.ReportHTML(md)
		if err != nil {
			return err
		}
		htmlPath := CLI.Report.Output + ".html"
		if err := os.WriteFile(htmlPath, html, 0o644); err != nil {
			return fmt.Errorf("write HTML report: %w", err)
		}
		fmt.Printf("HTML report written to %s\n", htmlPath)
	}
	if !res.Success {
		return fmt.Errorf("export refused: %d validation errors", len(res.Errors))
	}
	return nil
}

func printValidationErrors(errs []validate.ValidationError) {
	for _, e := range errs {
		if e.Field != "" {
			fmt.Fprintf(os.Stderr, "  [%s] %s: %s\n", e.Kind, e.Field, e.Message)
		} else {
			fmt.Fprintf(os.Stderr, "  [%s] %s\n", e.Kind, e.Message)
		}
	}
}
