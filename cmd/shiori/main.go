// Package main is the shiori CLI entry point.
package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/hyperjump/shiori/internal/cli"
	"github.com/hyperjump/shiori/internal/config"
	"github.com/hyperjump/shiori/internal/loader"
	"github.com/hyperjump/shiori/internal/models"
	"github.com/hyperjump/shiori/internal/search"
	"github.com/hyperjump/shiori/internal/server"
	"github.com/hyperjump/shiori/internal/storage"
	"github.com/hyperjump/shiori/internal/watcher"
	"github.com/hyperjump/shiori/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/shiori/config.yaml"

const searchPrompt = "Enter a book title to search: "

// app carries the process streams so commands can be exercised in tests.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func main() {
	a := &app{stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}
	os.Exit(a.run(os.Args[1:]))
}

func (a *app) run(args []string) int {
	if len(args) < 1 {
		a.printUsage()
		return 1
	}
	var err error
	switch args[0] {
	case "serve", "server":
		err = a.runServe(args[1:])
	case "search":
		err = a.runSearch(args[1:])
	case "import":
		err = a.runImport(args[1:])
	case "status":
		err = a.runStatus(args[1:])
	case "version", "--version", "-v":
		fmt.Fprintf(a.stdout, "shiori version %s\n", version)
	case "help", "--help", "-h":
		a.printUsage()
	default:
		fmt.Fprintf(a.stderr, "Unknown command: %s\n", args[0])
		a.printUsage()
		return 1
	}
	if errors.Is(err, pflag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(a.stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

// loadConfig loads config from path. When path is the default and does not
// exist, it tries config.yaml in the current directory and then falls back to
// built-in defaults, so the CLI works without any config file.
func loadConfig(path string) (*config.Config, string, error) {
	if path != defaultConfigPath {
		cfg, err := config.Load(path)
		return cfg, path, err
	}
	if _, err := os.Stat(path); err == nil {
		cfg, err := config.Load(path)
		return cfg, path, err
	}
	if cwd, err := os.Getwd(); err == nil {
		fallback := filepath.Join(cwd, "config.yaml")
		if _, statErr := os.Stat(fallback); statErr == nil {
			cfg, loadErr := config.Load(fallback)
			return cfg, fallback, loadErr
		}
	}
	return config.Default(), "", nil
}

// commonFlags are shared by commands that build an engine.
type commonFlags struct {
	configPath string
	catalog    string
	format     string
	debug      bool
}

func (c *commonFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&c.configPath, "config", "c", defaultConfigPath, "config file path")
	fs.StringVar(&c.catalog, "catalog", "", "catalog file (overrides catalog.path)")
	fs.StringVar(&c.format, "format", "", "catalog format: csv, tsv, xlsx or sqlite (default: from extension)")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging")
}

// setup loads config, applies flag overrides and builds a logger.
func (c *commonFlags) setup() (*config.Config, *zap.Logger, error) {
	cfg, _, err := loadConfig(c.configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if c.catalog != "" {
		cfg.Catalog.Path = c.catalog
	}
	if c.format != "" {
		cfg.Catalog.Format = c.format
	}
	cfg.Debug = cfg.Debug || c.debug
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	if !cfg.Debug {
		// keep CLI output clean; warnings about skipped rows still show
		logger = logger.WithOptions(zap.IncreaseLevel(zap.WarnLevel))
	}
	return cfg, logger, nil
}

func buildEngine(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*search.Engine, *search.BuildReport, error) {
	src, err := loader.Open(cfg.Catalog)
	if err != nil {
		return nil, nil, err
	}
	return search.Build(ctx, src, &cfg.Search, utils.Component(logger, "engine"))
}

func (a *app) runServe(args []string) error {
	var common commonFlags
	fs := pflag.NewFlagSet("serve", pflag.ContinueOnError)
	fs.SetOutput(a.stderr)
	common.register(fs)
	port := fs.IntP("port", "p", 0, "listen port (overrides server.port)")
	watch := fs.Bool("watch", false, "rebuild the engine when the catalog file changes")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, logger, err := common.setup()
	if err != nil {
		return err
	}
	defer logger.Sync()
	if *port != 0 {
		cfg.Server.Port = *port
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	engine, report, err := buildEngine(ctx, cfg, logger)
	if err != nil {
		return err
	}
	holder := search.NewHolder(engine, report)

	if cfg.Catalog.Watch || *watch {
		src, err := loader.Open(cfg.Catalog)
		if err != nil {
			return err
		}
		w := watcher.New([]string{cfg.Catalog.Path}, func(path string) {
			if err := holder.Reload(ctx, src, &cfg.Search, utils.Component(logger, "engine")); err != nil {
				logger.Error("catalog reload failed", zap.String("path", path), zap.Error(err))
			}
		}, watcher.WithLogger(utils.Component(logger, "watcher")))
		if err := w.Start(ctx); err != nil {
			return fmt.Errorf("failed to start watcher: %w", err)
		}
		defer w.Stop()
	}

	srv := server.NewServer(holder, cfg, utils.Component(logger, "server"))
	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	select {
	case <-sigChan:
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	}

	logger.Info("Shutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	return srv.Stop(shutdownCtx)
}

// buildSearchQuery joins all positional args with spaces so multi-word queries
// work the same with or without shell quoting.
func buildSearchQuery(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// readQuery prompts on w and reads one line from r.
func readQuery(r io.Reader, w io.Writer) (string, error) {
	fmt.Fprint(w, searchPrompt)
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (a *app) runSearch(args []string) error {
	var common commonFlags
	fs := pflag.NewFlagSet("search", pflag.ContinueOnError)
	fs.SetOutput(a.stderr)
	common.register(fs)
	limit := fs.IntP("limit", "n", 0, "number of results (default: search.default_limit)")
	maxRadius := fs.Int("max-radius", -1, "widest edit distance to try (default: search.max_radius)")
	mode := fs.String("mode", "", "match mode: tokens or titles (default: search.mode)")
	suggest := fs.Bool("suggest", true, "show \"did you mean\" suggestions")
	output := fs.StringP("output", "o", "text", "output format: text, compact or json")
	serverURL := fs.String("server", "", "query a running shiori server instead of loading the catalog")
	fs.Usage = func() {
		fmt.Fprintf(a.stderr, "Usage: shiori search [flags] [query...]\n\nWith no query arguments the query is read from standard input.\n\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	format, err := cli.ParseOutputFormat(*output)
	if err != nil {
		return err
	}

	queryStr := buildSearchQuery(fs.Args())
	if queryStr == "" {
		if queryStr, err = readQuery(a.stdin, a.stdout); err != nil {
			return err
		}
	}

	query := &models.SearchQuery{
		Query:   queryStr,
		Limit:   *limit,
		Mode:    models.MatchMode(*mode),
		Suggest: *suggest,
	}
	if *maxRadius >= 0 {
		query.MaxRadius = maxRadius
	}

	var response *models.SearchResponse
	if *serverURL != "" {
		response, err = searchViaHTTP(*serverURL, query)
	} else {
		response, err = a.searchLocal(&common, query)
	}
	if errors.Is(err, models.ErrEmptyQuery) {
		fmt.Fprintf(a.stdout, "No books found for the query: %s\n", queryStr)
		return nil
	}
	if err != nil {
		return err
	}
	return cli.WriteSearchResults(a.stdout, response, format)
}

func (a *app) searchLocal(common *commonFlags, query *models.SearchQuery) (*models.SearchResponse, error) {
	cfg, logger, err := common.setup()
	if err != nil {
		return nil, err
	}
	defer logger.Sync()

	ctx := context.Background()
	engine, _, err := buildEngine(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	return engine.Search(ctx, query)
}

func searchViaHTTP(serverURL string, query *models.SearchQuery) (*models.SearchResponse, error) {
	body, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}
	resp, err := http.Post(strings.TrimRight(serverURL, "/")+"/api/v1/search", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusBadRequest {
		return nil, models.ErrEmptyQuery
	}
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var response models.SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &response, nil
}

func (a *app) runImport(args []string) error {
	var common commonFlags
	fs := pflag.NewFlagSet("import", pflag.ContinueOnError)
	fs.SetOutput(a.stderr)
	common.register(fs)
	dbPath := fs.String("db", "", "SQLite database to write (default: storage.database_path)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		common.catalog = fs.Arg(0)
	}

	cfg, logger, err := common.setup()
	if err != nil {
		return err
	}
	defer logger.Sync()
	if *dbPath != "" {
		cfg.Storage.DatabasePath = *dbPath
	}

	src, err := loader.Open(cfg.Catalog)
	if err != nil {
		return err
	}
	ctx := context.Background()
	docs, rejected, err := src.Load(ctx)
	if err != nil {
		return err
	}
	for _, rerr := range rejected {
		logger.Warn("skipping catalog row", zap.String("source", src.Name()), zap.Error(rerr))
	}

	store, err := storage.NewSQLiteStorage(cfg.Storage.DatabasePath)
	if err != nil {
		return err
	}
	defer store.Close()
	n, err := store.UpsertDocuments(ctx, docs)
	if err != nil {
		return err
	}
	total, err := store.CountDocuments(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Imported %d book(s) from %s into %s (%d skipped, %d total)\n",
		n, src.Name(), cfg.Storage.DatabasePath, len(rejected), total)
	return nil
}

func (a *app) runStatus(args []string) error {
	var common commonFlags
	fs := pflag.NewFlagSet("status", pflag.ContinueOnError)
	fs.SetOutput(a.stderr)
	common.register(fs)
	serverURL := fs.String("server", "", "report the status of a running server")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var status interface{}
	if *serverURL != "" {
		resp, err := http.Get(strings.TrimRight(*serverURL, "/") + "/api/v1/status")
		if err != nil {
			return fmt.Errorf("request failed: %w", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("server returned %d", resp.StatusCode)
		}
		if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	} else {
		cfg, logger, err := common.setup()
		if err != nil {
			return err
		}
		defer logger.Sync()
		engine, report, err := buildEngine(context.Background(), cfg, logger)
		if err != nil {
			return err
		}
		status = map[string]interface{}{"engine": engine.Stats(), "build": report}
	}
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(status)
}

func (a *app) printUsage() {
	fmt.Fprintln(a.stdout, `shiori - fuzzy book catalog search

Usage:
  shiori search [flags] [query...]   Search the catalog (reads the query from stdin when none is given)
  shiori serve [flags]               Start the HTTP API
  shiori import [flags] <file>       Copy a CSV/TSV/XLSX catalog into SQLite
  shiori status [flags]              Show engine statistics
  shiori version                     Show version
  shiori help                        Show this help

Common Flags:
  -c, --config string    Config file path (default: /usr/local/etc/shiori/config.yaml)
      --catalog string   Catalog file (overrides catalog.path)
      --format string    Catalog format: csv, tsv, xlsx or sqlite
      --debug            Enable debug logging

Search Flags:
  -n, --limit int        Number of results (default from config, 5)
      --max-radius int   Widest edit distance to try (default from config, 5)
      --mode string      tokens or titles
      --suggest          Show "did you mean" suggestions (default: true)
  -o, --output string    text, compact or json (default: text)
      --server string    Query a running server instead of loading the catalog

Serve Flags:
  -p, --port int         Listen port (overrides server.port)
      --watch            Rebuild the engine when the catalog changes

Examples:
  shiori search "Clean Code"
  shiori search --catalog books.csv --output compact pragmatic programer
  shiori import --db catalog.db books.xlsx
  shiori serve --catalog catalog.db --watch`)
}
