package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/nikbrunner/sites/internal/catalog"
	"github.com/nikbrunner/sites/internal/culler"
	"github.com/nikbrunner/sites/internal/exporter"
	"github.com/nikbrunner/sites/internal/importer"
	"github.com/nikbrunner/sites/internal/model"
	"github.com/nikbrunner/sites/internal/picker"
	"github.com/nikbrunner/sites/internal/search"
	"github.com/nikbrunner/sites/internal/storage"
	"github.com/nikbrunner/sites/internal/tui"
	"github.com/schollz/progressbar/v3"
)

func main() {
	config := loadConfig()

	if len(os.Args) >= 2 {
		logger := newLogger(os.Stderr, config)

		switch os.Args[1] {
		case "help", "--help", "-h":
			printHelp()
			return
		case "import":
			if len(os.Args) < 3 {
				fmt.Fprintf(os.Stderr, "Usage: sites import <file.html> [out.json]\n")
				os.Exit(1)
			}
			var outputPath string
			if len(os.Args) >= 4 {
				outputPath = os.Args[3]
			}
			runImport(os.Args[2], outputPath)
			return
		case "export":
			all := false
			var outputPath string
			for _, arg := range os.Args[2:] {
				if arg == "--all" {
					all = true
					continue
				}
				outputPath = arg
			}
			runExport(config, logger, outputPath, all)
			return
		case "check":
			runCheck(config, logger)
			return
		default:
			// Treat as search query (join all remaining args)
			query := strings.Join(os.Args[1:], " ")
			runQuickSearch(config, logger, query)
			return
		}
	}

	// No args - run full TUI
	runTUI(config)
}

func printHelp() {
	help := `sites - curated site directory

Usage:
  sites                       Open interactive TUI
  sites <query>               Quick search → select → open
  sites import <file> [out]   Convert bookmark HTML to catalog JSON
  sites export [--all] [path] Export favorites (or all sites) to HTML
  sites check                 Report dead or unreachable site URLs
  sites help                  Show this help

TUI Keybindings:
  Navigation:
    j/k         Move down/up
    gg/G        Jump to top/bottom
    Tab         Switch between sites and categories
    h/l         Previous/next category chip

  Filtering:
    /           Search name, description and tags
    Ctrl+u      Clear search
    Space       Toggle category (on chips)
    o           Cycle sort mode
    f           Toggle favorites only

  Actions:
    Enter       Open site in browser
    * / Space   Toggle favorite
    Y           Copy URL to clipboard
    t           Cycle theme

  Other:
    ?           Show help overlay
    q           Quit

Configuration:
  ~/.config/sites/config.yml (overridable with SITES_* env vars)
`
	fmt.Print(help)
}

// loadConfig reads the config file, exiting on invalid values. A .env file
// in the working directory may supply SITES_* overrides.
func loadConfig() *storage.Config {
	_ = godotenv.Load()

	configPath, err := storage.DefaultConfigFilePath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error getting config path: %v\n", err)
		os.Exit(1)
	}

	config, err := storage.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	return config
}

// newLogger builds a text logger at the configured level.
func newLogger(w io.Writer, config *storage.Config) *slog.Logger {
	level, err := storage.ParseLogLevel(config.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// openLogFile opens the TUI log file. The terminal belongs to the UI, so
// logs go to ~/.config/sites/sites.log, or nowhere if it can't be opened.
func openLogFile() io.WriteCloser {
	dir, err := storage.DefaultConfigDir()
	if err != nil {
		return nopCloser{io.Discard}
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nopCloser{io.Discard}
	}
	f, err := os.OpenFile(filepath.Join(dir, "sites.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nopCloser{io.Discard}
	}
	return f
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// runTUI runs the full interactive TUI.
func runTUI(config *storage.Config) {
	logFile := openLogFile()
	defer logFile.Close()
	logger := newLogger(logFile, config)

	kv, closeKV, err := storage.OpenKV(config, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening preferences: %v\n", err)
		os.Exit(1)
	}
	defer closeKV()

	app := tui.NewApp(tui.AppParams{
		Loader:      catalog.NewLoader(config.Catalog, catalog.WithLogger(logger)),
		Preferences: storage.NewPreferences(kv, logger),
		Logger:      logger,
		FaviconURL:  config.FaviconURL,
		DefaultSort: model.ParseSortMode(config.DefaultSort),
		Opener:      openURL,
		Clipboard:   clipboard.WriteAll,
	})
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		os.Exit(1)
	}
}

// loadCatalog loads the configured catalog for CLI commands, exiting when
// it is unavailable.
func loadCatalog(config *storage.Config, logger *slog.Logger) *model.Catalog {
	loader := catalog.NewLoader(config.Catalog, catalog.WithLogger(logger))
	result := loader.Load(context.Background())
	if !result.Available() {
		fmt.Fprintf(os.Stderr, "Error loading catalog %s: %v\n", loader.Source(), result.Err)
		os.Exit(1)
	}
	return result.Catalog
}

// runQuickSearch performs a fuzzy search and opens the selected site.
func runQuickSearch(config *storage.Config, logger *slog.Logger, query string) {
	c := loadCatalog(config, logger)

	results := search.FuzzySearchSites(c, query)

	if len(results) == 0 {
		fmt.Printf("No sites found for '%s'\n", query)
		os.Exit(0)
	}

	var selected *model.Site

	if len(results) == 1 {
		// Single result - select it directly
		selected = results[0].Site
		fmt.Printf("Opening: %s\n", selected.Name)
	} else {
		// Multiple results - show picker
		p := picker.New(results, query)
		program := tea.NewProgram(p)
		finalModel, err := program.Run()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running picker: %v\n", err)
			os.Exit(1)
		}

		finalPicker := finalModel.(picker.Picker)
		if finalPicker.Cancelled() {
			os.Exit(0)
		}
		selected = finalPicker.SelectedSite()
	}

	if selected == nil {
		os.Exit(0)
	}

	if err := openURL(selected.URL); err != nil {
		fmt.Fprintf(os.Stderr, "Error opening %s: %v\n", selected.URL, err)
		os.Exit(1)
	}
}

// openURL opens a URL in the default browser.
func openURL(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return fmt.Errorf("%w on %s", tui.ErrNoOpener, runtime.GOOS)
	}
	return cmd.Start()
}

// runImport converts a bookmark HTML file into catalog JSON.
func runImport(filePath, outputPath string) {
	file, err := os.Open(filePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	c, err := importer.ParseHTMLBookmarks(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing HTML: %v\n", err)
		os.Exit(1)
	}

	var out io.Writer = os.Stdout
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	if err := catalog.Encode(out, c); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing catalog: %v\n", err)
		os.Exit(1)
	}

	if outputPath != "" {
		fmt.Printf("Imported %d sites, %d categories to %s\n",
			len(c.Sites), len(c.Categories), outputPath)
	}
}

// runExport writes favorites, or the whole catalog with --all, as HTML.
func runExport(config *storage.Config, logger *slog.Logger, outputPath string, all bool) {
	// Determine output path
	if outputPath == "" {
		var err error
		outputPath, err = exporter.DefaultExportPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting default export path: %v\n", err)
			os.Exit(1)
		}
	}

	c := loadCatalog(config, logger)

	if !all {
		kv, closeKV, err := storage.OpenKV(config, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening preferences: %v\n", err)
			os.Exit(1)
		}
		prefs := storage.NewPreferences(kv, logger)
		c = exporter.Favorites(c, model.NewFavoriteSet(prefs.GetFavorites()...))
		if err := closeKV(); err != nil {
			logger.Warn("closing preferences", "error", err)
		}
	}

	// Generate HTML
	html := exporter.ExportHTML(c)

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating directory: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(outputPath, []byte(html), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Exported %d sites, %d categories to %s\n",
		len(c.Sites), len(c.Categories), outputPath)
}

// runCheck probes every catalog URL and lists the ones that failed.
func runCheck(config *storage.Config, logger *slog.Logger) {
	c := loadCatalog(config, logger)
	if len(c.Sites) == 0 {
		fmt.Println("No sites to check")
		return
	}

	bar := progressbar.NewOptions(len(c.Sites),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("Checking sites"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	checker := culler.NewChecker(
		culler.WithConcurrency(config.CheckConcurrency),
		culler.WithExcludeDomains(config.CheckExcludeDomains),
		culler.WithRateLimit(config.CheckRateLimit),
		culler.WithLogger(logger),
		culler.WithProgress(func(completed, total int) {
			_ = bar.Set(completed)
		}),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results := checker.Check(ctx, c.Sites)
	_ = bar.Finish()

	if errors.Is(ctx.Err(), context.Canceled) {
		fmt.Fprintf(os.Stderr, "Error: check interrupted\n")
		os.Exit(1)
	}

	dead := culler.Filter(results, culler.Dead)
	unreachable := culler.Filter(results, culler.Unreachable)

	printResults("Dead", dead)
	printResults("Unreachable", unreachable)

	fmt.Printf("%d healthy, %d dead, %d unreachable\n",
		len(results)-len(dead)-len(unreachable), len(dead), len(unreachable))
}

func printResults(label string, results []culler.Result) {
	if len(results) == 0 {
		return
	}
	fmt.Printf("%s (%d):\n", label, len(results))
	for _, r := range results {
		fmt.Printf("  %-30s %s  (%s)\n", r.Site.Name, r.Site.URL, r.Error)
	}
	fmt.Println()
}
