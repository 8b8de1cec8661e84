// keycheck — localization key reconciliation: finds translation keys that
// markup requires but locale catalogs do not define.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/minios-linux/keycheck/baseline"
	"github.com/minios-linux/keycheck/catalog"
	"github.com/minios-linux/keycheck/config"
	"github.com/minios-linux/keycheck/i18n"
	"github.com/minios-linux/keycheck/langmeta"
	"github.com/minios-linux/keycheck/markup"
	"github.com/minios-linux/keycheck/reconcile"
	"github.com/minios-linux/keycheck/render"
	"github.com/minios-linux/keycheck/source"
)

// Version information (set via -ldflags during build)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// errIncomplete is returned when a check finds missing keys.
var errIncomplete = errors.New("translation check failed")

// ---------------------------------------------------------------------------
// Logging
// ---------------------------------------------------------------------------

var logger = newLogger(os.Stderr, false, false)

func newLogger(w io.Writer, verbose, noColor bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:   level,
		NoColor: noColor,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && len(groups) == 0 {
				return slog.Attr{}
			}
			return a
		},
	}))
}

func logDebug(format string, args ...any) {
	logger.Debug(fmt.Sprintf(format, args...))
}

func logInfo(format string, args ...any) {
	logger.Info(fmt.Sprintf(format, args...))
}

func logSuccess(format string, args ...any) {
	logger.Info("✓ " + fmt.Sprintf(format, args...))
}

func logWarning(format string, args ...any) {
	logger.Warn(fmt.Sprintf(format, args...))
}

func logError(format string, args ...any) {
	logger.Error(fmt.Sprintf(format, args...))
}

// ---------------------------------------------------------------------------
// Global flags
// ---------------------------------------------------------------------------

var (
	rootDir string
	verbose bool
	noColor bool
)

func colorEnabled() bool {
	return !noColor && os.Getenv("NO_COLOR") == ""
}

// ---------------------------------------------------------------------------
// Root command
// ---------------------------------------------------------------------------

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "keycheck",
		Short: i18n.T("Find translation keys missing from locale catalogs"),
		Long: `keycheck — localization key reconciliation.

Collects the translation keys a markup document requires (data-translate and
data-translate-placeholder attributes), collects the keys each configured
locale defines in the translation catalog, and reports the gaps.

Settings come from .keycheck.yaml in the project root, KEYCHECK_* environment
variables (a .env file is honored) and command-line flags, in that order.

Commands:
  check     Reconcile markup keys against every locale catalog
  keys      List the keys required by the markup
  locales   Show the configured locales
  version   Show version information`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = newLogger(cmd.ErrOrStderr(), verbose, !colorEnabled())
			logDebug("interface language: %s", i18n.Lang())
		},
	}

	// Global persistent flags, inherited by all subcommands
	root.PersistentFlags().StringVar(&rootDir, "root", ".", "Project root directory")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show debug output")
	root.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	root.AddCommand(
		newCheckCmd(),
		newKeysCmd(),
		newLocalesCmd(),
		newVersionCmd(),
	)

	return root
}

func main() {
	i18n.Init("")
	if err := newRootCmd().Execute(); err != nil {
		logError("%v", err)
		os.Exit(1)
	}
}

// ---------------------------------------------------------------------------
// version (display version information)
// ---------------------------------------------------------------------------

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display version, commit hash, and build date.`,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "keycheck version %s\n", version)
			fmt.Fprintf(out, "  commit:    %s\n", commit)
			fmt.Fprintf(out, "  built:     %s\n", date)
		},
	}
}

// ---------------------------------------------------------------------------
// check (markup keys vs. locale catalogs)
// ---------------------------------------------------------------------------

type checkArgs struct {
	markup         string
	catalog        string
	catalogFormat  string
	locales        []string
	attributes     []string
	blockMode      string
	output         string
	baseline       string
	updateBaseline bool
	showUnused     bool
	noFail         bool
}

func (a checkArgs) overrides() config.File {
	return config.File{
		Markup:        a.markup,
		Catalog:       a.catalog,
		CatalogFormat: a.catalogFormat,
		Locales:       a.locales,
		Attributes:    a.attributes,
		BlockMode:     a.blockMode,
		Baseline:      a.baseline,
	}
}

func newCheckCmd() *cobra.Command {
	var a checkArgs

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Reconcile markup keys against every locale catalog",
		Long: `Extract the required keys from the markup, extract the keys each configured
locale defines in the catalog, and list the keys every locale is missing.

Exits with a non-zero status when any locale is incomplete. With a baseline,
only gaps that are not recorded in the baseline fail the check.

Block modes:
  balanced      A locale block ends at its matching closing brace (default)
  first-close   A locale block ends at the first closing brace after its label;
                keys after a nested block are not seen`,
		Example: `  keycheck check
  keycheck check --markup public/index.html --catalog public/script.js
  keycheck check --locale en --locale de --output json
  keycheck check --baseline keycheck.baseline.yaml --update-baseline`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.InOrStdin(), cmd.OutOrStdout(), a)
		},
	}

	f := cmd.Flags()
	addMarkupFlags(f, &a)
	f.StringVar(&a.catalog, "catalog", "", "Catalog file defining per-locale tables (- for stdin)")
	f.StringVar(&a.catalogFormat, "format", "", "Catalog format: script, yaml, toml (default: from extension)")
	f.StringSliceVarP(&a.locales, "locale", "l", nil, "Locale to check (repeatable or comma-separated)")
	f.StringVar(&a.blockMode, "block-mode", "", "Locale block extent: balanced, first-close")
	f.StringVarP(&a.output, "output", "o", "text", "Output format: text, json, yaml")
	f.StringVar(&a.baseline, "baseline", "", "Baseline file of accepted missing keys")
	f.BoolVar(&a.updateBaseline, "update-baseline", false, "Record current missing keys as the baseline")
	f.BoolVar(&a.showUnused, "show-unused", false, "Also list defined keys that no markup references")
	f.BoolVar(&a.noFail, "no-fail", false, "Exit successfully even when keys are missing")

	return cmd
}

func runCheck(stdin io.Reader, stdout io.Writer, a checkArgs) error {
	outFormat, err := render.ParseFormat(a.output)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(a.overrides())
	if err != nil {
		return err
	}

	report, err := audit(cfg, stdin)
	if err != nil {
		return err
	}

	for _, l := range report.Locales {
		if !l.Found {
			logWarning("%s", i18n.Tf("No %s block found in %s", l.Locale, displayPath(cfg, cfg.Catalog)))
		}
	}

	opts := render.Options{Color: colorEnabled(), ShowUnused: a.showUnused}
	if err := render.Write(stdout, report, outFormat, opts); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	useDefaultBaseline(cfg)
	if a.updateBaseline || cfg.Baseline != "" {
		return checkBaseline(cfg, report, a)
	}

	if report.Complete() {
		logSuccess("%s", i18n.T("All locales define every required key"))
		return nil
	}
	if a.noFail {
		return nil
	}
	return fmt.Errorf("%w: %s", errIncomplete,
		i18n.N("%d missing key", "%d missing keys", report.MissingTotal()))
}

// audit runs the extraction and reconciliation pipeline for cfg.
func audit(cfg *config.Config, stdin io.Reader) (*reconcile.Report, error) {
	markupText, files, err := source.LoadMarkup(cfg.Markup, stdin)
	if err != nil {
		return nil, fmt.Errorf("markup: %w", err)
	}
	if len(files) > 1 {
		logDebug("scanned %d markup files under %s", len(files), displayPath(cfg, cfg.Markup))
	}
	catalogText, err := source.Load(cfg.Catalog, stdin)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}

	required := markup.ExtractRequiredKeysWith(markupText, cfg.Attributes)
	logDebug("%d required keys in %s", required.Len(), displayPath(cfg, cfg.Markup))

	catalogs, err := catalog.Load(catalogText, cfg.Format, cfg.Mode, cfg.Locales)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", displayPath(cfg, cfg.Catalog), err)
	}
	for _, loc := range cfg.Locales {
		logDebug("%s: %d keys defined (%s, %s)", loc, catalogs[loc].Len(), cfg.Format, cfg.Mode)
	}

	return reconcile.Reconcile(required, cfg.Locales, catalogs), nil
}

// useDefaultBaseline points cfg at <root>/keycheck.baseline.yaml when no
// baseline is configured and that file exists.
func useDefaultBaseline(cfg *config.Config) {
	if cfg.Baseline != "" {
		return
	}
	path := filepath.Join(cfg.Root, baseline.FileName)
	if _, err := os.Stat(path); err == nil {
		logDebug("using %s", displayPath(cfg, path))
		cfg.Baseline = path
	}
}

func checkBaseline(cfg *config.Config, report *reconcile.Report, a checkArgs) error {
	path := cfg.Baseline
	if path == "" {
		path = filepath.Join(cfg.Root, baseline.FileName)
	}

	bl, err := baseline.Load(path)
	if err != nil {
		return err
	}

	if a.updateBaseline {
		bl.Record(report)
		if err := bl.Save(); err != nil {
			return err
		}
		logSuccess("%s", i18n.Tf("Baseline written to %s (%s)", displayPath(cfg, bl.Path()), bl.Summary()))
		return nil
	}

	for _, loc := range sortedKeys(bl.Resolved(report)) {
		logInfo("%s", i18n.Tf("%s: baseline entries now translated; run with --update-baseline to prune", loc))
	}

	gaps := bl.NewGaps(report)
	if len(gaps) == 0 {
		logSuccess("%s", i18n.T("No missing keys beyond the baseline"))
		return nil
	}

	total := 0
	for _, loc := range sortedKeys(gaps) {
		total += len(gaps[loc])
		logError("%s: %s", loc, strings.Join(gaps[loc], ", "))
	}
	if a.noFail {
		return nil
	}
	return fmt.Errorf("%w: %s", errIncomplete,
		i18n.N("%d missing key not in baseline", "%d missing keys not in baseline", total))
}

// ---------------------------------------------------------------------------
// keys (list required keys)
// ---------------------------------------------------------------------------

func newKeysCmd() *cobra.Command {
	var a checkArgs

	cmd := &cobra.Command{
		Use:   "keys",
		Short: "List the keys required by the markup",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(a.overrides())
			if err != nil {
				return err
			}
			text, _, err := source.LoadMarkup(cfg.Markup, cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("markup: %w", err)
			}
			keys := markup.ExtractRequiredKeysWith(text, cfg.Attributes)
			return render.Keys(cmd.OutOrStdout(), keys.Sorted())
		},
	}

	addMarkupFlags(cmd.Flags(), &a)

	return cmd
}

// ---------------------------------------------------------------------------
// locales (show configured locales)
// ---------------------------------------------------------------------------

func newLocalesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "locales",
		Short: "Show the configured locales",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(config.File{})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, loc := range cfg.Locales {
				m := langmeta.Resolve(loc)
				fmt.Fprintf(out, "%-4s %-10s %s\n", m.Flag, loc, m.Name)
			}
			return nil
		},
	}
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func addMarkupFlags(f *pflag.FlagSet, a *checkArgs) {
	f.StringVar(&a.markup, "markup", "", "Markup file or directory referencing translation keys (- for stdin)")
	f.StringSliceVar(&a.attributes, "attribute", nil, "Markup attribute holding a required key (repeatable)")
}

func loadConfig(flags config.File) (*config.Config, error) {
	cfg, err := config.Load(rootDir, flags)
	if err != nil {
		return nil, err
	}
	if cfg.FromFile {
		logDebug("using %s", filepath.Join(cfg.Root, config.FileName))
	}
	for _, w := range cfg.Warnings {
		logWarning("%s", w)
	}
	return cfg, nil
}

// displayPath shortens path relative to the project root when possible.
func displayPath(cfg *config.Config, path string) string {
	if path == source.Stdin {
		return "<stdin>"
	}
	if rel, err := filepath.Rel(cfg.Root, path); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return path
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
