// Package main provides the CLI entrypoint for typetest.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/verte-zerg/typetest/internal/config"
	"github.com/verte-zerg/typetest/internal/engine"
	"github.com/verte-zerg/typetest/internal/logging"
	"github.com/verte-zerg/typetest/internal/model"
	"github.com/verte-zerg/typetest/internal/stats"
	"github.com/verte-zerg/typetest/internal/statsui"
	"github.com/verte-zerg/typetest/internal/store"
	"github.com/verte-zerg/typetest/internal/tui"
	"github.com/verte-zerg/typetest/internal/wordlist"
)

const (
	defaultLogLevel      = "info"
	defaultHistoryWindow = 10
)

var (
	sessionMode       string
	sessionText       string
	sessionDifficulty string
	sessionTime       int
	sessionWords      int
	sessionBackspace  string
	sessionLineTokens int
	sessionWordlists  string
	sessionSeed       int64
	logLevel          string

	historyMode   string
	historySince  string
	historyLast   int
	historyWindow int
	historyPlain  bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	defaults := config.Default()
	rootCmd := &cobra.Command{
		Use:           "typetest",
		Short:         "Terminal typing speed test",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runSessionCmd,
	}

	rootCmd.Flags().StringVar(&sessionMode, "mode", string(defaults.Mode), "session mode (time, words)")
	rootCmd.Flags().StringVar(&sessionText, "text", string(defaults.TextType), "text type (words, punctuation, numbers, mixed)")
	rootCmd.Flags().StringVar(&sessionDifficulty, "difficulty", string(defaults.Difficulty), "difficulty (easy, medium, hard)")
	rootCmd.Flags().IntVar(&sessionTime, "time", defaults.Duration, fmt.Sprintf("time mode duration in seconds %v", config.DurationOptions))
	rootCmd.Flags().IntVar(&sessionWords, "words", defaults.WordCount, fmt.Sprintf("word mode word count %v", config.WordCountOptions))
	rootCmd.Flags().StringVar(&sessionBackspace, "backspace", string(defaults.Backspace), "backspace policy (undo, visual)")
	rootCmd.Flags().IntVar(&sessionLineTokens, "line-tokens", defaults.LineTokens, "tokens per time-mode line")
	rootCmd.Flags().StringVar(&sessionWordlists, "wordlists", "", "directory with easy.txt/medium.txt/hard.txt overrides")
	rootCmd.Flags().Int64Var(&sessionSeed, "seed", 0, "random seed for reproducible text (0 = random)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", defaultLogLevel, "log level (debug, info, warn, error)")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newHistoryCmd())

	return rootCmd
}

func runSessionCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "mode", &sessionMode, fileCfg.Session.Mode)
	applyStringConfig(cmd, "text", &sessionText, fileCfg.Session.Text)
	applyStringConfig(cmd, "difficulty", &sessionDifficulty, fileCfg.Session.Difficulty)
	applyIntConfig(cmd, "time", &sessionTime, fileCfg.Session.Time)
	applyIntConfig(cmd, "words", &sessionWords, fileCfg.Session.Words)
	applyStringConfig(cmd, "backspace", &sessionBackspace, fileCfg.Session.Backspace)
	applyIntConfig(cmd, "line-tokens", &sessionLineTokens, fileCfg.Session.LineTokens)
	applyStringConfig(cmd, "wordlists", &sessionWordlists, fileCfg.Session.Wordlists)
	applyStringConfig(cmd, "log-level", &logLevel, fileCfg.Log.Level)

	cfg := model.Config{
		Mode:       model.Mode(strings.ToLower(sessionMode)),
		TextType:   model.TextType(strings.ToLower(sessionText)),
		Difficulty: model.Difficulty(strings.ToLower(sessionDifficulty)),
		Duration:   sessionTime,
		WordCount:  sessionWords,
		Backspace:  model.BackspacePolicy(strings.ToLower(sessionBackspace)),
		LineTokens: sessionLineTokens,
	}
	if err := engine.Validate(cfg); err != nil {
		return err
	}
	if err := config.ValidateOptions(cfg); err != nil {
		return err
	}

	wordlistDir := sessionWordlists
	if wordlistDir == "" {
		wordlistDir = config.DefaultWordListDir()
	}
	pools, err := wordlist.LoadPools(wordlistDir)
	if err != nil {
		return fmt.Errorf("failed to load word lists: %w", err)
	}

	logger, err := logging.New(config.DefaultLogDir(), logLevel)
	if err != nil {
		return err
	}
	defer syncLogger(logger)

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logger.Error("failed to close db", zap.Error(cerr))
		}
	}()

	m, err := tui.NewModel(tui.Params{
		Config: cfg,
		Store:  st,
		Logger: logger,
		EngineOptions: []engine.Option{
			engine.WithPools(pools),
			engine.WithSeed(sessionSeed),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show result history",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().StringVar(&historyMode, "mode", "", "mode filter (time, words)")
	cmd.Flags().StringVar(&historySince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&historyLast, "last", 0, "limit to last N results")
	cmd.Flags().IntVar(&historyWindow, "window", defaultHistoryWindow, "moving average window")
	cmd.Flags().BoolVar(&historyPlain, "plain", false, "print a report instead of the interactive view")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	filter, window, err := statsui.ParseFilter(historyMode, historySince, fmt.Sprint(historyLast), fmt.Sprint(historyWindow))
	if err != nil {
		return err
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	if historyPlain || !term.IsTerminal(int(os.Stdout.Fd())) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		report, err := stats.BuildReport(ctx, st, filter, window)
		if err != nil {
			return fmt.Errorf("failed to build report: %w", err)
		}
		return stats.RenderReport(cmd.OutOrStdout(), report)
	}

	program := tea.NewProgram(statsui.NewModel(st, filter, window), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run history TUI: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	d := config.Default()
	return fmt.Sprintf(`# typetest configuration
# Uncomment a value to enable it. CLI flags override config values.

[session]
# mode = %q             # time or words
# text = %q             # words, punctuation, numbers or mixed
# difficulty = %q       # easy, medium or hard
# time = %d                 # Seconds per time-mode session %v
# words = %d                # Words per word-mode session %v
# backspace = %q        # undo (backspace restores counters) or visual
# line-tokens = %d           # Tokens per time-mode line
# wordlists = %q   # Directory with easy.txt/medium.txt/hard.txt overrides

[log]
# level = %q            # debug, info, warn or error
`,
		d.Mode,
		d.TextType,
		d.Difficulty,
		d.Duration, config.DurationOptions,
		d.WordCount, config.WordCountOptions,
		d.Backspace,
		d.LineTokens,
		config.DefaultWordListDir(),
		defaultLogLevel,
	)
}

func syncLogger(logger *zap.Logger) {
	if err := logger.Sync(); err != nil {
		// Best-effort flush on exit.
		_ = err
	}
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
