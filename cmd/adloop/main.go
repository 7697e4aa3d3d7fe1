// Package main is the CLI entry point for adloop.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/eliteGoblin/adloop/internal/daemon"
	"github.com/eliteGoblin/adloop/internal/domain"
	"github.com/eliteGoblin/adloop/internal/infra"
	"github.com/eliteGoblin/adloop/internal/policy"
	"github.com/eliteGoblin/adloop/internal/usecase"
)

var (
	// Version info (set via ldflags)
	Version   = "0.1.0"
	Commit    = "dev"
	BuildTime = "unknown"
)

const (
	defaultDevice = "ZY22L7ZMHX"
	envPrefix     = "ADLOOP"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "adloop",
	Short: "Trigger and dismiss game ads over adb",
	Long: `adloop drives a mobile game on an adb-connected Android device through
repeated ad cycles: it opens the pause menu, leaves the level to trigger an
interstitial, then clears whatever took over the screen with an escalating
set of recovery tactics.

Every flag can also be set through the environment, e.g. ADLOOP_DEVICE.`,
	Version:      Version,
	SilenceUsage: true,
	RunE:         runLoop,
}

var gamesCmd = &cobra.Command{
	Use:   "games",
	Short: "List supported game profiles",
	Long:  `Shows every registered game profile with its package and tap layout.`,
	RunE:  runGames,
}

var signaturesCmd = &cobra.Command{
	Use:   "signatures",
	Short: "List ad signatures",
	Long:  `Shows the keywords, packages and activities used to recognise ads and ad hosts.`,
	Run:   runSignatures,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Prints version, commit, and build time. Use --json for machine-readable output.`,
	Run:   runVersion,
}

var jsonOutput bool

// newSleeper builds the sleeper used for every wait.
var newSleeper = func() domain.Sleeper { return infra.NewClockSleeper() }

// flagAliases maps alternate flag spellings to their canonical names.
var flagAliases = map[string]string{
	"simulate":          "dry-run",
	"diagnostic-cycles": "log-dumpsys",
}

func init() {
	flags := rootCmd.Flags()
	flags.Bool("dry-run", false, "Print adb commands instead of running them")
	flags.Int("log-dumpsys", 0, "Print N foreground samples and exit without running cycles")
	flags.String("device", defaultDevice, "adb device serial")
	flags.String("game", policy.DefaultGameID, "Game profile ID (see 'adloop games')")
	flags.String("adb", "adb", "Path to the adb executable")
	flags.Int64("seed", 0, "Random seed for taps and waits (0 = time based)")
	flags.String("log-level", "info", "Log level (debug, info, warn, error)")
	flags.SetNormalizeFunc(normalizeFlag)

	_ = viper.BindPFlags(flags)
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	versionCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output version info as JSON")

	rootCmd.AddCommand(gamesCmd)
	rootCmd.AddCommand(signaturesCmd)
	rootCmd.AddCommand(versionCmd)
}

func normalizeFlag(f *pflag.FlagSet, name string) pflag.NormalizedName {
	if canonical, ok := flagAliases[name]; ok {
		name = canonical
	}
	return pflag.NormalizedName(name)
}

// runConfig is the resolved flag and environment configuration.
type runConfig struct {
	DryRun           bool
	DiagnosticCycles int
	Device           string
	Game             string
	ADBPath          string
	Seed             int64
	LogLevel         string
}

func loadConfig() (runConfig, error) {
	cfg := runConfig{
		DryRun:           viper.GetBool("dry-run"),
		DiagnosticCycles: viper.GetInt("log-dumpsys"),
		Device:           viper.GetString("device"),
		Game:             viper.GetString("game"),
		ADBPath:          viper.GetString("adb"),
		Seed:             viper.GetInt64("seed"),
		LogLevel:         viper.GetString("log-level"),
	}
	if cfg.DiagnosticCycles < 0 {
		return cfg, fmt.Errorf("--log-dumpsys must be >= 0, got %d", cfg.DiagnosticCycles)
	}
	return cfg, nil
}

func runLoop(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	game, err := policy.NewRegistry().Game(cfg.Game)
	if err != nil {
		return err
	}

	runID := uuid.NewString()
	logger, err := createLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger = logger.With(zap.String("run_id", runID))
	defer func() { _ = logger.Sync() }()

	out := cmd.OutOrStdout()
	mode := infra.ExecModeFor(cfg.DryRun)

	// Initialize infrastructure
	gw := infra.NewADBGateway(cfg.ADBPath, cfg.Device, mode, logger, infra.WithOutput(out))
	device := infra.NewADBDevice(gw)
	inspector := infra.NewForegroundInspector(infra.DefaultDumpSources(gw)...)
	server := infra.NewADBServerManager(gw, logger)
	rng := infra.NewRandom(cfg.Seed)
	sleeper := newSleeper()

	// Set up graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			logger.Info("received shutdown signal")
			cancel()
		case <-ctx.Done():
		}
	}()

	classifier := policy.NewClassifier(game.Package, policy.DefaultSignatures())
	detector := usecase.NewDetector(inspector, classifier)
	driver := usecase.NewDriver(usecase.DefaultDriverConfig(), game.Layout, device, rng, sleeper, logger)
	ladder := usecase.NewRecoveryLadder(usecase.DefaultLadderConfig(), game, device, driver, detector, rng, sleeper, logger)
	watcherConfig := daemon.DefaultWatcherConfig()

	daemon.PrintBanner(out, daemon.BannerInfo{
		Version: Version,
		RunID:   runID,
		Device:  cfg.Device,
		Game:    game.Name,
		Package: game.Package,
		Button:  string(watcherConfig.StartMode),
		Mode:    mode.String(),
		Tactics: ladder.Tactics(),
	})

	if cfg.DiagnosticCycles > 0 {
		if _, err := server.EnsureRunning(ctx); err != nil {
			logger.Warn("adb server check failed", zap.Error(err))
		}
		taken := daemon.NewSampler(inspector, sleeper, out).Sample(ctx, cfg.DiagnosticCycles)
		logger.Info("diagnostic sampling finished", zap.Int("samples", taken))
		return nil
	}

	runner := usecase.NewCycleRunner(usecase.DefaultCycleConfig(), game, driver, detector, ladder, sleeper, logger)
	watcher := daemon.NewWatcher(watcherConfig, game, device, driver, detector, runner, server, rng, sleeper, logger)

	if err := watcher.Run(ctx); err != nil {
		// Crashes are reported, not propagated; the run ends normally
		logger.Error("ad loop stopped", zap.Error(err))
	}
	logger.Info("ad loop finished",
		zap.Int("cycles", watcher.State().Cycle),
		zap.Int("failures", watcher.Failures()))
	return nil
}

func createLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	config := zap.NewDevelopmentConfig()
	config.Level = zap.NewAtomicLevelAt(lvl)
	config.EncoderConfig.TimeKey = "time"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}

func runGames(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	registry := policy.NewRegistry()

	fmt.Fprintln(out, "\n=== Game Profiles ===")
	for _, id := range registry.List() {
		game, err := registry.Game(id)
		if err != nil {
			return err
		}
		writeGame(out, game)
	}
	fmt.Fprintln(out, "\n=====================")
	return nil
}

func writeGame(out io.Writer, game domain.Game) {
	l := game.Layout
	fmt.Fprintf(out, "\n[%s] %s\n", game.ID, game.Name)
	fmt.Fprintf(out, "  Package: %s\n", game.Package)
	fmt.Fprintf(out, "  Level:   (%d, %d)\n", l.LevelButton.X, l.LevelButton.Y)
	fmt.Fprintf(out, "  Pause:   (%d, %d)\n", l.PauseButton.X, l.PauseButton.Y)
	fmt.Fprintf(out, "  Home:    (%d, %d)\n", l.HomeButton.X, l.HomeButton.Y)
	fmt.Fprintf(out, "  Retry:   (%d, %d)\n", l.RetryButton.X, l.RetryButton.Y)
	fmt.Fprintln(out, "  Close buttons:")
	for _, c := range l.CloseButtons {
		fmt.Fprintf(out, "    - (%d, %d)\n", c.X, c.Y)
	}
}

func runSignatures(cmd *cobra.Command, args []string) {
	out := cmd.OutOrStdout()
	sig := policy.DefaultSignatures().Sorted()

	fmt.Fprintln(out, "\n=== Ad Signatures ===")
	section := func(title string, items []string) {
		fmt.Fprintf(out, "\n%s:\n", title)
		for _, item := range items {
			fmt.Fprintf(out, "  - %s\n", item)
		}
	}
	section("Ad keywords", sig.AdKeywords)
	section("Ad SDK packages", sig.AdPackages)
	section("Dangerous activities", sig.DangerousActivities)
	section("Dangerous packages", sig.DangerousPackages)
	section("Browsers", sig.Browsers)
	fmt.Fprintln(out, "\n=====================")
}

func runVersion(cmd *cobra.Command, args []string) {
	out := cmd.OutOrStdout()
	if jsonOutput {
		fmt.Fprintf(out, `{"version":"%s","commit":"%s","build_time":"%s"}`+"\n",
			Version, Commit, BuildTime)
	} else {
		fmt.Fprintf(out, "adloop %s (commit: %s, built: %s)\n",
			Version, Commit, BuildTime)
	}
}
