package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcoot/fantasy-keepers/internal/config"
	"github.com/mcoot/fantasy-keepers/internal/factory"
)

// AppBuilder wires the application for a run
type AppBuilder func(settings *config.Config, logger *slog.Logger) (*factory.App, error)

func buildApp(settings *config.Config, logger *slog.Logger) (*factory.App, error) {
	return factory.New(factory.FromSettings(settings, logger))
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(DefaultConfig(), buildApp)
}

func newRootCmd(cfg *Config, build AppBuilder) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "keepers <team> <password> [api=<startVersion>]",
		Short: "Decrypt a team's saved keepers",
		Long: `keepers decrypts the keeper list a team saved with its password.

With api=<startVersion> the keepers are also submitted to the draft tracker,
one at a time, with expected versions counting up from startVersion.

Flags go before the team name. Everything from the team name on is taken
literally, so a password may start with "-".`,
		Args:         cobra.RangeArgs(2, 3),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.loadErr != nil {
				return cfg.loadErr
			}

			team, password := args[0], args[1]
			startVersion, replay, err := parseAPIArg(args[2:])
			if err != nil {
				return err
			}

			if err := cfg.Settings.Validate(); err != nil {
				return err
			}

			app, err := build(cfg.Settings, newLogger(cmd, cfg.Verbose))
			if err != nil {
				return err
			}
			defer app.Close()

			ctx := cmd.Context()
			confirmation, err := app.KeepersController.Decrypt(ctx, team, password)
			if err != nil {
				return err
			}

			result := DecryptResult{Team: confirmation.Team, Keepers: confirmation.Keepers}
			if replay {
				replayResult, err := app.ReplayService.Run(ctx, team, confirmation.Keepers, startVersion)
				if err != nil {
					return fmt.Errorf("submitting to draft tracker: %w", err)
				}
				result.Replay = ReplayResultFrom(replayResult)
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}

	s := cfg.Settings
	flags := rootCmd.Flags()
	flags.StringVar(&s.StorageType, "storage", s.StorageType, "Storage backend: file, memory, redis (env: STORAGE_TYPE)")
	flags.StringVar(&s.EncryptedDir, "encrypted-dir", s.EncryptedDir, "Directory of encrypted keeper files (env: ENCRYPTED_DIR)")
	flags.StringVar(&s.LogFile, "log-file", s.LogFile, "Password log file (env: LOG_FILE)")
	flags.StringVar(&s.RedisURL, "redis-url", s.RedisURL, "Redis URL for the redis backend (env: REDIS_URL)")
	flags.StringVar(&s.RosterDir, "roster-dir", s.RosterDir, "Directory holding ff<season>rosters.csv (env: ROSTER_DIR)")
	flags.IntVar(&s.Season, "season", s.Season, "Roster season (env: CURRENT_YEAR)")
	flags.StringVar(&s.DraftReadURL, "read-url", s.DraftReadURL, "Draft tracker read API base URL (env: DRAFT_API_READ_URL)")
	flags.StringVar(&s.DraftWriteURL, "write-url", s.DraftWriteURL, "Draft tracker write API base URL (env: DRAFT_API_WRITE_URL)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")
	// stop flag parsing at the first positional so passwords like "-secret" survive
	flags.SetInterspersed(false)

	return rootCmd
}

// parseAPIArg reads the optional api=<startVersion> argument
func parseAPIArg(rest []string) (startVersion int, replay bool, err error) {
	if len(rest) == 0 {
		return 0, false, nil
	}
	value, ok := strings.CutPrefix(rest[0], "api=")
	if !ok {
		return 0, false, fmt.Errorf("unexpected argument %q, want api=<startVersion>", rest[0])
	}
	startVersion, err = strconv.Atoi(value)
	if err != nil {
		return 0, false, fmt.Errorf("api parameter must be a number (e.g., api=1)")
	}
	return startVersion, true, nil
}

// newLogger logs to stderr; only errors unless verbose
func newLogger(cmd *cobra.Command, verbose bool) *slog.Logger {
	level := slog.LevelError
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
