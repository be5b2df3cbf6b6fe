// Package review runs a question review session in the terminal.
package review

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/masterly-ai/masterly/internal/application/review/session"
	"github.com/masterly-ai/masterly/internal/infrastructure/config"
	"github.com/masterly-ai/masterly/internal/infrastructure/database"
	"github.com/masterly-ai/masterly/internal/infrastructure/rpc"
	sharedConfig "github.com/masterly-ai/masterly/internal/shared/config"
	"github.com/masterly-ai/masterly/internal/shared/logger"
)

var (
	env        string
	configPath string
	userID     string
	materialID string
	limit      int
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Review questions in the terminal",
		Long: `Run a review session in the terminal. Without --material the due questions
are played and answers update the review schedule. With --material the
material's questions are practiced and the schedule is left untouched.`,
		RunE: run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.Flags().StringVarP(&userID, "user", "u", "", "User ID (required)")
	cmd.Flags().StringVarP(&materialID, "material", "m", "", "Practice the questions of one material")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum number of due questions (default: review.batch_size)")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if _, err := uuid.Parse(userID); err != nil {
		return fmt.Errorf("invalid user id %q: %w", userID, err)
	}
	if materialID != "" {
		if _, err := uuid.Parse(materialID); err != nil {
			return fmt.Errorf("invalid material id %q: %w", materialID, err)
		}
	}

	cfg, err := config.Load(env, configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Keep the terminal for the session; only problems are logged.
	cfg.Logger.Level = "warn"
	cfg.Logger.OutputPath = "stderr"
	if err := logger.Init(&cfg.Logger, cfg.Server.Mode); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	log := logger.NewLogger()
	store := rpc.NewClient(database.Get(), log)

	s := session.New(userID, newFlow(cfg.Review), store, log.Named("review"))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return newRunner(terminalInput(), cmd.OutOrStdout()).Run(ctx, s)
}

func newFlow(cfg sharedConfig.ReviewConfig) session.Flow {
	if materialID != "" {
		return session.PracticeFlow(userID, materialID, millis(cfg.PracticeAdvanceDelayMs))
	}
	n := limit
	if n <= 0 {
		n = cfg.BatchSize
	}
	return session.PlayFlow(userID, n, millis(cfg.PlayAdvanceDelayMs))
}

// terminalInput reads single keys in raw mode when stdin is a terminal.
func terminalInput() input {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		return newRawInput(fd, os.Stdin)
	}
	return newLineInput(os.Stdin)
}

func millis(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
