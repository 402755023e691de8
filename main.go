package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Kurt-jhaive/valentine-puzzle/internal/config"
	"github.com/Kurt-jhaive/valentine-puzzle/internal/content"
	"github.com/Kurt-jhaive/valentine-puzzle/internal/httpserver"
	"github.com/Kurt-jhaive/valentine-puzzle/internal/journal"
	"github.com/Kurt-jhaive/valentine-puzzle/internal/store"
)

func main() {
	_ = godotenv.Load()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "valentine",
		Short: "A word-wheel puzzle that ends with a question",
		Long: `Players trace letters on a wheel to find the hidden words. Once every
word is found (or they give up), a smaller wheel asks them to spell the answer.

Run "serve" for the HTTP backend of the browser game, or "play" to play in the terminal.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), config.Load())
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Serve the puzzle over HTTP (default)",
			RunE: func(cmd *cobra.Command, args []string) error {
				return serve(cmd.Context(), config.Load())
			},
		},
		playCmd(),
		hashPasswordCmd(),
	)
	return cmd
}

func serve(ctx context.Context, cfg config.Config) error {
	setLogLevel(cfg.LogLevel)

	c, err := content.Load(cfg.PuzzleFile)
	if err != nil {
		return fmt.Errorf("load puzzle: %w", err)
	}

	var opts []httpserver.Option
	if cfg.DatabasePath != "" {
		j, err := journal.Open(cfg.DatabasePath)
		if err != nil {
			return fmt.Errorf("open journal: %w", err)
		}
		defer j.Close()
		opts = append(opts, httpserver.WithJournal(j))
		log.Info().Str("path", cfg.DatabasePath).Msg("outcome journal enabled")
	}

	mem := store.NewMemoryStore()
	go store.Janitor(ctx, mem, cfg.SweepEvery, cfg.SessionTTL)

	srv := httpserver.New(cfg, mem, c, opts...)
	log.Info().Str("port", cfg.Port).Int("words", len(c.Words)).Msg("starting valentine server")
	if err := srv.Start(ctx, ":"+cfg.Port); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	return nil
}

func hashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password [password]",
		Short: "Print a bcrypt hash for ADMIN_PASSWORD_HASH",
		Long:  "Hashes the argument, or the first line of stdin when no argument is given.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pw := ""
			if len(args) == 1 {
				pw = args[0]
			} else {
				line, err := readLine(cmd.InOrStdin())
				if err != nil {
					return err
				}
				pw = line
			}
			if pw == "" {
				return errors.New("empty password")
			}
			h, err := hashPassword(pw)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), h)
			return nil
		},
	}
}

// setLogLevel applies LOG_LEVEL to the global logger, keeping the default on a bad value.
func setLogLevel(level string) {
	if lvl, err := zerolog.ParseLevel(level); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
}

// logTo points the global logger at w.
func logTo(w io.Writer) {
	log.Logger = zerolog.New(w).With().Timestamp().Logger()
}
