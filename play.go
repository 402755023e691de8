package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/Kurt-jhaive/valentine-puzzle/internal/config"
	"github.com/Kurt-jhaive/valentine-puzzle/internal/content"
	"github.com/Kurt-jhaive/valentine-puzzle/internal/journal"
	"github.com/Kurt-jhaive/valentine-puzzle/internal/session"
	"github.com/Kurt-jhaive/valentine-puzzle/internal/tui"
)

func playCmd() *cobra.Command {
	var mute bool
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play the puzzle in this terminal (mouse required)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if mute {
				cfg.Sound = false
			}
			return play(cmd.Context(), cfg)
		},
	}
	cmd.Flags().BoolVar(&mute, "mute", false, "Disable sound cues")
	return cmd
}

func play(ctx context.Context, cfg config.Config) error {
	// the screen owns the terminal, so logs go to LOG_FILE or nowhere
	var logOut io.Writer = io.Discard
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logTo(logOut)
	setLogLevel(cfg.LogLevel)

	c, err := content.Load(cfg.PuzzleFile)
	if err != nil {
		return fmt.Errorf("load puzzle: %w", err)
	}

	id := uuid.NewString()
	opts := []session.Option{
		session.WithRand(session.NewRand(cfg.JWTSecret, id)),
		session.WithCaptureRadius(tui.CaptureRadius),
	}
	if cfg.DatabasePath != "" {
		j, err := journal.Open(cfg.DatabasePath)
		if err != nil {
			return fmt.Errorf("open journal: %w", err)
		}
		defer j.Close()
		opts = append(opts, session.WithObserver(func(o session.Outcome) {
			if err := j.Record(context.Background(), o); err != nil {
				log.Warn().Err(err).Msg("record outcome")
			}
		}))
	}
	sess := session.New(id, c, opts...)

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	chime := tui.NewChimer(cfg.Sound)
	defer chime.Close()

	log.Info().Str("session", id).Msg("terminal session started")
	err = tui.New(screen, sess, c, tui.WithChimer(chime)).Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func hashPassword(pw string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
