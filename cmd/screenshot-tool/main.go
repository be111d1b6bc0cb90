// Command screenshot-tool runs the resident capture-and-annotate app, or
// delegates a one-off capture to an already running instance.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"

	"github.com/paulalicante/screenshot-tool/app"
	"github.com/paulalicante/screenshot-tool/capture"
	"github.com/paulalicante/screenshot-tool/config"
	"github.com/paulalicante/screenshot-tool/logutil"
	"github.com/paulalicante/screenshot-tool/trigger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "screenshot-tool",
		Short:         "Capture, annotate and save screenshots",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResident()
		},
	}
	cmd.AddCommand(newCaptureCmd())
	return cmd
}

func newCaptureCmd() *cobra.Command {
	var modeStr string
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:   "capture",
		Short: "Delegate a capture to the resident instance and print the saved path",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCapture(modeStr, timeout)
		},
	}
	cmd.Flags().StringVar(&modeStr, "mode", "region", "Capture mode: region, full or window")
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "How long to wait for the capture to finish")
	return cmd
}

func runResident() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logutil.Setup(cfg.EnableFileLogging)

	fy := fyneapp.NewWithID("com.paulalicante.screenshot-tool")
	loop, err := app.New(cfg, fy)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- loop.Run(ctx)
		fyne.Do(fy.Quit)
	}()

	// Blocks on the main goroutine until Quit.
	fy.Run()
	cancel()

	if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func runCapture(modeStr string, timeout time.Duration) error {
	mode, err := capture.ParseMode(modeStr)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	delegated, path, err := trigger.NewClient().TryCapture(ctx, mode)
	if errors.Is(err, trigger.ErrCaptureCancelled) {
		fmt.Fprintln(os.Stderr, "capture cancelled")
		return nil
	}
	if err != nil {
		return err
	}
	if !delegated {
		return errors.New("no resident instance found; run screenshot-tool first")
	}
	fmt.Println(path)
	return nil
}
