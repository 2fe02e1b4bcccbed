package cli

import (
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/chriserin/bspec/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-check feature files whenever they change",
	RunE: func(cmd *cobra.Command, args []string) error {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		return RunWatch(cmd.OutOrStdout(), stop)
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

// RunWatch re-checks changed feature files until something arrives on
// stop.
func RunWatch(w io.Writer, stop <-chan os.Signal) error {
	cfg, err := loadConfig(true)
	if err != nil {
		return err
	}

	log := zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}).
		With().Timestamp().Str("component", "watch").Logger()

	watcher, err := watch.New(cfg.FeaturesDir, func(changed, removed []string) {
		for _, path := range removed {
			log.Info().Str("path", path).Msg("removed")
		}
		if len(changed) == 0 {
			return
		}
		if err := RunCheck(w, changed); err != nil {
			log.Warn().Err(err).Msg("check failed")
		}
	}, log)
	if err != nil {
		return err
	}
	if err := watcher.Start(); err != nil {
		watcher.Close()
		return err
	}
	defer watcher.Close()

	<-stop
	log.Info().Msg("stopping")
	return nil
}
