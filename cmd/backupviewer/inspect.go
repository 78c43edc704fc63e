package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/backupviewer/internal/config"
	"github.com/MikeSquared-Agency/backupviewer/internal/export"
	"github.com/MikeSquared-Agency/backupviewer/internal/render"
)

var inspectTZ string

var inspectCmd = &cobra.Command{
	Use:   "inspect <export.json>",
	Short: "Print an export as a grouped chat log",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	inspectCmd.Flags().StringVar(&inspectTZ, "tz", "", "display time zone (overrides VIEWER_TIMEZONE)")
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	if inspectTZ != "" {
		cfg.Timezone = inspectTZ
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	conv, err := buildFromFile(args[0], loc)
	if err != nil {
		return err
	}
	return render.Terminal(cmd.OutOrStdout(), conv, cfg.WebRoot)
}

func buildFromFile(path string, loc *time.Location) (*export.Conversation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	raw, err := export.DecodeReader(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return export.BuildConversation(raw, export.Options{Location: loc}), nil
}
