package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/primordial/internal/watch"
)

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	var debounce time.Duration
	cmd := &cobra.Command{
		Use:   "watch <path>...",
		Short: "Re-check files whenever they change",
		Long: `Watch files or directories and run check on every changed source file.

Directories are watched recursively for files with the configured extensions.
Runs until interrupted.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc := NewCommandContext(cmd)
			if !cmd.Flags().Changed("debounce") {
				debounce = cc.Cfg.Watch.Debounce
			}
			return runWatch(cmd, cc, args, debounce)
		},
	}
	cmd.Flags().DurationVar(&debounce, "debounce", 0, "Quiet period before a change is handled")
	return cmd
}

func runWatch(cmd *cobra.Command, cc *CommandContext, paths []string, debounce time.Duration) error {
	w, err := watch.New(watch.Config{
		Paths:      paths,
		Extensions: cc.Cfg.Watch.Extensions,
		Debounce:   debounce,
		Logger:     cc.Logger,
		OnChange: func(ctx context.Context, path string) {
			reportChange(ctx, cmd, cc, path)
		},
	})
	if err != nil {
		return err
	}
	cc.Logger.Info("watching for changes", "paths", paths)
	return w.Run(cmd.Context())
}

func reportChange(ctx context.Context, cmd *cobra.Command, cc *CommandContext, path string) {
	r := cc.Renderer
	r.Header(2, path+" @ "+time.Now().Format(time.TimeOnly))

	f, err := cc.ParseFile(ctx, cmd, path)
	if err == nil {
		var out string
		if out, err = renderNode(f); err == nil {
			r.Code("primordial", out)
		}
	}
	if err != nil {
		r.Println(err.Error())
	}
	r.Status(err == nil)
}
