package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"abacus/app"
	"abacus/hal"
)

func newWindowCmd(e *env) *cobra.Command {
	var (
		title string
		scale int
		tps   int
	)
	cmd := &cobra.Command{
		Use:   "window",
		Short: "Open the calculator in a desktop window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			wc := hal.WindowConfig{
				Title: e.cfg.Window.Title,
				Scale: e.cfg.Window.Scale,
				TPS:   e.cfg.Window.TPS,
				Log:   e.log,
			}
			if cmd.Flags().Changed("title") {
				wc.Title = title
			}
			if cmd.Flags().Changed("scale") {
				wc.Scale = scale
			}
			if cmd.Flags().Changed("tps") {
				wc.TPS = tps
			}

			appCfg, err := e.appConfig()
			if err != nil {
				return err
			}
			e.log.Info("opening window", zap.Int("scale", wc.Scale), zap.Int("tps", wc.TPS))
			return hal.RunWindow(wc, func(h hal.HAL) func() error {
				return app.NewWithConfig(h, appCfg)
			})
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "Window title")
	cmd.Flags().IntVar(&scale, "scale", 2, "Window scale factor")
	cmd.Flags().IntVar(&tps, "tps", 60, "Input polls per second")
	return cmd
}

func (e *env) appConfig() (app.Config, error) {
	theme, err := e.cfg.Theme.Calculator()
	if err != nil {
		return app.Config{}, err
	}
	return app.Config{Theme: theme}, nil
}
