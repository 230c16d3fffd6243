package cli

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/image/draw"

	"abacus/abacusos/calc"
	"abacus/abacusos/proto"
	"abacus/abacusos/services/keypad"
	"abacus/app"
	"abacus/hal"
)

// settleTicks are run after the last scripted key so the calculator task
// renders it before the snapshot is taken.
const settleTicks = 30

func newHeadlessCmd(e *env) *cobra.Command {
	var (
		hz       int
		ticks    uint64
		keys     string
		snapshot string
		scale    int
	)
	cmd := &cobra.Command{
		Use:   "headless",
		Short: "Run the calculator without a window",
		Long:  "Run the calculator OS without a window, optionally replaying a key script and saving the final frame as a PNG.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			script, err := calc.ParseKeys(keys)
			if err != nil {
				return err
			}
			appCfg, err := e.appConfig()
			if err != nil {
				return err
			}

			var (
				mu   sync.Mutex
				last proto.CalcState
				seen bool
			)
			appCfg.OnState = func(s proto.CalcState) {
				mu.Lock()
				last, seen = s, true
				mu.Unlock()
			}

			hc := hal.HeadlessConfig{Hz: hz, Ticks: ticks, Log: e.log}
			for _, k := range script {
				hc.Keys = append(hc.Keys, keypad.Event(k))
			}
			if hc.Ticks == 0 && (snapshot != "" || len(script) > 0) {
				hc.Ticks = uint64(len(script)) + settleTicks
			}
			if snapshot != "" {
				hc.Snapshot = func(img image.Image) error {
					return writePNG(snapshot, img, scale)
				}
			}

			e.log.Info("running headless", zap.Int("hz", hz), zap.Uint64("ticks", hc.Ticks), zap.Int("keys", len(script)))
			err = hal.RunHeadless(cmd.Context(), func(h hal.HAL) func() error {
				return app.NewWithConfig(h, appCfg)
			}, hc)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			if err != nil {
				return err
			}

			mu.Lock()
			defer mu.Unlock()
			if !seen {
				return nil
			}
			return e.print(newStateResult(last))
		},
	}
	cmd.Flags().IntVar(&hz, "hz", 60, "Tick rate")
	cmd.Flags().Uint64Var(&ticks, "ticks", 0, "Stop after N ticks (0 = run forever, or until the script settles)")
	cmd.Flags().StringVar(&keys, "keys", "", "Key script to replay, one key per tick (e.g. '12+3=')")
	cmd.Flags().StringVar(&snapshot, "snapshot", "", "Write the last frame to this PNG file")
	cmd.Flags().IntVar(&scale, "snapshot-scale", 1, "Scale factor for the snapshot")
	return cmd
}

func writePNG(path string, img image.Image, scale int) error {
	if scale < 1 {
		return fmt.Errorf("snapshot scale must be at least 1, got %d", scale)
	}
	if scale > 1 {
		b := img.Bounds()
		dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
		draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
		img = dst
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// stateResult is the printable form of the calculator task's state.
type stateResult struct {
	Display    string `yaml:"display"            json:"display"`
	ClearLabel string `yaml:"clear_label"        json:"clear_label"`
	First      string `yaml:"first,omitempty"    json:"first,omitempty"`
	Operator   string `yaml:"operator,omitempty" json:"operator,omitempty"`
	Second     string `yaml:"second,omitempty"   json:"second,omitempty"`
}

func (s stateResult) Text() string { return s.Display }

func newStateResult(s proto.CalcState) stateResult {
	return stateResult{
		Display:    s.Display(),
		ClearLabel: s.ClearLabel,
		First:      s.First,
		Operator:   s.Operator,
		Second:     s.Second,
	}
}
