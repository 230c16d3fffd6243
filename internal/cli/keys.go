package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"abacus/abacusos/calc"
)

type keyStep struct {
	Key        string           `yaml:"key"                  json:"key"`
	Display    string           `yaml:"display"              json:"display"`
	ClearLabel string           `yaml:"clear_label"          json:"clear_label"`
	Evaluation *calc.Evaluation `yaml:"evaluation,omitempty" json:"evaluation,omitempty"`
}

type keysResult struct {
	Keys       string    `yaml:"keys"               json:"keys"`
	Display    string    `yaml:"display"            json:"display"`
	ClearLabel string    `yaml:"clear_label"        json:"clear_label"`
	First      string    `yaml:"first,omitempty"    json:"first,omitempty"`
	Operator   string    `yaml:"operator,omitempty" json:"operator,omitempty"`
	Second     string    `yaml:"second,omitempty"   json:"second,omitempty"`
	Steps      []keyStep `yaml:"steps,omitempty"    json:"steps,omitempty"`
}

func (r keysResult) Text() string {
	if len(r.Steps) == 0 {
		return r.Display
	}
	var b strings.Builder
	for _, s := range r.Steps {
		fmt.Fprintf(&b, "%-3s %s", s.Key, s.Display)
		if ev := s.Evaluation; ev != nil {
			fmt.Fprintf(&b, "  (%s %s %s = %s)", ev.A, ev.Operator, ev.B, ev.Result)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func newKeysCmd(e *env) *cobra.Command {
	var trace bool
	cmd := &cobra.Command{
		Use:   "keys SCRIPT...",
		Short: "Press keys on a fresh calculator and print the result",
		Long: `Press keys on a fresh calculator and print the result.

A script is a run of keypad labels: digits, '.', '+', '-', '*', '/', '^',
'%', '=', 'AC' (or 'C') and '⌫' (or '<'). Whitespace is ignored, so
"12 + 3 =" and "12+3=" are the same script.`,
		Example: "  abacus keys '1/3='\n  abacus keys --trace 2 ^ 10 =",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			keys, err := calc.ParseKeys(strings.Join(args, " "))
			if err != nil {
				return err
			}
			return e.print(runKeys(keys, trace))
		},
	}
	cmd.Flags().BoolVar(&trace, "trace", false, "Print the display after every key")
	return cmd
}

func runKeys(keys []calc.Key, trace bool) keysResult {
	s := calc.NewState()
	res := keysResult{Keys: calc.FormatKeys(keys)}
	for _, k := range keys {
		var ev *calc.Evaluation
		s, ev = calc.Apply(s, k)
		if trace {
			res.Steps = append(res.Steps, keyStep{
				Key:        k.String(),
				Display:    s.Display(),
				ClearLabel: string(s.ClearLabel),
				Evaluation: ev,
			})
		}
	}
	res.Display = s.Display()
	res.ClearLabel = string(s.ClearLabel)
	res.First, res.Operator, res.Second = s.First, s.Operator, s.Second
	return res
}
