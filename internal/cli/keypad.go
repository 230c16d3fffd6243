package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"abacus/abacusos/calc"
)

type keypadResult struct {
	Rows [][]string `yaml:"rows" json:"rows"`
}

func (r keypadResult) Text() string {
	var b strings.Builder
	for _, row := range r.Rows {
		for i, label := range row {
			if i > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(&b, "[%2s]", label)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func newKeypadCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "keypad",
		Short: "Print the keypad layout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pad := calc.DefaultKeypad()
			return e.print(keypadResult{Rows: pad.Labels()})
		},
	}
}
