package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"abacus/abacusos/calc"
)

type evalResult struct {
	A        string `yaml:"a"           json:"a"`
	Operator string `yaml:"operator"    json:"operator"`
	B        string `yaml:"b,omitempty" json:"b,omitempty"`
	Result   string `yaml:"result"      json:"result"`
}

func (r evalResult) Text() string { return r.Result }

func newEvalCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:     "eval A OP [B]",
		Short:   "Evaluate one operation with calculator rounding",
		Example: "  abacus eval 1 / 3\n  abacus eval 0,5 + 0,25\n  abacus eval 50 %",
		Args:    cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, op := args[0], args[1]
			var b string
			if len(args) == 3 {
				b = args[2]
			}
			if !calc.IsOperator(op) {
				return fmt.Errorf("unknown operator %q (use + - * / ^ %%)", op)
			}
			if b == "" && op != "%" {
				return fmt.Errorf("operator %s needs two operands", op)
			}
			return e.print(evalResult{A: a, Operator: op, B: b, Result: calc.Evaluate(a, op, b)})
		},
	}
}
