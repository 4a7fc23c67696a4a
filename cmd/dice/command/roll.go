package command

import (
	"fmt"

	"github.com/arcanedice/dice"
	"github.com/urfave/cli"
)

// RollResult is a plain-dice (no math composition) roll's printable result.
type RollResult struct {
	Notation string    `json:"notation"`
	Total    float64   `json:"total"`
	Kept     []float64 `json:"kept,omitempty"`
	Raw      []float64 `json:"raw,omitempty"`
}

// String implements fmt.Stringer.
func (r *RollResult) String() string {
	if r == nil {
		return ""
	}
	return fmt.Sprintf("%s = %v", r.Notation, r.Total)
}

// RollCommand rolls the single dice expression passed as its first argument
// (no arithmetic/function composition; use EvalCommand for that) and prints
// its total, kept, and raw results.
func RollCommand(c *cli.Context) error {
	notation := c.Args().Get(0)

	h, err := dice.Evaluate(notation)
	if err != nil {
		return err
	}
	defer h.Free()

	total, err := h.Total()
	if err != nil {
		return err
	}
	result := &RollResult{Notation: notation, Total: total}
	if kept, err := h.KeptResults(); err == nil {
		result.Kept = kept
	}
	if raw, err := h.RawResults(); err == nil {
		result.Raw = raw
	}

	out, err := Output(c, result)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}
