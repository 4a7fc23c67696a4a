package command

import (
	"context"
	"fmt"

	"github.com/arcanedice/dice"
	"github.com/arcanedice/dice/math"
	"github.com/urfave/cli"
)

// EvalCommand evaluates the first argument it is provided as a composed
// dice/math expression and prints the result, or returns any error
// encountered while parsing or evaluating it.
//
// With --ast, it instead evaluates the argument as a single dice expression
// (no math composition) and prints the evaluated AST tree, for debugging
// grammar and evaluator behavior.
func EvalCommand(c *cli.Context) error {
	input := c.Args().Get(0)

	if c.Bool("ast") {
		h, err := dice.Evaluate(input)
		if err != nil {
			return err
		}
		defer h.Free()
		tree, err := h.Tree()
		if err != nil {
			return err
		}
		out, err := toGoStruct(tree)
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	}

	exp, err := math.EvaluateExpression(context.Background(), input)
	if err != nil {
		return err
	}
	out, err := Output(c, exp)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}
