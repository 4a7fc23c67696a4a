package command

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/arcanedice/dice/math"
	"github.com/urfave/cli"
)

const replPrompt = ">>> "

// REPLCommand is a command that will initiate a dice REPL.
func REPLCommand(c *cli.Context) error {
	scanner := bufio.NewScanner(os.Stdin)

	// Check if data was piped through Stdin, or if the REPL is interactive
	in, _ := os.Stdin.Stat()
	interactive := ((in.Mode() & os.ModeCharDevice) != 0)

	// Begin the REPL:
	for {
		if interactive {
			fmt.Fprint(os.Stderr, replPrompt)
		}
		scanned := scanner.Scan()
		if !scanned {
			return nil
		}

		line := scanner.Text()
		if line == "quit" {
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
		exp, err := math.EvaluateExpression(ctx, line)
		cancel()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		out, err := Output(c, exp)
		if err != nil {
			return err
		}
		fmt.Println(out)
	}
}
