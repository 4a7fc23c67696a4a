/*
Package dice defines a CLI for the package.
*/
package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/arcanedice/dice"
	"github.com/arcanedice/dice/cmd/dice/command"
	"github.com/urfave/cli"
)

func init() {
	dice.MaxDice = 10000
}

func main() {
	cmd := cli.NewApp()
	cmd.Name = "dice"
	cmd.Usage = "CLI dice roller"
	cmd.Version = "0.0.1"

	// globalFlags should be set up so that they can be used anywhere in the
	// command
	globalFlags := []cli.Flag{
		&cli.StringFlag{
			Name:   "format",
			Value:  "",
			Usage:  "output format (table, json, yaml, gostruct)",
			EnvVar: "FORMAT",
		},
		&cli.StringFlag{
			Name:   "field",
			Value:  "",
			Usage:  "output specific field (unimplemented)",
			EnvVar: "FIELD",
		},
	}

	evalFlags := append(append([]cli.Flag{}, globalFlags...), &cli.BoolFlag{
		Name:  "ast",
		Usage: "print the evaluated AST tree instead of the composed result",
	})

	httpFlags := []cli.Flag{
		&cli.StringFlag{
			Name:   "http",
			Value:  ":6436", // hex of the ASCII bytes of "d6"
			Usage:  "HTTP service address",
			EnvVar: "HTTP",
		},
	}

	cmd.Commands = []cli.Command{
		{
			Name:    "eval",
			Aliases: []string{"e"},
			Usage:   "evaluate a dice/math expression",
			Flags:   evalFlags,
			Action: func(c *cli.Context) error {
				return command.EvalCommand(c)
			},
		},
		{
			Name:  "repl",
			Usage: "enter a REPL mode",
			Flags: globalFlags,
			Action: func(c *cli.Context) error {
				return command.REPLCommand(c)
			},
		},
		{
			Name:    "roll",
			Aliases: []string{"r"},
			Usage:   "roll a single dice expression",
			Flags:   globalFlags,
			Action: func(c *cli.Context) error {
				return command.RollCommand(c)
			},
		},
		{
			Name:    "server",
			Aliases: []string{"s"},
			Usage:   "start an HTTP server",
			Flags:   httpFlags,
			Action: func(c *cli.Context) error {
				return command.ServerCommand(c)
			},
		},
	}

	sort.Sort(cli.FlagsByName(cmd.Flags))
	sort.Sort(cli.CommandsByName(cmd.Commands))

	err := cmd.Run(os.Args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}
