package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/fundval/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	// Shell completion runs before flag parsing; it exits silently when the
	// program is invoked by the completion machinery.
	completion().Complete(path.Base(os.Args[0]))

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

func completion() *complete.Command {
	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"config": predict.Files("*.json"),
		},
		Sub: map[string]*complete.Command{
			"update": {},
			"funds":  {},
			"export": {
				Flags: map[string]complete.Predictor{
					"f":      predict.Something,
					"format": predict.Set{"csv", "json"},
					"o":      predict.Files("*"),
				},
			},
			"refund": {},
			"history": {
				Flags: map[string]complete.Predictor{
					"i":    predict.Something,
					"n":    predict.Something,
					"save": predict.Nothing,
				},
			},
			"synthetic": {
				Flags: map[string]complete.Predictor{
					"i": predict.Something,
					"f": predict.Something,
				},
			},
			"topic": {Args: predict.Set{"readme", "refund", "synthetic", "archive", "quotations", "*"}},
		},
	}
}
