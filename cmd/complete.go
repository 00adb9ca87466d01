package cmd

import (
	"flag"

	"github.com/etnz/finkit/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion describes the fin command line for shell completion: the
// global flags, every subcommand and its flags.
func Completion(commands []subcommands.Command) *complete.Command {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: flagPredictors(flag.CommandLine),
	}
	for _, c := range commands {
		fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		c.SetFlags(fs)
		root.Sub[c.Name()] = &complete.Command{Flags: flagPredictors(fs)}
	}
	if topic, ok := root.Sub["topic"]; ok {
		if topics, err := docs.GetAllTopics(); err == nil {
			topic.Args = predict.Set(topics)
		}
	}
	return root
}

type boolFlag interface{ IsBoolFlag() bool }

// flagPredictors predicts the values of the flags of fs. Boolean flags take
// no value.
func flagPredictors(fs *flag.FlagSet) map[string]complete.Predictor {
	out := make(map[string]complete.Predictor)
	fs.VisitAll(func(fl *flag.Flag) {
		if b, ok := fl.Value.(boolFlag); ok && b.IsBoolFlag() {
			out[fl.Name] = nil
			return
		}
		switch fl.Name {
		case "f", "config":
			out[fl.Name] = predict.Files("*.yaml")
		case "freq":
			out[fl.Name] = predict.Set{"annual", "semi-annual", "quarterly"}
		case "currency":
			out[fl.Name] = predict.Set{"SEK", "EUR", "USD", "GBP", "CHF", "JPY"}
		default:
			out[fl.Name] = predict.Something
		}
	})
	return out
}
