package cmd

import (
	"flag"

	"github.com/etnz/equity/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// predictors of the flags whose values are known.
var predictors = map[string]complete.Predictor{
	"policy":       predict.Set{"date", "price"},
	"ledger-file":  predict.Files("*.jsonl"),
	"filings-file": predict.Files("*.yaml"),
}

// Completion returns the shell completion of the registered commands, with
// the global flags of top.
func Completion(top *flag.FlagSet) *complete.Command {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: flags(top),
	}
	for _, g := range groups() {
		for _, cmd := range g.commands {
			fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
			cmd.SetFlags(fs)
			root.Sub[cmd.Name()] = &complete.Command{Flags: flags(fs)}
		}
	}
	if topics, err := docs.AllTopics(); err == nil {
		root.Sub["topic"].Args = predict.Set(append(topics, "*"))
	}
	return root
}

func flags(fs *flag.FlagSet) map[string]complete.Predictor {
	m := make(map[string]complete.Predictor)
	fs.VisitAll(func(f *flag.Flag) {
		if p, ok := predictors[f.Name]; ok {
			m[f.Name] = p
			return
		}
		if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
			m[f.Name] = predict.Nothing
			return
		}
		m[f.Name] = predict.Something
	})
	return m
}
