package cmd

import (
	"flag"
	"strings"

	"github.com/etnz/hisab"
	"github.com/etnz/hisab/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion returns the shell completion of the hisab command line.
//
// Install it with COMP_INSTALL=1 hisab.
func Completion() *complete.Command {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: make(map[string]complete.Predictor),
	}
	flag.CommandLine.VisitAll(func(f *flag.Flag) { root.Flags[f.Name] = flagPredictor(f) })

	var names []string
	for _, c := range commands() {
		fs := flag.NewFlagSet(c.cmd.Name(), flag.ContinueOnError)
		c.cmd.SetFlags(fs)
		sub := &complete.Command{Flags: make(map[string]complete.Predictor)}
		fs.VisitAll(func(f *flag.Flag) { sub.Flags[f.Name] = flagPredictor(f) })
		root.Sub[c.cmd.Name()] = sub
		names = append(names, c.cmd.Name())
	}
	if topics, err := docs.GetAllTopics(); err == nil {
		root.Sub["topic"].Args = predict.Set(topics)
	}
	root.Sub["help"] = &complete.Command{Args: predict.Set(names)}
	return root
}

// flagPredictor predicts the values of a flag from its name.
func flagPredictor(f *flag.Flag) complete.Predictor {
	if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
		return predict.Nothing
	}
	switch f.Name {
	case "status":
		var statuses []string
		for _, s := range hisab.OrderStatuses {
			statuses = append(statuses, strings.ToLower(string(s)))
		}
		return predict.Set(statuses)
	case "type":
		return predict.Set{"wallet", "bank", "cash", "other"}
	case "p":
		return predict.Set{"day", "week", "month", "quarter", "year"}
	case "file":
		return predict.Files("*.json")
	case "cache-dir":
		return predict.Dirs("*")
	}
	return predict.Something
}
