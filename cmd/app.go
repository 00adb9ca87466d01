// Package cmd implements the fin command line application: one subcommand
// per financial calculator, plus the documentation and the JSON API server.
package cmd

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"
)

// Commands lists every fin subcommand.
var Commands = []subcommands.Command{
	&npvCmd{},
	&capmCmd{},
	&dcfCmd{},
	&waccCmd{},
	&bondCmd{},
	&statementsCmd{},
	&topicCmd{},
	&serveCmd{},
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, cmd := range Commands {
		group := "calculators"
		switch cmd.Name() {
		case "topic":
			group = "documentation"
		case "serve":
			group = "server"
		}
		c.Register(cmd, group)
	}
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "", "Path to the configuration file (default finkit.yaml in . or $HOME/.config/finkit)")
var currencyFlag = flag.String("currency", "", "ISO 4217 currency of the amounts in reports, overrides the configuration")

// Verbose forces debug logging.
var Verbose = flag.Bool("v", false, "Verbose logging")

// stdout receives the command results.
var stdout io.Writer = os.Stdout

// loaded is the configuration, once loaded.
var loaded *Config

// settings loads the configuration on first use and sets up logging.
func settings() (*Config, error) {
	if loaded != nil {
		return loaded, nil
	}
	c, err := LoadConfig(*configFile)
	if err != nil {
		return nil, err
	}
	if *currencyFlag != "" {
		c.Currency = strings.ToUpper(*currencyFlag)
	}
	SetupLogging(os.Stderr, c.Log.Level, *Verbose)
	logger.WithFields(logrus.Fields{
		"component":   "cmd",
		"currency":    c.Currency,
		"sensitivity": c.Sensitivity,
		"irr":         fmt.Sprintf("%d iterations, tolerance %g", c.IRR.MaxIterations, c.IRR.Tolerance),
	}).Debug("configuration loaded")
	loaded = c
	return c, nil
}

// output selects how a calculator prints its result.
type output struct {
	json  bool
	query string
}

func (o *output) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&o.json, "json", false, "Print the result as JSON")
	f.StringVar(&o.query, "q", "", "Print only the value selected by a JSONPath query on the JSON result, e.g. '$.npv'")
}

// print writes res as JSON, the part of it selected by the query, or the
// markdown report.
func (o *output) print(res any, report func() string) error {
	switch {
	case o.query != "":
		return printQuery(stdout, res, o.query)
	case o.json:
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	default:
		printMarkdown(report())
		return nil
	}
}

// printQuery evaluates query on the JSON form of res. Strings are printed as
// is, other values as JSON.
func printQuery(w io.Writer, res any, query string) error {
	b, err := json.Marshal(res)
	if err != nil {
		return err
	}
	var doc any
	if err := json.Unmarshal(b, &doc); err != nil {
		return err
	}
	val, err := jsonpath.Get(query, doc)
	if err != nil {
		return fmt.Errorf("error evaluating %q: %w", query, err)
	}
	if s, ok := val.(string); ok {
		_, err = fmt.Fprintln(w, s)
		return err
	}
	b, err = json.Marshal(val)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

// printMarkdown renders md for the terminal, or prints it unrendered when
// rendering fails.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err == nil {
		var out string
		if out, err = r.Render(md); err == nil {
			fmt.Fprint(stdout, out)
			return
		}
	}
	logger.WithError(err).Debug("markdown rendering failed")
	fmt.Fprint(stdout, md)
}

// fail reports err on stderr and returns the exit status for it.
func fail(context string, err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error %s: %v\n", context, err)
	return subcommands.ExitFailure
}
