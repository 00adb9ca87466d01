package cmd

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/finkit"
	"github.com/etnz/finkit/api"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

// amountValue is a flag.Value setting a plain number.
type amountValue struct{ n *api.Number }

func (v amountValue) String() string {
	if v.n == nil {
		return ""
	}
	return v.n.String()
}

func (v amountValue) Set(s string) error {
	d, err := finkit.ParseAmount(s)
	if err != nil {
		return err
	}
	v.n.Decimal = d
	return nil
}

// percentValue is a flag.Value setting a rate given in percent: "10" is 0.10.
type percentValue struct{ n *api.Number }

func (v percentValue) String() string {
	if v.n == nil {
		return ""
	}
	return v.n.Shift(2).String()
}

func (v percentValue) Set(s string) error {
	d, err := finkit.ParsePercent(s)
	if err != nil {
		return err
	}
	v.n.Decimal = d
	return nil
}

// optionalValue wraps an amount or percent flag whose target is only
// allocated once the flag is set.
type optionalValue struct {
	p       **api.Number
	percent bool
}

func (v optionalValue) String() string {
	if v.p == nil || *v.p == nil {
		return ""
	}
	if v.percent {
		return percentValue{*v.p}.String()
	}
	return amountValue{*v.p}.String()
}

func (v optionalValue) Set(s string) error {
	n := new(api.Number)
	var err error
	if v.percent {
		err = percentValue{n}.Set(s)
	} else {
		err = amountValue{n}.Set(s)
	}
	if err != nil {
		return err
	}
	*v.p = n
	return nil
}

// listValue is a flag.Value setting a comma separated list of numbers.
type listValue struct{ ns *[]api.Number }

func (v listValue) String() string {
	if v.ns == nil {
		return ""
	}
	parts := make([]string, len(*v.ns))
	for i, n := range *v.ns {
		parts[i] = n.String()
	}
	return strings.Join(parts, ",")
}

func (v listValue) Set(s string) error {
	var ns []api.Number
	for _, part := range strings.Split(s, ",") {
		d, err := finkit.ParseAmount(part)
		if err != nil {
			return err
		}
		ns = append(ns, api.N(d))
	}
	*v.ns = ns
	return nil
}

// scenario is the -f flag, shared by calculators: a YAML file holding the
// same document as the JSON API request.
type scenario struct {
	file string
}

func (s *scenario) SetFlags(f *flag.FlagSet) {
	f.StringVar(&s.file, "f", "", "Read the inputs from a YAML scenario file, explicit flags take precedence")
}

// load decodes the scenario file into req, then re-applies the flags set on
// the command line so that they override the file values.
func (s *scenario) load(f *flag.FlagSet, req any) error {
	if s.file == "" {
		return nil
	}
	explicit := make(map[string]string)
	f.Visit(func(fl *flag.Flag) { explicit[fl.Name] = fl.Value.String() })

	data, err := os.ReadFile(s.file)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, req); err != nil {
		return fmt.Errorf("decoding scenario %q: %w", s.file, err)
	}
	for name, value := range explicit {
		if err := f.Set(name, value); err != nil {
			return fmt.Errorf("flag -%s: %w", name, err)
		}
	}
	logger.WithFields(logrus.Fields{"component": "cmd", "file": s.file, "overrides": len(explicit)}).Debug("scenario loaded")
	return nil
}
