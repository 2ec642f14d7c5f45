package pipeline

import (
	"strings"

	"github.com/rafiki18/archviz/pkg/errors"
	"github.com/rafiki18/archviz/pkg/generator"
)

// Select returns the generators named in names, in registry order.
// An empty names selects everything. Duplicate names are ignored; unknown
// names are an error listing the available ones.
func Select(gens []generator.Generator, names []string) ([]generator.Generator, error) {
	if len(names) == 0 {
		return gens, nil
	}

	known := make(map[string]bool, len(gens))
	for _, g := range gens {
		known[g.Name()] = true
	}

	want := make(map[string]bool, len(names))
	var unknown []string
	for _, n := range names {
		n = strings.TrimSpace(n)
		if !known[n] {
			unknown = append(unknown, n)
			continue
		}
		want[n] = true
	}
	if len(unknown) > 0 {
		return nil, errors.New(errors.ErrCodeUnknownDiagram,
			"unknown diagram(s) %s (available: %s)", strings.Join(unknown, ", "), strings.Join(Names(gens), ", "))
	}

	out := make([]generator.Generator, 0, len(want))
	for _, g := range gens {
		if want[g.Name()] {
			out = append(out, g)
		}
	}
	return out, nil
}

// Names returns the generator names in registry order.
func Names(gens []generator.Generator) []string {
	out := make([]string, len(gens))
	for i, g := range gens {
		out[i] = g.Name()
	}
	return out
}

// Find returns the generator with the given name.
func Find(gens []generator.Generator, name string) (generator.Generator, error) {
	for _, g := range gens {
		if g.Name() == name {
			return g, nil
		}
	}
	return nil, errors.New(errors.ErrCodeUnknownDiagram,
		"unknown diagram %q (available: %s)", name, strings.Join(Names(gens), ", "))
}
