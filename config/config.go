// Package config loads calculator grammars from YAML or JSON files.
//
// A grammar describes edits to a calculator's default tables:
//
//	preset: pemdas
//	angle: degrees
//	max_depth: 500
//	operators:
//	  - {symbol: "^", arity: 2, precedence: 3, assoc: right}
//	aliases: {"**": "^"}
//	remove_operators: ["%"]
//	constants: {tau: 6.283185307179586}
//	remove_constants: [phi]
//	functions: ["sq(x) = x^2"]
//	remove_functions: [rand/2]
package config

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/zephyrtronium/calculator"
)

// Grammar is a set of edits to a calculator's tables and settings.
type Grammar struct {
	// Preset replaces the operator table with "pemdas" or "immediate"
	// before any other edits. Empty leaves the table as it is.
	Preset string `yaml:"preset,omitempty" json:"preset,omitempty"`
	// Angle is "radians" or "degrees". Empty leaves the mode as it is.
	Angle string `yaml:"angle,omitempty" json:"angle,omitempty"`
	// MaxDepth is the nesting limit. Zero leaves the limit as it is.
	MaxDepth int `yaml:"max_depth,omitempty" json:"max_depth,omitempty"`

	// Operators changes the precedence and associativity of existing
	// operator overloads.
	Operators []OperatorEdit `yaml:"operators,omitempty" json:"operators,omitempty"`
	// Aliases maps new symbols to existing ones.
	Aliases map[string]string `yaml:"aliases,omitempty" json:"aliases,omitempty"`
	// RemoveOperators lists operators to remove, either as a bare symbol to
	// remove every overload or as symbol/arity.
	RemoveOperators []string `yaml:"remove_operators,omitempty" json:"remove_operators,omitempty"`

	// Constants binds names in the global constant table.
	Constants map[string]float64 `yaml:"constants,omitempty" json:"constants,omitempty"`
	// RemoveConstants unbinds names from the global constant table.
	RemoveConstants []string `yaml:"remove_constants,omitempty" json:"remove_constants,omitempty"`

	// Functions lists user function definitions. A definition replaces a
	// user function with the same name and arity.
	Functions []string `yaml:"functions,omitempty" json:"functions,omitempty"`
	// RemoveFunctions lists functions to remove, as name or name/arity.
	RemoveFunctions []string `yaml:"remove_functions,omitempty" json:"remove_functions,omitempty"`
}

// OperatorEdit changes one operator overload.
type OperatorEdit struct {
	Symbol     string `yaml:"symbol" json:"symbol"`
	Arity      int    `yaml:"arity" json:"arity"`
	Precedence int    `yaml:"precedence" json:"precedence"`
	// Assoc is "left" or "right". Empty keeps the current associativity.
	Assoc string `yaml:"assoc,omitempty" json:"assoc,omitempty"`
}

// Options converts the grammar's preset, angle, and depth limit to options
// for calculator.New. Table edits are not represented; use Apply for those.
func (g *Grammar) Options() ([]calculator.Option, error) {
	var opts []calculator.Option
	if g.Preset != "" {
		ops, err := preset(g.Preset)
		if err != nil {
			return nil, err
		}
		opts = append(opts, calculator.WithOperators(ops))
	}
	if g.Angle != "" {
		a, ok := calculator.ParseAngle(g.Angle)
		if !ok {
			return nil, fmt.Errorf("unknown angle mode %q", g.Angle)
		}
		opts = append(opts, calculator.WithAngle(a))
	}
	if g.MaxDepth != 0 {
		if g.MaxDepth < 0 {
			return nil, fmt.Errorf("negative max_depth %d", g.MaxDepth)
		}
		opts = append(opts, calculator.WithMaxDepth(g.MaxDepth))
	}
	return opts, nil
}

// Apply edits c according to the grammar. The edits happen in order: preset,
// removals, operator edits, aliases, constants, functions, angle, and depth
// limit. Apply stops at the first failure, leaving earlier edits in place.
func (g *Grammar) Apply(c *calculator.Calculator) error {
	if g.Preset != "" {
		ops, err := preset(g.Preset)
		if err != nil {
			return err
		}
		c.SetOperators(ops)
	}

	for _, entry := range g.RemoveOperators {
		sym, arity, err := splitArity(entry)
		if err != nil {
			return fmt.Errorf("remove operator %q: %w", entry, err)
		}
		var ok bool
		if arity < 0 {
			ok = c.Operators().Remove(sym)
		} else {
			ok = c.Operators().RemoveOverload(sym, arity)
		}
		if !ok {
			return fmt.Errorf("remove operator %q: no such operator", entry)
		}
	}
	for _, name := range g.RemoveConstants {
		if !c.Constants().Remove(name) {
			return fmt.Errorf("remove constant %q: no such constant", name)
		}
	}
	for _, entry := range g.RemoveFunctions {
		name, arity, err := splitArity(entry)
		if err != nil {
			return fmt.Errorf("remove function %q: %w", entry, err)
		}
		var ok bool
		if arity < 0 {
			ok = c.Functions().Remove(name)
		} else {
			ok = c.Functions().RemoveOverload(name, arity)
		}
		if !ok {
			return fmt.Errorf("remove function %q: no such function", entry)
		}
	}

	for _, e := range g.Operators {
		op := c.Operators().Get(e.Symbol, e.Arity)
		if op == nil {
			return fmt.Errorf("edit operator %q with arity %d: no such operator", e.Symbol, e.Arity)
		}
		op.Precedence = e.Precedence
		if e.Assoc != "" {
			a, ok := calculator.ParseAssoc(e.Assoc)
			if !ok {
				return fmt.Errorf("edit operator %q: unknown associativity %q", e.Symbol, e.Assoc)
			}
			op.Assoc = a
		}
	}
	for _, alias := range sortedKeys(g.Aliases) {
		if err := c.Operators().Alias(alias, g.Aliases[alias]); err != nil {
			return fmt.Errorf("alias %q: %w", alias, err)
		}
	}

	for _, name := range sortedKeys(g.Constants) {
		if !calculator.IsIdent(name) {
			return fmt.Errorf("constant %q: invalid identifier", name)
		}
		c.Constants().Put(name, g.Constants[name])
	}
	for _, def := range g.Functions {
		if _, err := c.Functions().Redefine(def); err != nil {
			return fmt.Errorf("define function: %w", err)
		}
	}

	if g.Angle != "" {
		a, ok := calculator.ParseAngle(g.Angle)
		if !ok {
			return fmt.Errorf("unknown angle mode %q", g.Angle)
		}
		c.SetAngle(a)
	}
	if g.MaxDepth < 0 {
		return fmt.Errorf("negative max_depth %d", g.MaxDepth)
	}
	if g.MaxDepth != 0 {
		c.SetMaxDepth(g.MaxDepth)
	}
	return nil
}

// preset creates the operator table named by a preset.
func preset(name string) (*calculator.Operators, error) {
	switch strings.ToLower(name) {
	case "pemdas":
		return calculator.DefaultOperators(), nil
	case "immediate":
		return calculator.ImmediateOperators(), nil
	default:
		return nil, fmt.Errorf("unknown operator preset %q", name)
	}
}

// splitArity splits "name/arity" into its parts. A bare name has arity -1.
// An operator symbol may itself contain /, so only a suffix of digits after
// the last / counts as an arity.
func splitArity(entry string) (string, int, error) {
	k := strings.LastIndexByte(entry, '/')
	if k <= 0 || k == len(entry)-1 {
		return entry, -1, nil
	}
	n, err := strconv.Atoi(entry[k+1:])
	if err != nil {
		return entry, -1, nil
	}
	if n < 0 {
		return "", 0, fmt.Errorf("negative arity %d", n)
	}
	return entry[:k], n, nil
}

func sortedKeys[V any](m map[string]V) []string {
	r := make([]string, 0, len(m))
	for k := range m {
		r = append(r, k)
	}
	slices.Sort(r)
	return r
}
