package calculator

import (
	"math/big"
	"slices"

	"github.com/zephyrtronium/bigfloat"
)

// Constants maps identifiers to values. A Constants may be an overlay on a
// parent table: lookups fall through to the parent, while Put and Remove only
// ever touch the overlay's own bindings. It is not safe for concurrent use.
type Constants struct {
	vals   map[string]float64
	parent *Constants
}

// NewConstants creates an empty constant table.
func NewConstants() *Constants {
	return &Constants{vals: make(map[string]float64)}
}

// Put binds name to value, shadowing any binding of name in a parent table.
func (c *Constants) Put(name string, value float64) {
	c.vals[name] = value
}

// Get looks up the value bound to name.
func (c *Constants) Get(name string) (float64, bool) {
	for t := c; t != nil; t = t.parent {
		if v, ok := t.vals[name]; ok {
			return v, true
		}
	}
	return 0, false
}

// Remove unbinds name from this table. Bindings in a parent are unaffected.
// The result reports whether there was a binding to remove.
func (c *Constants) Remove(name string) bool {
	_, ok := c.vals[name]
	delete(c.vals, name)
	return ok
}

// Names returns every identifier visible through c, sorted.
func (c *Constants) Names() []string {
	seen := make(map[string]bool)
	var r []string
	for t := c; t != nil; t = t.parent {
		for k := range t.vals {
			if !seen[k] {
				seen[k] = true
				r = append(r, k)
			}
		}
	}
	slices.Sort(r)
	return r
}

// Overlay creates a table whose lookups see bindings first and c second.
// Neither c nor bindings is modified by later edits to the overlay.
func (c *Constants) Overlay(bindings map[string]float64) *Constants {
	n := &Constants{vals: make(map[string]float64, len(bindings)), parent: c}
	for k, v := range bindings {
		n.vals[k] = v
	}
	return n
}

// Clone flattens c and its parents into a new independent table.
func (c *Constants) Clone() *Constants {
	n := NewConstants()
	for _, k := range c.Names() {
		n.vals[k], _ = c.Get(k)
	}
	return n
}

// constprec is the precision in bits at which default constants are computed
// before rounding to float64.
const constprec = 256

// DefaultConstants returns a new table binding pi, π, e, phi, and φ.
func DefaultConstants() *Constants {
	c := NewConstants()
	pi, e, phi := defaultValues()
	c.Put("pi", pi)
	c.Put("π", pi)
	c.Put("e", e)
	c.Put("phi", phi)
	c.Put("φ", phi)
	return c
}

func defaultValues() (pi, e, phi float64) {
	p := bigfloat.Pi(new(big.Float).SetPrec(constprec))
	one := new(big.Float).SetPrec(constprec).SetInt64(1)
	x := bigfloat.Exp(new(big.Float).SetPrec(constprec), one)
	// phi = (1 + sqrt(5)) / 2
	f := new(big.Float).SetPrec(constprec).SetInt64(5)
	f.Sqrt(f)
	f.Add(f, one)
	f.Quo(f, new(big.Float).SetPrec(constprec).SetInt64(2))
	pi, _ = p.Float64()
	e, _ = x.Float64()
	phi, _ = f.Float64()
	return pi, e, phi
}
