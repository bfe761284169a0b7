package calculator

import (
	"slices"
	"strings"
	"unicode"
)

// UserFunction is a function defined by an expression over named parameters,
// e.g. "hyp(a, b) = sqrt(a^2 + b^2)". Its arity is always the number of
// parameters. Renaming a registered user function or changing its parameter
// count changes its table key, so those edits go through the Functions
// methods Rename and SetParams.
type UserFunction struct {
	name   string
	params []string
	body   string
}

func (f *UserFunction) Name() string { return f.name }
func (f *UserFunction) Arity() int   { return len(f.params) }

// Params returns a copy of the parameter names in order.
func (f *UserFunction) Params() []string {
	return slices.Clone(f.params)
}

// Body returns the expression the function evaluates.
func (f *UserFunction) Body() string {
	return f.body
}

// SetBody replaces the expression the function evaluates. Results computed
// before the change are unaffected.
func (f *UserFunction) SetBody(body string) error {
	if strings.TrimSpace(body) == "" {
		return &DefinitionError{Col: 1, Definition: f.String(), Reason: "missing body"}
	}
	f.body = body
	return nil
}

// String formats the function as a definition that LoadFunctionFromString
// accepts.
func (f *UserFunction) String() string {
	return f.name + "(" + strings.Join(f.params, ", ") + ") = " + f.body
}

// Call binds each parameter to its argument in a child of env and evaluates
// the body there. Parameters shadow constants of the same name for the
// duration of the call only.
func (f *UserFunction) Call(env *Env, args []float64) (float64, error) {
	bind := make(map[string]float64, len(f.params))
	for i, p := range f.params {
		bind[p] = args[i]
	}
	child := env.child(bind)
	src := []rune(f.body)
	return child.evaluate(src, 0, len(src))
}

func (*UserFunction) sealed() {}

// ParseDefinition splits a definition of the form
//
//	identifier '(' name { ',' name } ')' '=' expression
//
// into its parts. Whitespace around the identifier, parameter names, and the
// = sign is ignored. Errors are *DefinitionError.
func ParseDefinition(def string) (name string, params []string, body string, err error) {
	src := []rune(def)
	fail := func(i int, reason string) (string, []string, string, error) {
		return "", nil, "", &DefinitionError{Col: i + 1, Definition: def, Reason: reason}
	}
	i := skipSpace(src, 0, len(src))
	open := i
	for open < len(src) && !isOpenBracket(src[open]) {
		open++
	}
	if open == len(src) {
		return fail(i, "missing parameter list")
	}
	name = strings.TrimSpace(string(src[i:open]))
	if name == "" {
		return fail(open, "empty function identifier")
	}
	if !IsIdent(name) {
		return fail(i, "invalid function identifier "+name)
	}
	closer := closing(src[open])
	start := open + 1
	i = start
	for {
		if i == len(src) {
			return fail(i, "missing closing bracket")
		}
		c := src[i]
		if c != ',' && c != closer {
			if !isIdentRune(c) && !unicode.IsSpace(c) {
				return fail(i, "invalid character "+string(c)+" in parameter list")
			}
			i++
			continue
		}
		p := strings.TrimSpace(string(src[start:i]))
		switch {
		case p == "" && c == closer && len(params) == 0:
			// Empty parameter list.
		case p == "":
			return fail(i, "empty parameter name")
		case !IsIdent(p):
			return fail(start, "invalid parameter name "+p)
		case slices.Contains(params, p):
			return fail(start, "duplicate parameter name "+p)
		default:
			params = append(params, p)
		}
		i++
		start = i
		if c == closer {
			break
		}
	}
	i = skipSpace(src, i, len(src))
	if i == len(src) || src[i] != '=' {
		return fail(i, "missing =")
	}
	body = strings.TrimSpace(string(src[i+1:]))
	if body == "" {
		return fail(len(src), "missing body")
	}
	return name, params, body, nil
}

// LoadFunctionFromString compiles a definition and registers it. A definition
// whose identifier and arity are already registered fails with an
// *OverlapError; use Redefine to replace a user function.
func (t *Functions) LoadFunctionFromString(def string) (*UserFunction, error) {
	name, params, body, err := ParseDefinition(def)
	if err != nil {
		return nil, err
	}
	fn := &UserFunction{name: name, params: params, body: body}
	if err := t.add(fn); err != nil {
		return nil, err
	}
	return fn, nil
}

// Redefine compiles a definition and registers it, replacing a user function
// with the same identifier and arity in place if there is one. The replaced
// function is updated and returned, so references to it observe the new body.
// Replacing a native function fails with an *OverlapError.
func (t *Functions) Redefine(def string) (*UserFunction, error) {
	name, params, body, err := ParseDefinition(def)
	if err != nil {
		return nil, err
	}
	switch old := t.Get(name, len(params)).(type) {
	case nil:
		fn := &UserFunction{name: name, params: params, body: body}
		return fn, t.add(fn)
	case *UserFunction:
		old.params = params
		old.body = body
		return old, nil
	default:
		return nil, &OverlapError{Name: name, Arity: len(params)}
	}
}

// Rename re-keys a registered user function under a new identifier. The old
// key no longer resolves to fn afterward.
func (t *Functions) Rename(fn *UserFunction, name string) error {
	if !IsIdent(name) {
		return &DefinitionError{Col: 1, Definition: name, Reason: "invalid function identifier"}
	}
	k := t.indexOf(fn)
	if k < 0 {
		return &IdentError{Name: fn.name}
	}
	if name == fn.name {
		return nil
	}
	if t.Get(name, fn.Arity()) != nil {
		return &OverlapError{Name: name, Arity: fn.Arity()}
	}
	t.drop(fn.name, k)
	fn.name = name
	t.fns[name] = append(t.fns[name], fn)
	return nil
}

// SetParams replaces the parameter names of a registered user function. If
// the count changes, so does the function's arity and thus its table key.
func (t *Functions) SetParams(fn *UserFunction, params []string) error {
	k := t.indexOf(fn)
	if k < 0 {
		return &IdentError{Name: fn.name}
	}
	for i, p := range params {
		if !IsIdent(p) {
			return &DefinitionError{Col: 1, Definition: fn.String(), Reason: "invalid parameter name " + p}
		}
		if slices.Contains(params[:i], p) {
			return &DefinitionError{Col: 1, Definition: fn.String(), Reason: "duplicate parameter name " + p}
		}
	}
	if len(params) != fn.Arity() {
		if t.Get(fn.name, len(params)) != nil {
			return &OverlapError{Name: fn.name, Arity: len(params)}
		}
	}
	fn.params = slices.Clone(params)
	return nil
}
