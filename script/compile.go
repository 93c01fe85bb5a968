package script

import (
	"github.com/flightdyn/daveml/cell"
)

// Host is the collaborator a compiled script runs against: the owning
// registry's read/write surface (package variable's Registry satisfies
// this structurally — no import from variable back into script is
// needed). IndexOf/IsInput let setVarDef validate its target at compile
// time; ValueOf/SetScalar drive execution.
type Host interface {
	IndexOf(id string) (int, bool)
	IsInput(index int) bool
	ValueOf(index int) (cell.Value, error)
	SetScalar(index int, value float64) error
}

// Compiled is a parsed, symbol-resolved script ready to run against any
// Host sharing the same variable index space it was compiled against.
type Compiled struct {
	ownerID      string
	stmts        []stmt
	dependencies []int // independentVarRef candidates, in first-reference order
	nonSticky    []int // setVarDef (non-sticky) targets needing save/restore
	sticky       []string
}

// Dependencies returns every registered variable this script reads,
// in first-reference order — spec.md §4.5's "independentVarRefs are
// collected from... identifier names detected in scripts."
func (c *Compiled) Dependencies() []int { return c.dependencies }

// StickyTargets reports the varIDs this script sets persistently via
// setVarDefSticky — an introspection surface with no teacher precedent in
// this package, useful for a host or test asserting which variables a
// script mutates beyond its own return value.
func (c *Compiled) StickyTargets() []string { return c.sticky }

// Compile parses source, rejects return-statements and sets on Input
// variables, and collects every registered-symbol dependency and every
// non-sticky setVarDef target (spec.md §4.6 compilation pass). ownerID is
// the identifier of the variable this script will be attached to — used
// to detect self-assignment.
func Compile(ownerID, source string, host Host) (*Compiled, error) {
	stmts, err := parseProgram(source)
	if err != nil {
		return nil, err
	}

	c := &Compiled{ownerID: ownerID, stmts: stmts}
	seen := map[int]bool{}
	nonStickySeen := map[int]bool{}

	var walk func(e scriptExpr) error
	walk = func(e scriptExpr) error {
		switch n := e.(type) {
		case numberExpr:
			return nil
		case identExpr:
			if n.name == ownerID {
				return nil
			}
			if idx, ok := host.IndexOf(n.name); ok {
				if !seen[idx] {
					seen[idx] = true
					c.dependencies = append(c.dependencies, idx)
				}
			}

			return nil
		case unaryExpr:
			return walk(n.x)
		case binaryExpr:
			if err := walk(n.a); err != nil {
				return err
			}

			return walk(n.b)
		case callExpr:
			if n.name == "setVarDef" || n.name == "setVarDefSticky" {
				if err := walkSetVarDef(c, host, n, nonStickySeen); err != nil {
					return err
				}
				for i := 1; i < len(n.args); i += 2 {
					if err := walk(n.args[i]); err != nil {
						return err
					}
				}

				return nil
			}
			if n.name == "getJanusValueQuietly" {
				if len(n.args) != 1 {
					return ErrWrongArgCount
				}

				return walk(n.args[0])
			}
			for _, a := range n.args {
				if err := walk(a); err != nil {
					return err
				}
			}

			return nil
		default:
			return nil
		}
	}

	for _, s := range stmts {
		if s.assignTarget != "" && s.assignTarget != ownerID {
			if _, ok := host.IndexOf(s.assignTarget); ok {
				return nil, ErrAssignToOtherVariable
			}
		}
		if err := walk(s.value); err != nil {
			return nil, err
		}
	}

	return c, nil
}

func walkSetVarDef(c *Compiled, host Host, call callExpr, nonStickySeen map[int]bool) error {
	if len(call.args)%2 != 0 || len(call.args) == 0 {
		return ErrSetVarDefOddArgs
	}
	sticky := call.name == "setVarDefSticky"
	for i := 0; i < len(call.args); i += 2 {
		target, ok := call.args[i].(identExpr)
		if !ok {
			return ErrSetVarDefNotIdent
		}
		idx, ok := host.IndexOf(target.name)
		if !ok {
			return ErrSetVarDefUnknownVar
		}
		if host.IsInput(idx) {
			return ErrSetVarDefOnInput
		}
		if sticky {
			c.sticky = append(c.sticky, target.name)
		} else if !nonStickySeen[idx] {
			nonStickySeen[idx] = true
			c.nonSticky = append(c.nonSticky, idx)
		}
	}

	return nil
}

// Run executes the compiled script against host, implementing
// variable.ScriptRunner structurally (package variable never imports
// script, so there is no direct interface satisfaction to declare here).
// Non-sticky setVarDef targets are snapshotted before execution and
// restored after, per spec.md §4.6's save/restore prologue/epilogue.
func (c *Compiled) Run(host Host) (cell.Value, bool, error) {
	snapshot := make(map[int]float64, len(c.nonSticky))
	for _, idx := range c.nonSticky {
		v, err := host.ValueOf(idx)
		if err != nil {
			return cell.Value{}, false, err
		}
		s, err := v.AsScalar()
		if err != nil {
			return cell.Value{}, false, err
		}
		snapshot[idx] = s
	}
	defer func() {
		for _, idx := range c.nonSticky {
			_ = host.SetScalar(idx, snapshot[idx])
		}
	}()

	ex := &executor{host: host, ownerID: c.ownerID, locals: map[string]float64{}}
	var last float64
	for _, s := range c.stmts {
		v, err := ex.eval(s.value)
		if err != nil {
			return cell.Value{}, false, err
		}
		last = v
		if s.assignTarget != "" {
			if s.assignTarget == c.ownerID {
				ex.selfAssigned = true
				ex.selfValue = v
			} else {
				ex.locals[s.assignTarget] = v
			}
		}
	}

	if ex.selfAssigned {
		return cell.Scalar(ex.selfValue), true, nil
	}

	return cell.Scalar(last), false, nil
}

type executor struct {
	host         Host
	ownerID      string
	locals       map[string]float64
	selfAssigned bool
	selfValue    float64
}

func (ex *executor) eval(e scriptExpr) (float64, error) {
	switch n := e.(type) {
	case numberExpr:
		return n.value, nil
	case identExpr:
		return ex.resolveIdent(n.name)
	case unaryExpr:
		x, err := ex.eval(n.x)
		if err != nil {
			return 0, err
		}
		switch n.op {
		case tokMinus:
			return -x, nil
		case tokNot:
			return boolToFloat(x == 0), nil
		}

		return 0, ErrUnexpectedToken
	case binaryExpr:
		return ex.evalBinary(n)
	case callExpr:
		return ex.evalCall(n)
	default:
		return 0, ErrUnexpectedToken
	}
}

func (ex *executor) resolveIdent(name string) (float64, error) {
	if name == ex.ownerID {
		if ex.selfAssigned {
			return ex.selfValue, nil
		}
		v, err := ex.host.ValueOf(mustIndex(ex.host, name))
		if err != nil {
			return 0, err
		}

		return v.AsScalar()
	}
	if v, ok := ex.locals[name]; ok {
		return v, nil
	}
	if idx, ok := ex.host.IndexOf(name); ok {
		v, err := ex.host.ValueOf(idx)
		if err != nil {
			return 0, err
		}

		return v.AsScalar()
	}

	return 0, ErrUnknownSymbol
}

func mustIndex(host Host, name string) int {
	idx, _ := host.IndexOf(name)

	return idx
}

func (ex *executor) evalBinary(n binaryExpr) (float64, error) {
	a, err := ex.eval(n.a)
	if err != nil {
		return 0, err
	}
	if n.op == tokAnd {
		if a == 0 {
			return 0, nil
		}
		b, err := ex.eval(n.b)

		return boolToFloat(b != 0), err
	}
	if n.op == tokOr {
		if a != 0 {
			return 1, nil
		}
		b, err := ex.eval(n.b)

		return boolToFloat(b != 0), err
	}
	b, err := ex.eval(n.b)
	if err != nil {
		return 0, err
	}
	switch n.op {
	case tokPlus:
		return a + b, nil
	case tokMinus:
		return a - b, nil
	case tokStar:
		return a * b, nil
	case tokSlash:
		return a / b, nil
	case tokPercent:
		return float64(int64(a) % int64(b)), nil
	case tokCaret:
		r, err := builtins["pow"]([]float64{a, b})

		return r, err
	case tokEq:
		return boolToFloat(a == b), nil
	case tokNeq:
		return boolToFloat(a != b), nil
	case tokLt:
		return boolToFloat(a < b), nil
	case tokLe:
		return boolToFloat(a <= b), nil
	case tokGt:
		return boolToFloat(a > b), nil
	case tokGe:
		return boolToFloat(a >= b), nil
	default:
		return 0, ErrUnexpectedToken
	}
}

func (ex *executor) evalCall(n callExpr) (float64, error) {
	if n.name == "setVarDef" || n.name == "setVarDefSticky" {
		for i := 0; i < len(n.args); i += 2 {
			target, ok := n.args[i].(identExpr)
			if !ok {
				return 0, ErrSetVarDefNotIdent
			}
			val, err := ex.eval(n.args[i+1])
			if err != nil {
				return 0, err
			}
			idx, _ := ex.host.IndexOf(target.name)
			if err := ex.host.SetScalar(idx, val); err != nil {
				return 0, err
			}
		}

		return 0, nil
	}
	if n.name == "getJanusValueQuietly" {
		id, ok := n.args[0].(identExpr)
		if !ok {
			return 0, ErrSetVarDefNotIdent
		}

		return ex.resolveIdent(id.name)
	}

	fn, ok := builtins[n.name]
	if !ok {
		return 0, ErrUnknownFunction
	}
	args := make([]float64, len(n.args))
	for i, a := range n.args {
		v, err := ex.eval(a)
		if err != nil {
			return 0, err
		}
		args[i] = v
	}

	return fn(args)
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}

	return 0
}
