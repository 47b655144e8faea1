// Package interp implements Grove's tree-walking interpreter: statement
// execution, expression evaluation, and the instruction-budget sandbox
// that bounds how much script code a single Eval call may run.
package interp

import (
	"fmt"
	"math"

	"github.com/groveembed/grove/internal/ast"
	"github.com/groveembed/grove/internal/environment"
	"github.com/groveembed/grove/pkg/groveerr"
	"github.com/groveembed/grove/pkg/value"
)

// DefaultInstructionLimit bounds a single Execute call absent any
// host-configured override.
const DefaultInstructionLimit = 1_000_000

// HostFn is a native function exposed to scripts, registered by name.
type HostFn func(args []value.Value) (value.Value, error)

type blueprintDef struct {
	params []string
	body   []ast.Stmt
}

// cfKind distinguishes the three non-local control signals a statement
// can produce. Control flow is modeled as an optional signal returned
// alongside an error, not as a panicking unwind.
type cfKind int

const (
	cfNone cfKind = iota
	cfReturn
	cfBreak
	cfContinue
)

type controlFlow struct {
	kind  cfKind
	value value.Value
}

// Interp is a single Grove execution context: its global/local scope
// stack, registered host functions, defined blueprints, and the
// instruction budget for the current Execute call.
type Interp struct {
	env              *environment.Environment
	hostFns          map[string]HostFn
	blueprints       map[string]blueprintDef
	instructionCount uint64
	instructionLimit uint64
}

// New returns an Interp with an empty global scope and the default
// instruction limit.
func New() *Interp {
	return &Interp{
		env:              environment.New(),
		hostFns:          make(map[string]HostFn),
		blueprints:       make(map[string]blueprintDef),
		instructionLimit: DefaultInstructionLimit,
	}
}

// SetInstructionLimit overrides the default instruction budget. A limit
// of 0 is honored literally — the very first tick trips it.
func (in *Interp) SetInstructionLimit(limit uint64) {
	in.instructionLimit = limit
}

// RegisterFn exposes a Go function to scripts under name, callable as
// name(args...) in expression position.
func (in *Interp) RegisterFn(name string, fn HostFn) {
	in.hostFns[name] = fn
}

// SetGlobal binds name to v in the outermost (global) scope.
func (in *Interp) SetGlobal(name string, v value.Value) {
	in.env.Define(name, v)
}

// Execute runs every statement in program in order and returns the value
// of an explicit top-level `return`, or Nil if the program runs to
// completion without one. A `break`/`continue` reaching the top level is
// a Runtime error, since there is no enclosing loop to target.
func (in *Interp) Execute(program *ast.Program) (value.Value, error) {
	in.instructionCount = 0
	for _, stmt := range program.Statements {
		cf, err := in.execStmt(stmt)
		if err != nil {
			return value.Nil, err
		}
		if cf != nil {
			switch cf.kind {
			case cfReturn:
				return cf.value, nil
			case cfBreak, cfContinue:
				return value.Nil, groveerr.RuntimeErr("break/continue outside of loop", 0, 0)
			}
		}
	}
	return value.Nil, nil
}

func (in *Interp) tick(line, col int) error {
	in.instructionCount++
	if in.instructionCount > in.instructionLimit {
		return groveerr.InstructionLimitErr(line, col)
	}
	return nil
}

// execBlock pushes a fresh scope, runs stmts in it, and pops the scope
// whether or not a control-flow signal or error propagated out.
func (in *Interp) execBlock(stmts []ast.Stmt) (*controlFlow, error) {
	in.env.PushScope()
	cf, err := in.execBlockNoScope(stmts)
	in.env.PopScope()
	return cf, err
}

func (in *Interp) execBlockNoScope(stmts []ast.Stmt) (*controlFlow, error) {
	for _, stmt := range stmts {
		cf, err := in.execStmt(stmt)
		if err != nil {
			return nil, err
		}
		if cf != nil {
			return cf, nil
		}
	}
	return nil, nil
}

func (in *Interp) execStmt(stmt ast.Stmt) (*controlFlow, error) {
	switch s := stmt.(type) {
	case *ast.LocalDecl:
		return in.execLocalDecl(s)
	case *ast.Assign:
		return in.execAssign(s)
	case *ast.ExprStmt:
		if err := in.tick(s.S.Line, s.S.Column); err != nil {
			return nil, err
		}
		_, err := in.evalExpr(s.X)
		return nil, err
	case *ast.If:
		return in.execIf(s)
	case *ast.While:
		return in.execWhile(s)
	case *ast.NumericFor:
		return in.execNumericFor(s)
	case *ast.GenericFor:
		// Unimplemented: fails immediately, without consuming a tick.
		return nil, groveerr.RuntimeErr("generic for not yet implemented", s.S.Line, s.S.Column)
	case *ast.RepeatUntil:
		return in.execRepeatUntil(s)
	case *ast.Blueprint:
		if err := in.tick(s.S.Line, s.S.Column); err != nil {
			return nil, err
		}
		in.blueprints[s.Name] = blueprintDef{params: s.Params, body: s.Body}
		return nil, nil
	case *ast.Build:
		return in.execBuild(s)
	case *ast.Return:
		if err := in.tick(s.S.Line, s.S.Column); err != nil {
			return nil, err
		}
		val := value.Nil
		if s.Value != nil {
			v, err := in.evalExpr(s.Value)
			if err != nil {
				return nil, err
			}
			val = v
		}
		return &controlFlow{kind: cfReturn, value: val}, nil
	case *ast.Break:
		if err := in.tick(s.S.Line, s.S.Column); err != nil {
			return nil, err
		}
		return &controlFlow{kind: cfBreak}, nil
	case *ast.Continue:
		if err := in.tick(s.S.Line, s.S.Column); err != nil {
			return nil, err
		}
		return &controlFlow{kind: cfContinue}, nil
	default:
		return nil, groveerr.RuntimeErr(fmt.Sprintf("unhandled statement type %T", stmt), 0, 0)
	}
}

func (in *Interp) execLocalDecl(s *ast.LocalDecl) (*controlFlow, error) {
	if err := in.tick(s.S.Line, s.S.Column); err != nil {
		return nil, err
	}
	val := value.Nil
	if s.Init != nil {
		v, err := in.evalExpr(s.Init)
		if err != nil {
			return nil, err
		}
		val = v
	}
	in.env.Define(s.Name, val)
	return nil, nil
}

func (in *Interp) execAssign(s *ast.Assign) (*controlFlow, error) {
	if err := in.tick(s.S.Line, s.S.Column); err != nil {
		return nil, err
	}
	val, err := in.evalExpr(s.Value)
	if err != nil {
		return nil, err
	}

	switch target := s.Target.(type) {
	case *ast.Ident:
		if !in.env.Set(target.Name, val) {
			return nil, groveerr.NameErr(fmt.Sprintf("undefined variable '%s'", target.Name), target.S.Line, target.S.Column)
		}
		return nil, nil

	case *ast.FieldAccess:
		obj, err := in.evalExpr(target.Object)
		if err != nil {
			return nil, err
		}
		if obj.Kind != value.KindTable {
			return nil, groveerr.TypeErr(fmt.Sprintf("cannot set field '%s' on %s", target.Field, obj.TypeName()), target.S.Line, target.S.Column)
		}
		updated := cloneTable(obj.Table)
		updated[target.Field] = val
		return nil, in.setValueAt(target.Object, value.MakeTable(updated))

	case *ast.IndexAccess:
		idx, err := in.evalExpr(target.Index)
		if err != nil {
			return nil, err
		}
		obj, err := in.evalExpr(target.Object)
		if err != nil {
			return nil, err
		}
		switch {
		case obj.Kind == value.KindArray && idx.Kind == value.KindNumber:
			i := int(idx.Number)
			if i < 0 || i >= len(obj.Array) {
				return nil, groveerr.RuntimeErr(fmt.Sprintf("array index %d out of bounds (len %d)", i, len(obj.Array)), target.S.Line, target.S.Column)
			}
			updated := append([]value.Value(nil), obj.Array...)
			updated[i] = val
			return nil, in.setValueAt(target.Object, value.MakeArray(updated))
		case obj.Kind == value.KindTable && idx.Kind == value.KindString:
			updated := cloneTable(obj.Table)
			updated[idx.Str] = val
			return nil, in.setValueAt(target.Object, value.MakeTable(updated))
		default:
			return nil, groveerr.TypeErr(fmt.Sprintf("cannot index %s with %s", obj.TypeName(), idx.TypeName()), target.S.Line, target.S.Column)
		}

	default:
		return nil, groveerr.RuntimeErr("invalid assignment target", s.S.Line, s.S.Column)
	}
}

func cloneTable(t map[string]value.Value) map[string]value.Value {
	out := make(map[string]value.Value, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

// setValueAt writes value back into the binding that produced expr. Only
// a simple identifier target is supported — any deeper path (a.b.c, or an
// indexed/field base that is itself a field/index access) silently does
// nothing, matching the documented limitation that nested assignment only
// updates the outermost binding.
func (in *Interp) setValueAt(expr ast.Expr, val value.Value) error {
	if id, ok := expr.(*ast.Ident); ok {
		if !in.env.Set(id.Name, val) {
			return groveerr.NameErr(fmt.Sprintf("undefined variable '%s'", id.Name), id.S.Line, id.S.Column)
		}
		return nil
	}
	return nil
}

func (in *Interp) execIf(s *ast.If) (*controlFlow, error) {
	if err := in.tick(s.S.Line, s.S.Column); err != nil {
		return nil, err
	}
	cond, err := in.evalExpr(s.Condition)
	if err != nil {
		return nil, err
	}
	if cond.IsTruthy() {
		return in.execBlock(s.ThenBody)
	}
	for _, clause := range s.ElseIfClauses {
		cv, err := in.evalExpr(clause.Condition)
		if err != nil {
			return nil, err
		}
		if cv.IsTruthy() {
			return in.execBlock(clause.Body)
		}
	}
	if s.ElseBody != nil {
		return in.execBlock(s.ElseBody)
	}
	return nil, nil
}

// execWhile ticks once before the loop begins and once more at the
// bottom of every iteration, so N iterations cost N+1 instructions.
func (in *Interp) execWhile(s *ast.While) (*controlFlow, error) {
	if err := in.tick(s.S.Line, s.S.Column); err != nil {
		return nil, err
	}
	for {
		cond, err := in.evalExpr(s.Condition)
		if err != nil {
			return nil, err
		}
		if !cond.IsTruthy() {
			break
		}
		cf, err := in.execBlock(s.Body)
		if err != nil {
			return nil, err
		}
		if cf != nil {
			switch cf.kind {
			case cfBreak:
				return nil, nil
			case cfContinue:
				// fall through to the bottom-of-iteration tick below
			case cfReturn:
				return cf, nil
			}
		}
		if err := in.tick(s.S.Line, s.S.Column); err != nil {
			return nil, err
		}
	}
	return nil, nil
}

// execNumericFor pushes exactly one scope for the whole loop and
// redefines the induction variable in that same scope every iteration —
// the body does not get its own nested scope per iteration.
func (in *Interp) execNumericFor(s *ast.NumericFor) (*controlFlow, error) {
	if err := in.tick(s.S.Line, s.S.Column); err != nil {
		return nil, err
	}
	startV, err := in.evalExpr(s.Start)
	if err != nil {
		return nil, err
	}
	start, ok := startV.AsNumber()
	if !ok {
		return nil, groveerr.TypeErr("for start/limit must be a number", s.S.Line, s.S.Column)
	}
	limitV, err := in.evalExpr(s.Limit)
	if err != nil {
		return nil, err
	}
	limit, ok := limitV.AsNumber()
	if !ok {
		return nil, groveerr.TypeErr("for start/limit must be a number", s.S.Line, s.S.Column)
	}
	step := 1.0
	if s.Step != nil {
		stepV, err := in.evalExpr(s.Step)
		if err != nil {
			return nil, err
		}
		step, ok = stepV.AsNumber()
		if !ok {
			return nil, groveerr.TypeErr("for step must be a number", s.S.Line, s.S.Column)
		}
	}
	if step == 0 {
		return nil, groveerr.RuntimeErr("for step cannot be zero", s.S.Line, s.S.Column)
	}

	in.env.PushScope()
	defer in.env.PopScope()

	for i := start; (step > 0 && i <= limit) || (step < 0 && i >= limit); i += step {
		in.env.Define(s.Var, value.Number(i))
		if err := in.tick(s.S.Line, s.S.Column); err != nil {
			return nil, err
		}
		cf, err := in.execBlockNoScope(s.Body)
		if err != nil {
			return nil, err
		}
		if cf != nil {
			switch cf.kind {
			case cfBreak:
				return nil, nil
			case cfContinue:
				// continue to the increment
			case cfReturn:
				return cf, nil
			}
		}
	}
	return nil, nil
}

// execRepeatUntil ticks once before the loop begins and once more each
// time the until-condition is false and the loop goes around again, so N
// iterations cost N instructions (execWhile, which also ticks after its
// final iteration, costs N+1).
func (in *Interp) execRepeatUntil(s *ast.RepeatUntil) (*controlFlow, error) {
	if err := in.tick(s.S.Line, s.S.Column); err != nil {
		return nil, err
	}
	for {
		cf, err := in.execBlock(s.Body)
		if err != nil {
			return nil, err
		}
		if cf != nil {
			switch cf.kind {
			case cfBreak:
				return nil, nil
			case cfContinue:
				// fall through to the until-condition check below
			case cfReturn:
				return cf, nil
			}
		}
		cond, err := in.evalExpr(s.Condition)
		if err != nil {
			return nil, err
		}
		if cond.IsTruthy() {
			break
		}
		if err := in.tick(s.S.Line, s.S.Column); err != nil {
			return nil, err
		}
	}
	return nil, nil
}

func (in *Interp) execBuild(s *ast.Build) (*controlFlow, error) {
	if err := in.tick(s.S.Line, s.S.Column); err != nil {
		return nil, err
	}
	bp, ok := in.blueprints[s.Name]
	if !ok {
		return nil, groveerr.NameErr(fmt.Sprintf("undefined blueprint '%s'", s.Name), s.S.Line, s.S.Column)
	}
	args := make([]value.Value, len(s.Args))
	for i, a := range s.Args {
		v, err := in.evalExpr(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	_, err := in.callBlueprint(bp, args)
	return nil, err
}

// callBlueprint binds params positionally (missing trailing args default
// to Nil, extra args are silently ignored), runs the body in a fresh
// scope, and returns the value of an explicit `return` or Nil otherwise —
// including when a bare break/continue escapes the body unguarded by a
// loop inside it.
func (in *Interp) callBlueprint(bp blueprintDef, args []value.Value) (value.Value, error) {
	in.env.PushScope()
	defer in.env.PopScope()

	for i, name := range bp.params {
		if i < len(args) {
			in.env.Define(name, args[i])
		} else {
			in.env.Define(name, value.Nil)
		}
	}

	cf, err := in.execBlockNoScope(bp.body)
	if err != nil {
		return value.Nil, err
	}
	if cf != nil && cf.kind == cfReturn {
		return cf.value, nil
	}
	return value.Nil, nil
}

func exprName(expr ast.Expr) string {
	if id, ok := expr.(*ast.Ident); ok {
		return id.Name
	}
	return "<expression>"
}

func (in *Interp) evalExpr(expr ast.Expr) (value.Value, error) {
	switch e := expr.(type) {
	case *ast.NumberLit:
		return value.Number(e.Value), nil
	case *ast.StringLit:
		return value.String(e.Value), nil
	case *ast.BoolLit:
		return value.Bool(e.Value), nil
	case *ast.NilLit:
		return value.Nil, nil
	case *ast.Ident:
		v, ok := in.env.Get(e.Name)
		if !ok {
			return value.Nil, groveerr.NameErr(fmt.Sprintf("undefined variable '%s'", e.Name), e.S.Line, e.S.Column)
		}
		return v, nil
	case *ast.BinaryOp:
		return in.evalBinaryExpr(e)
	case *ast.UnaryOpExpr:
		return in.evalUnary(e)
	case *ast.Call:
		return in.evalCall(e)
	case *ast.FieldAccess:
		return in.evalFieldAccess(e)
	case *ast.IndexAccess:
		return in.evalIndexAccess(e)
	case *ast.MethodCall:
		return in.evalMethodCall(e)
	case *ast.ArrayLit:
		elems := make([]value.Value, len(e.Elements))
		for i, el := range e.Elements {
			v, err := in.evalExpr(el)
			if err != nil {
				return value.Nil, err
			}
			elems[i] = v
		}
		return value.MakeArray(elems), nil
	case *ast.TableLit:
		fields := make(map[string]value.Value, len(e.Fields))
		for _, f := range e.Fields {
			v, err := in.evalExpr(f.Value)
			if err != nil {
				return value.Nil, err
			}
			fields[f.Key] = v
		}
		return value.MakeTable(fields), nil
	default:
		return value.Nil, groveerr.RuntimeErr(fmt.Sprintf("unhandled expression type %T", expr), 0, 0)
	}
}

// evalBinaryExpr intercepts And/Or for short-circuit evaluation before
// falling through to the general binary-operator dispatch. And/Or return
// whichever operand decided the result as-is, not coerced to a bool.
func (in *Interp) evalBinaryExpr(e *ast.BinaryOp) (value.Value, error) {
	if e.Op == ast.And {
		left, err := in.evalExpr(e.Left)
		if err != nil {
			return value.Nil, err
		}
		if !left.IsTruthy() {
			return left, nil
		}
		return in.evalExpr(e.Right)
	}
	if e.Op == ast.Or {
		left, err := in.evalExpr(e.Left)
		if err != nil {
			return value.Nil, err
		}
		if left.IsTruthy() {
			return left, nil
		}
		return in.evalExpr(e.Right)
	}

	left, err := in.evalExpr(e.Left)
	if err != nil {
		return value.Nil, err
	}
	right, err := in.evalExpr(e.Right)
	if err != nil {
		return value.Nil, err
	}
	return evalBinaryOp(e.Op, left, right, e.S.Line, e.S.Column)
}

func (in *Interp) evalUnary(e *ast.UnaryOpExpr) (value.Value, error) {
	operand, err := in.evalExpr(e.Operand)
	if err != nil {
		return value.Nil, err
	}
	switch e.Op {
	case ast.Neg:
		n, ok := operand.AsNumber()
		if !ok {
			return value.Nil, groveerr.TypeErr(fmt.Sprintf("cannot negate %s", operand.TypeName()), e.S.Line, e.S.Column)
		}
		return value.Number(-n), nil
	case ast.Not:
		return value.Bool(!operand.IsTruthy()), nil
	case ast.Len:
		switch operand.Kind {
		case value.KindString:
			return value.Number(float64(len(operand.Str))), nil
		case value.KindArray:
			return value.Number(float64(len(operand.Array))), nil
		case value.KindTable:
			return value.Number(float64(len(operand.Table))), nil
		default:
			return value.Nil, groveerr.TypeErr(fmt.Sprintf("cannot get length of %s", operand.TypeName()), e.S.Line, e.S.Column)
		}
	default:
		return value.Nil, groveerr.RuntimeErr("unknown unary operator", e.S.Line, e.S.Column)
	}
}

func (in *Interp) evalCall(e *ast.Call) (value.Value, error) {
	args := make([]value.Value, len(e.Args))
	for i, a := range e.Args {
		v, err := in.evalExpr(a)
		if err != nil {
			return value.Nil, err
		}
		args[i] = v
	}

	name := exprName(e.Callee)

	if name == "vec3" {
		return builtinVec3(args, e.S.Line, e.S.Column)
	}
	if fn, ok := in.hostFns[name]; ok {
		v, err := fn(args)
		if err != nil {
			return value.Nil, groveerr.RuntimeErr(err.Error(), e.S.Line, e.S.Column)
		}
		return v, nil
	}
	if bp, ok := in.blueprints[name]; ok {
		return in.callBlueprint(bp, args)
	}
	return value.Nil, groveerr.NameErr(fmt.Sprintf("undefined function '%s'", name), e.S.Line, e.S.Column)
}

func (in *Interp) evalFieldAccess(e *ast.FieldAccess) (value.Value, error) {
	obj, err := in.evalExpr(e.Object)
	if err != nil {
		return value.Nil, err
	}
	switch obj.Kind {
	case value.KindVec3:
		switch e.Field {
		case "x":
			return value.Number(obj.Vec3.X), nil
		case "y":
			return value.Number(obj.Vec3.Y), nil
		case "z":
			return value.Number(obj.Vec3.Z), nil
		default:
			return value.Nil, groveerr.RuntimeErr(fmt.Sprintf("vec3 has no field '%s'", e.Field), e.S.Line, e.S.Column)
		}
	case value.KindTable:
		if v, ok := obj.Table[e.Field]; ok {
			return v, nil
		}
		return value.Nil, nil
	default:
		return value.Nil, groveerr.TypeErr(fmt.Sprintf("cannot access field '%s' on %s", e.Field, obj.TypeName()), e.S.Line, e.S.Column)
	}
}

func (in *Interp) evalIndexAccess(e *ast.IndexAccess) (value.Value, error) {
	obj, err := in.evalExpr(e.Object)
	if err != nil {
		return value.Nil, err
	}
	idx, err := in.evalExpr(e.Index)
	if err != nil {
		return value.Nil, err
	}
	switch {
	case obj.Kind == value.KindArray && idx.Kind == value.KindNumber:
		i := int(idx.Number)
		if i < 0 || i >= len(obj.Array) {
			return value.Nil, nil
		}
		return obj.Array[i], nil
	case obj.Kind == value.KindTable && idx.Kind == value.KindString:
		if v, ok := obj.Table[idx.Str]; ok {
			return v, nil
		}
		return value.Nil, nil
	case obj.Kind == value.KindString && idx.Kind == value.KindNumber:
		runes := []rune(obj.Str)
		i := int(idx.Number)
		if i < 0 || i >= len(runes) {
			return value.Nil, nil
		}
		return value.String(string(runes[i])), nil
	default:
		return value.Nil, groveerr.TypeErr(fmt.Sprintf("cannot index %s with %s", obj.TypeName(), idx.TypeName()), e.S.Line, e.S.Column)
	}
}

func (in *Interp) evalMethodCall(e *ast.MethodCall) (value.Value, error) {
	obj, err := in.evalExpr(e.Object)
	if err != nil {
		return value.Nil, err
	}
	for _, a := range e.Args {
		if _, err := in.evalExpr(a); err != nil {
			return value.Nil, err
		}
	}
	return value.Nil, groveerr.RuntimeErr(fmt.Sprintf("method call '%s' on %s not yet implemented", e.Method, obj.TypeName()), e.S.Line, e.S.Column)
}

func builtinVec3(args []value.Value, line, col int) (value.Value, error) {
	if len(args) != 3 {
		return value.Nil, groveerr.RuntimeErr(fmt.Sprintf("vec3() expects 3 arguments, got %d", len(args)), line, col)
	}
	x, ok := args[0].AsNumber()
	if !ok {
		return value.Nil, groveerr.TypeErr("vec3 x/y/z must be a number", line, col)
	}
	y, ok := args[1].AsNumber()
	if !ok {
		return value.Nil, groveerr.TypeErr("vec3 x/y/z must be a number", line, col)
	}
	z, ok := args[2].AsNumber()
	if !ok {
		return value.Nil, groveerr.TypeErr("vec3 x/y/z must be a number", line, col)
	}
	return value.MakeVec3(x, y, z), nil
}

func evalBinaryOp(op ast.BinOp, left, right value.Value, line, col int) (value.Value, error) {
	switch op {
	case ast.Add:
		return numericOp(left, right, "+", func(a, b float64) float64 { return a + b }, line, col)
	case ast.Sub:
		return numericOp(left, right, "-", func(a, b float64) float64 { return a - b }, line, col)
	case ast.Mul:
		return numericOp(left, right, "*", func(a, b float64) float64 { return a * b }, line, col)
	case ast.Div:
		if left.Kind == value.KindNumber && right.Kind == value.KindNumber && right.Number == 0 {
			return value.Nil, groveerr.RuntimeErr("division by zero", line, col)
		}
		return numericOp(left, right, "/", func(a, b float64) float64 { return a / b }, line, col)
	case ast.Mod:
		return numericOp(left, right, "%", math.Mod, line, col)
	case ast.Pow:
		return numericOp(left, right, "^", math.Pow, line, col)
	case ast.Concat:
		return value.String(left.String() + right.String()), nil
	case ast.Eq:
		return value.Bool(value.Equal(left, right)), nil
	case ast.NotEq:
		return value.Bool(!value.Equal(left, right)), nil
	case ast.Lt:
		return compareOp(left, right, "<", func(a, b float64) bool { return a < b }, line, col)
	case ast.LtEq:
		return compareOp(left, right, "<=", func(a, b float64) bool { return a <= b }, line, col)
	case ast.Gt:
		return compareOp(left, right, ">", func(a, b float64) bool { return a > b }, line, col)
	case ast.GtEq:
		return compareOp(left, right, ">=", func(a, b float64) bool { return a >= b }, line, col)
	default:
		return value.Nil, groveerr.RuntimeErr("unreachable binary operator (and/or handled earlier)", line, col)
	}
}

// numericOp dispatches arithmetic by operand-kind pair: Number/Number
// always works; Vec3 componentwise +/- with another Vec3; Vec3 scaled by
// a Number via */÷; a Number scaled by a Vec3 only via * (not /, which
// has no defined Number/Vec3 form).
func numericOp(left, right value.Value, opName string, f func(a, b float64) float64, line, col int) (value.Value, error) {
	if left.Kind == value.KindNumber && right.Kind == value.KindNumber {
		return value.Number(f(left.Number, right.Number)), nil
	}
	if left.Kind == value.KindVec3 && right.Kind == value.KindVec3 && (opName == "+" || opName == "-") {
		return value.MakeVec3(
			f(left.Vec3.X, right.Vec3.X),
			f(left.Vec3.Y, right.Vec3.Y),
			f(left.Vec3.Z, right.Vec3.Z),
		), nil
	}
	if left.Kind == value.KindVec3 && right.Kind == value.KindNumber && (opName == "*" || opName == "/") {
		return value.MakeVec3(
			f(left.Vec3.X, right.Number),
			f(left.Vec3.Y, right.Number),
			f(left.Vec3.Z, right.Number),
		), nil
	}
	if left.Kind == value.KindNumber && right.Kind == value.KindVec3 && opName == "*" {
		return value.MakeVec3(
			f(left.Number, right.Vec3.X),
			f(left.Number, right.Vec3.Y),
			f(left.Number, right.Vec3.Z),
		), nil
	}
	return value.Nil, groveerr.TypeErr(fmt.Sprintf("cannot apply '%s' to %s and %s", opName, left.TypeName(), right.TypeName()), line, col)
}

func compareOp(left, right value.Value, opName string, f func(a, b float64) bool, line, col int) (value.Value, error) {
	if left.Kind == value.KindNumber && right.Kind == value.KindNumber {
		return value.Bool(f(left.Number, right.Number)), nil
	}
	if left.Kind == value.KindString && right.Kind == value.KindString {
		var cmp bool
		switch opName {
		case "<":
			cmp = left.Str < right.Str
		case "<=":
			cmp = left.Str <= right.Str
		case ">":
			cmp = left.Str > right.Str
		case ">=":
			cmp = left.Str >= right.Str
		}
		return value.Bool(cmp), nil
	}
	return value.Nil, groveerr.TypeErr(fmt.Sprintf("cannot compare %s and %s with '%s'", left.TypeName(), right.TypeName(), opName), line, col)
}
