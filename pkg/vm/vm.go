// Package vm is Grove's Go-native embedding surface: everything a host
// application needs to load a script, register callable host functions,
// seed globals, and run code under an instruction budget. cmd/libgrove
// wraps this package behind a cgo C ABI; a pure-Go host can use it
// directly.
package vm

import (
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/groveembed/grove/internal/interp"
	"github.com/groveembed/grove/internal/parser"
	"github.com/groveembed/grove/pkg/groveerr"
	"github.com/groveembed/grove/pkg/value"
)

// VM is one Grove execution context. It is not safe for concurrent use —
// Grove scripts run single-threaded and cooperatively, and so does the
// VM that hosts them.
type VM struct {
	id      uuid.UUID
	interp  *interp.Interp
	logger  zerolog.Logger
	lastErr *groveerr.Error
}

// New returns a freshly initialized VM with the default instruction
// budget and no registered host functions or globals.
func New() *VM {
	id := uuid.New()
	v := &VM{
		id:     id,
		interp: interp.New(),
		logger: log.With().Str("vm_id", id.String()).Logger(),
	}
	v.logger.Debug().Msg("vm created")
	return v
}

// SetInstructionLimit overrides the per-Eval instruction budget.
func (v *VM) SetInstructionLimit(limit uint64) {
	v.logger.Debug().Uint64("limit", limit).Msg("instruction limit set")
	v.interp.SetInstructionLimit(limit)
}

// RegisterFn exposes a Go function to scripts under name.
func (v *VM) RegisterFn(name string, fn func(args []value.Value) (value.Value, error)) {
	v.logger.Debug().Str("name", name).Msg("host function registered")
	v.interp.RegisterFn(name, interp.HostFn(fn))
}

// SetGlobalNumber binds a numeric global visible to scripts.
func (v *VM) SetGlobalNumber(name string, n float64) {
	v.interp.SetGlobal(name, value.Number(n))
}

// SetGlobalString binds a string global visible to scripts.
func (v *VM) SetGlobalString(name string, s string) {
	v.interp.SetGlobal(name, value.String(s))
}

// SetGlobalVec3 binds a vec3 global visible to scripts.
func (v *VM) SetGlobalVec3(name string, x, y, z float64) {
	v.interp.SetGlobal(name, value.MakeVec3(x, y, z))
}

// Eval lexes, parses, and executes source. On failure it records the
// error (retrievable via LastError/LastErrorLine) and returns it.
func (v *VM) Eval(source string) error {
	v.logger.Debug().Int("len", len(source)).Msg("eval started")
	v.lastErr = nil

	if !utf8.ValidString(source) {
		err := groveerr.SyntaxErr("source is not valid UTF-8", 1, 1)
		v.recordError(err)
		return err
	}

	program, err := parser.Parse(source)
	if err != nil {
		v.recordError(err)
		return err
	}

	if _, err := v.interp.Execute(program); err != nil {
		v.recordError(err)
		return err
	}

	v.logger.Debug().Msg("eval finished")
	return nil
}

func (v *VM) recordError(err error) {
	if ge, ok := groveerr.As(err); ok {
		v.lastErr = ge
		v.logger.Warn().
			Str("kind", ge.Kind.String()).
			Int("line", ge.Line).
			Int("column", ge.Column).
			Msg(ge.Message)
		if ge.Kind == groveerr.InstructionLimit {
			v.logger.Error().Msg("instruction limit tripped")
		}
		return
	}
	v.lastErr = groveerr.RuntimeErr(err.Error(), 0, 0)
}

// LastError returns the most recent Eval error, or nil if the last Eval
// succeeded (or none has run yet).
func (v *VM) LastError() *groveerr.Error {
	return v.lastErr
}

// LastErrorLine returns the source line of the most recent Eval error, or
// 0 if there is none.
func (v *VM) LastErrorLine() int {
	if v.lastErr == nil {
		return 0
	}
	return v.lastErr.Line
}
