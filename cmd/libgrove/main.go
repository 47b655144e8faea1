// Command libgrove builds Grove's C ABI: a shared library (or static
// archive) a host application written in C, C++, or any language with a
// C FFI can link against to embed the Grove interpreter.
//
// The opaque VM handle described by the embedding boundary is realized
// here as a runtime/cgo.Handle carried across the boundary as a uintptr,
// rather than a raw Go pointer cast to void* — cgo forbids a C caller
// from retaining a Go pointer past the call that produced it, and a
// cgo.Handle is the sanctioned way to hand the C side something it can
// hold onto and pass back later.
package main

/*
#include <stdint.h>
#include <stdlib.h>

typedef struct GroveValue {
	int32_t tag;
	double number;
	const char* string_ptr;
	uint32_t string_len;
	double vec3_x;
	double vec3_y;
	double vec3_z;
} GroveValue;

typedef int32_t (*GroveHostFn)(const GroveValue* args, uint32_t arg_count, GroveValue* result, void* userdata);

static int32_t callGroveHostFn(GroveHostFn fn, const GroveValue* args, uint32_t arg_count, GroveValue* result, void* userdata) {
	return fn(args, arg_count, result, userdata);
}
*/
import "C"

import (
	"runtime/cgo"
	"unsafe"

	"github.com/groveembed/grove/pkg/groveerr"
	"github.com/groveembed/grove/pkg/value"
	"github.com/groveembed/grove/pkg/vm"
)

// Tag values mirror GroveValueTag from the embedding boundary: Nil=0,
// Bool=1, Number=2, String=3, Vec3=4, Object=5. Array and Table have no
// FFI representation and marshal outbound as Nil.
const (
	tagNil    = 0
	tagBool   = 1
	tagNumber = 2
	tagString = 3
	tagVec3   = 4
	tagObject = 5
)

type vmState struct {
	vm *vm.VM
	// tempStrings keeps the C strings returned by grove_last_error alive
	// until the next grove_eval or grove_destroy on this handle. Host-fn
	// argument strings (GroveValue.string_ptr) are not kept here; they are
	// freed as soon as the callback returns.
	tempStrings []*C.char
}

func handleFor(h C.uintptr_t) *vmState {
	if h == 0 {
		return nil
	}
	v := cgo.Handle(h).Value()
	state, ok := v.(*vmState)
	if !ok {
		return nil
	}
	return state
}

//export grove_new
func grove_new() C.uintptr_t {
	state := &vmState{vm: vm.New()}
	return C.uintptr_t(cgo.NewHandle(state))
}

//export grove_destroy
func grove_destroy(h C.uintptr_t) {
	if h == 0 {
		return
	}
	handle := cgo.Handle(h)
	if state, ok := handle.Value().(*vmState); ok {
		state.freeTempStrings()
	}
	handle.Delete()
}

func (s *vmState) freeTempStrings() {
	for _, p := range s.tempStrings {
		C.free(unsafe.Pointer(p))
	}
	s.tempStrings = nil
}

//export grove_eval
func grove_eval(h C.uintptr_t, source *C.char) C.int32_t {
	state := handleFor(h)
	if state == nil || source == nil {
		return -1
	}
	state.freeTempStrings()
	if err := state.vm.Eval(C.GoString(source)); err != nil {
		return -1
	}
	return 0
}

//export grove_last_error
func grove_last_error(h C.uintptr_t) *C.char {
	state := handleFor(h)
	if state == nil {
		return nil
	}
	ge := state.vm.LastError()
	if ge == nil {
		return nil
	}
	cstr := C.CString(ge.Error())
	state.tempStrings = append(state.tempStrings, cstr)
	return cstr
}

//export grove_last_error_line
func grove_last_error_line(h C.uintptr_t) C.int32_t {
	state := handleFor(h)
	if state == nil {
		return 0
	}
	return C.int32_t(state.vm.LastErrorLine())
}

//export grove_set_instruction_limit
func grove_set_instruction_limit(h C.uintptr_t, limit C.uint64_t) {
	state := handleFor(h)
	if state == nil {
		return
	}
	state.vm.SetInstructionLimit(uint64(limit))
}

//export grove_set_global_number
func grove_set_global_number(h C.uintptr_t, name *C.char, n C.double) {
	state := handleFor(h)
	if state == nil || name == nil {
		return
	}
	state.vm.SetGlobalNumber(C.GoString(name), float64(n))
}

//export grove_set_global_string
func grove_set_global_string(h C.uintptr_t, name *C.char, s *C.char) {
	state := handleFor(h)
	if state == nil || name == nil || s == nil {
		return
	}
	state.vm.SetGlobalString(C.GoString(name), C.GoString(s))
}

//export grove_set_global_vec3
func grove_set_global_vec3(h C.uintptr_t, name *C.char, x, y, z C.double) {
	state := handleFor(h)
	if state == nil || name == nil {
		return
	}
	state.vm.SetGlobalVec3(C.GoString(name), float64(x), float64(y), float64(z))
}

//export grove_register_fn
func grove_register_fn(h C.uintptr_t, name *C.char, fn C.GroveHostFn, userdata unsafe.Pointer) {
	state := handleFor(h)
	if state == nil || name == nil || fn == nil {
		return
	}
	goName := C.GoString(name)
	state.vm.RegisterFn(goName, func(args []value.Value) (value.Value, error) {
		cArgs := make([]C.GroveValue, len(args))
		var keepAlive []*C.char
		for i, a := range args {
			cv, cstr := valueToGroveValue(a)
			cArgs[i] = cv
			if cstr != nil {
				keepAlive = append(keepAlive, cstr)
			}
		}
		defer func() {
			for _, p := range keepAlive {
				C.free(unsafe.Pointer(p))
			}
		}()

		var cResult C.GroveValue
		var argsPtr *C.GroveValue
		if len(cArgs) > 0 {
			argsPtr = &cArgs[0]
		}
		rc := C.callGroveHostFn(fn, argsPtr, C.uint32_t(len(cArgs)), &cResult, userdata)
		if rc != 0 {
			return value.Nil, groveerr.RuntimeErr("host function call failed", 0, 0)
		}
		return groveValueToValue(cResult), nil
	})
}

// valueToGroveValue marshals a Go value.Value into the C-compatible
// GroveValue struct. Array and Table have no FFI form and cross as Nil.
func valueToGroveValue(v value.Value) (C.GroveValue, *C.char) {
	var out C.GroveValue
	switch v.Kind {
	case value.KindNil, value.KindArray, value.KindTable:
		out.tag = tagNil
	case value.KindBool:
		out.tag = tagBool
		if v.Bool {
			out.number = 1
		}
	case value.KindNumber:
		out.tag = tagNumber
		out.number = C.double(v.Number)
	case value.KindString:
		out.tag = tagString
		cstr := C.CString(v.Str)
		out.string_ptr = cstr
		out.string_len = C.uint32_t(len(v.Str))
		return out, cstr
	case value.KindVec3:
		out.tag = tagVec3
		out.vec3_x = C.double(v.Vec3.X)
		out.vec3_y = C.double(v.Vec3.Y)
		out.vec3_z = C.double(v.Vec3.Z)
	case value.KindObject:
		out.tag = tagObject
		out.number = C.double(v.Object)
	default:
		out.tag = tagNil
	}
	return out, nil
}

// groveValueToValue marshals a C-supplied GroveValue back into a Go
// value.Value. Inbound strings are copied immediately into an owned Go
// string — the C memory backing string_ptr is not guaranteed to outlive
// this call.
func groveValueToValue(gv C.GroveValue) value.Value {
	switch gv.tag {
	case tagNil:
		return value.Nil
	case tagBool:
		return value.Bool(gv.number != 0)
	case tagNumber:
		return value.Number(float64(gv.number))
	case tagString:
		if gv.string_ptr == nil {
			return value.String("")
		}
		return value.String(C.GoStringN(gv.string_ptr, C.int(gv.string_len)))
	case tagVec3:
		return value.MakeVec3(float64(gv.vec3_x), float64(gv.vec3_y), float64(gv.vec3_z))
	case tagObject:
		return value.MakeObject(uint64(gv.number))
	default:
		return value.Nil
	}
}

func main() {}
