package vm

import "fmt"

// Value is the tagged union {Nil, Bool, Number, String}. There is no
// generic "object" variant: strings are the only heap-ish payload in
// this language's scope, represented directly as an interned handle
// rather than through a trait-object pointer.
type Value interface{ isValue() }

func NewValue() Value { return VNil{} }

type VBool bool

func (VBool) isValue()         {}
func (v VBool) String() string { return fmt.Sprintf("%t", v) }

type VNil struct{}

func (VNil) isValue()         {}
func (VNil) String() string   { return "nil" }

type VNum float64

func (VNum) isValue()         {}
func (v VNum) String() string { return fmt.Sprintf("%g", float64(v)) }

// VStr is a string value: an opaque handle into a VM's Interner, never a
// raw Go string. Two VStrs compare equal iff their handles do, which is
// content equality because both come from the same Interner.
type VStr struct{ Handle StrHandle }

func (VStr) isValue()         {}
func (v VStr) String() string { return v.Handle.String() }

func NewVStr(it *Interner, s string) VStr { return VStr{Handle: it.Intern(s)} }

func VAdd(it *Interner, v, w Value) (res Value, ok bool) {
	res = NewValue()
	switch v := v.(type) {
	case VNum:
		if w, ok := w.(VNum); ok {
			return v + w, true
		}
	case VStr:
		if w, ok := w.(VStr); ok {
			return NewVStr(it, v.String()+w.String()), true
		}
	}
	return
}

func VSub(v, w Value) (res Value, ok bool) {
	res = NewValue()
	switch v := v.(type) {
	case VNum:
		switch w := w.(type) {
		case VNum:
			return v - w, true
		}
	}
	return
}

func VMul(v, w Value) (res Value, ok bool) {
	res = NewValue()
	switch v := v.(type) {
	case VNum:
		switch w := w.(type) {
		case VNum:
			return v * w, true
		}
	}
	return
}

func VDiv(v, w Value) (res Value, ok bool) {
	res = NewValue()
	switch v := v.(type) {
	case VNum:
		switch w := w.(type) {
		case VNum:
			return v / w, true
		}
	}
	return
}

func VGreater(v, w Value) (res Value, ok bool) {
	res = NewValue()
	switch v := v.(type) {
	case VNum:
		switch w := w.(type) {
		case VNum:
			return VBool(v > w), true
		}
	}
	return
}

func VLess(v, w Value) (res Value, ok bool) {
	res = NewValue()
	switch v := v.(type) {
	case VNum:
		switch w := w.(type) {
		case VNum:
			return VBool(v < w), true
		}
	}
	return
}

func VNeg(v Value) (res Value, ok bool) {
	res = NewValue()
	switch v := v.(type) {
	case VNum:
		return -v, true
	}
	return
}

// VTruthy implements the language's truthiness rule: Nil or Bool(false)
// is falsy; everything else, including 0 and the empty string, is truthy.
func VTruthy(v Value) VBool {
	switch v := v.(type) {
	case VBool:
		return v
	case VNil:
		return false
	default:
		return true
	}
}

func VEq(v, w Value) VBool {
	switch v := v.(type) {
	case VBool:
		if w, ok := w.(VBool); ok {
			return v == w
		}
	case VNum:
		if w, ok := w.(VNum); ok {
			return v == w
		}
	case VStr:
		if w, ok := w.(VStr); ok {
			return VBool(v.Handle == w.Handle)
		}
	case VNil:
		_, ok := w.(VNil)
		return VBool(ok)
	}
	return false
}
