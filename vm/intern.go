package vm

import "github.com/josharian/intern"

// StrHandle is an opaque handle into a VM's string-intern table. Two handles
// compare equal iff their string content is equal, which is exactly the
// equality the language gives string values.
type StrHandle struct{ s string }

func (h StrHandle) String() string { return h.s }

// Interner canonicalizes string content to a single storage location so
// that repeated literals and concatenation results share one handle. It is
// owned by the VM and borrowed by the compiler during compilation: both
// compile-time string constants and run-time concatenation results flow
// through the same Intern call.
type Interner struct{ seen map[string]StrHandle }

func NewInterner() *Interner { return &Interner{seen: make(map[string]StrHandle)} }

func (it *Interner) Intern(s string) StrHandle {
	if h, ok := it.seen[s]; ok {
		return h
	}
	h := StrHandle{s: intern.String(s)}
	it.seen[s] = h
	return h
}
