//go:build debug

package debug

// DEBUG gates the tracing VM loop, the compiler's disassembly dumps, and
// internal invariant assertions. Build with `-tags debug` to enable it.
const DEBUG = true
