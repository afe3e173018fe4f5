package isel

import (
	"fmt"
	"path"

	"tlog.app/go/loc"
)

// Diagnostic reports an input the selector has no lowering for. It is raised with panic and
// recovered at the compiler entry point, where it becomes an ordinary error.
type Diagnostic struct {
	// Op names the IR operation, e.g. "ffma" or "image_atomic_add".
	Op  string
	Msg string
	// PC is where in the selector the gap was hit.
	PC loc.PC
}

// Error implements error.
func (d *Diagnostic) Error() string {
	_, file, line := d.PC.NameFileLine()
	if file == "" {
		return fmt.Sprintf("unsupported %s: %s", d.Op, d.Msg)
	}
	return fmt.Sprintf("unsupported %s: %s (%s:%d)", d.Op, d.Msg, path.Base(file), line)
}

// unsupported panics with a Diagnostic attributed to the caller.
func unsupported(op fmt.Stringer, format string, args ...any) {
	panic(&Diagnostic{Op: op.String(), Msg: fmt.Sprintf(format, args...), PC: loc.Caller(1)})
}
