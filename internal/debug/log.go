package debug

import (
	"fmt"
	"os"
)

// Logf writes a trace line to stderr when enabled is true, tagged with
// component. Call sites gate it behind one of the flag functions above so
// the fmt.Sprintf work itself is skipped when tracing is off.
func Logf(enabled bool, component, format string, args ...any) {
	if !enabled {
		return
	}
	fmt.Fprintf(os.Stderr, "[mcdoc:%s] %s\n", component, fmt.Sprintf(format, args...))
}
