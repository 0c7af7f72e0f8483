package hooks

import (
	"fmt"
	"runtime"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Records the file:line of the code that emitted a log entry, trimmed to the
// path below the given module root.
type contextHook struct {
	root string
}

// NewContextHook returns a hook that stamps entries with "file:line". Paths are
// shortened to what follows the last occurrence of root, ex: "offerqueue/".
func NewContextHook(root string) log.Hook {
	return contextHook{root: root}
}

func (hook contextHook) Levels() []log.Level {
	return log.AllLevels
}

func (hook contextHook) Fire(entry *log.Entry) error {
	pcs := make([]uintptr, 32)
	n := runtime.Callers(2, pcs)
	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		if !isLoggingFrame(frame.Function) {
			entry.Data["file:line"] = hook.trim(fmt.Sprintf("%s:%d", frame.File, frame.Line))
			return nil
		}
		if !more {
			return nil
		}
	}
}

func (hook contextHook) trim(fileLine string) string {
	if hook.root == "" {
		return fileLine
	}
	if idx := strings.LastIndex(fileLine, hook.root); idx >= 0 {
		return fileLine[idx+len(hook.root):]
	}
	return fileLine
}

func isLoggingFrame(function string) bool {
	return strings.Contains(function, "github.com/sirupsen/logrus") ||
		strings.Contains(function, "hooks.contextHook")
}
