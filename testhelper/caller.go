package testhelper

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// GetCaller labels the line calling it as " (TestName file.go:line)".
// Appending it to a table entry name makes a failing case easy to find even
// when several tests share one table helper.
func GetCaller(t *testing.T) string {
	t.Helper()

	pc, file, line, ok := runtime.Caller(1)
	if !ok {
		return " (unknown)"
	}
	return fmt.Sprintf(" (%s %s:%d)", funcName(pc), filepath.Base(file), line)
}

// funcName trims the package path and receiver from the name of the
// function at pc. Closures keep their enclosing function's name.
func funcName(pc uintptr) string {
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return "?"
	}
	name := fn.Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	parts := strings.Split(name, ".")
	if len(parts) < 2 {
		return name
	}
	for _, part := range parts[1:] {
		if strings.HasPrefix(part, "func") {
			break
		}
		name = part
	}
	return name
}
