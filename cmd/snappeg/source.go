package main

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// readSource returns the input given as arguments, in a file, or on stdin,
// in that order of preference.
func readSource(ctx *Context, args []string, file string) ([]byte, error) {
	switch {
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", file, err)
		}
		return data, nil
	case len(args) > 0:
		return []byte(strings.Join(args, " ")), nil
	}

	data, err := io.ReadAll(ctx.In)
	if err != nil {
		return nil, fmt.Errorf("failed to read stdin: %w", err)
	}
	return data, nil
}
