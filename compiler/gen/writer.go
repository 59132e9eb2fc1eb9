package gen

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dave/jennifer/jen"
	"golang.org/x/tools/imports"
)

// FormatFile renders a jennifer file and formats it with goimports.
func FormatFile(f *jen.File, filename string) ([]byte, error) {
	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", filename, err)
	}
	formatted, err := imports.Process(filename, buf.Bytes(), nil)
	if err != nil {
		return nil, fmt.Errorf("format %s: %w", filename, err)
	}
	return formatted, nil
}

// writeFile writes the formatted file to dir. The file is left untouched if
// its content did not change. It reports whether the file was written.
func writeFile(f *jen.File, dir, filename string) (bool, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false, err
	}
	path := filepath.Join(dir, filename)
	formatted, err := FormatFile(f, path)
	if err != nil {
		// Write the unformatted file for debugging; errors are ignored as we
		// are already failing.
		var buf bytes.Buffer
		if f.Render(&buf) == nil {
			_ = os.WriteFile(path+".error", buf.Bytes(), 0o644)
		}
		return false, err
	}
	if existing, err := os.ReadFile(path); err == nil && bytes.Equal(existing, formatted) {
		return false, nil
	}
	if err := os.WriteFile(path, formatted, 0o644); err != nil {
		return false, fmt.Errorf("write %s: %w", filename, err)
	}
	return true, nil
}
