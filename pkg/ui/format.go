package ui

import (
	"io"
	"os"
	"strings"

	"github.com/arthur-debert/dotstow/pkg/errors"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Format selects how reports are written.
type Format int

const (
	// FormatAuto picks FormatTerminal or FormatText from the output.
	FormatAuto Format = iota
	// FormatTerminal is styled, colored text.
	FormatTerminal
	// FormatText is the same text without escape codes.
	FormatText
	FormatJSON
	FormatYAML
)

var formatNames = [...]string{"auto", "term", "text", "json", "yaml"}

var formatAliases = map[string]Format{
	"":         FormatAuto,
	"auto":     FormatAuto,
	"term":     FormatTerminal,
	"terminal": FormatTerminal,
	"text":     FormatText,
	"plain":    FormatText,
	"json":     FormatJSON,
	"yaml":     FormatYAML,
	"yml":      FormatYAML,
}

func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return "unknown"
	}
	return formatNames[f]
}

// Structured reports whether f is a machine-readable format.
func (f Format) Structured() bool {
	return f == FormatJSON || f == FormatYAML
}

// ParseFormat reads a --format value, case-insensitively.
func ParseFormat(s string) (Format, error) {
	if f, ok := formatAliases[strings.ToLower(s)]; ok {
		return f, nil
	}
	return FormatAuto, errors.Newf(errors.ErrInvalidInput, "unknown format: %s", s)
}

// DetectFormat returns FormatTerminal only for a color-capable terminal
// with NO_COLOR unset.
func DetectFormat(output *os.File) Format {
	if os.Getenv("NO_COLOR") != "" {
		return FormatText
	}
	fd := output.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return FormatText
	}
	if termenv.ColorProfile() == termenv.Ascii {
		return FormatText
	}
	return FormatTerminal
}

// Resolve turns FormatAuto into a concrete format for output.
func Resolve(f Format, output *os.File) Format {
	if f == FormatAuto {
		return DetectFormat(output)
	}
	return f
}

// ColorEnabled reports whether w is a file that DetectFormat considers a
// color terminal. Buffers and other writers never get color.
func ColorEnabled(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && DetectFormat(f) == FormatTerminal
}
