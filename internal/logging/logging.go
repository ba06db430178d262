package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/ltan01/perturbopy/internal/ui"
)

// Logger is a tiny opt-in logger used across internal packages.
// When Writer is nil, logging is disabled.
//
// The output format is:
//
//	<ColoredPrefix> calc=<tag> <formattedMessage>\n
//
// where <tag> identifies the calculation being processed (its prefix or
// mode name), trimmed and defaulting to "(unknown)".
type Logger struct {
	Writer io.Writer

	PrefixText  string
	PrefixColor string

	// OmitCalc controls whether the calculation tag field is written.
	// When false (default), output includes: "calc=<tag>".
	OmitCalc bool
}

func (l *Logger) SetWriter(w io.Writer) { l.Writer = w }

func (l *Logger) Enabled() bool { return l != nil && l.Writer != nil }

func (l *Logger) Logf(calcTag string, format string, args ...any) {
	if l == nil || l.Writer == nil {
		return
	}
	prefix := l.PrefixText
	if prefix == "" {
		prefix = "Log:"
	}
	if l.PrefixColor != "" {
		prefix = ui.Color(prefix, l.PrefixColor)
	}
	msg := fmt.Sprintf(format, args...)
	if l.OmitCalc {
		fmt.Fprintf(l.Writer, "%s %s\n", prefix, msg)
		return
	}

	tag := strings.TrimSpace(calcTag)
	if tag == "" {
		tag = "(unknown)"
	}
	fmt.Fprintf(l.Writer, "%s calc=%s %s\n", prefix, tag, msg)
}
