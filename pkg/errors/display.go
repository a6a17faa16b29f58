package errors

import (
	"fmt"
	"io"
	"strings"
)

// FormatErrorsWithHints renders errors one per line, appending resolution
// guidance wherever a known failure pattern matches.
func FormatErrorsWithHints(errs []error) string {
	var sb strings.Builder
	for _, err := range errs {
		if err == nil {
			continue
		}
		fmt.Fprintf(&sb, "❌ %v\n", err)
		if hint, ok := GetHint(err); ok {
			fmt.Fprintf(&sb, "  💡 %s: %s\n", hint.Hint, hint.Resolution)
		}
	}
	return sb.String()
}

// PrintErrorWithHints writes a single error to w in the same format.
func PrintErrorWithHints(w io.Writer, err error) {
	if err == nil {
		return
	}
	_, _ = io.WriteString(w, FormatErrorsWithHints([]error{err}))
}
