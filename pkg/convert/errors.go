package convert

import (
	"errors"
	"fmt"
)

var (
	ErrStructuralFormat       = errors.New("structural format error")
	ErrUnresolvedContinuation = errors.New("unresolved continuation")
	ErrUnrecognizedLine       = errors.New("unrecognized line")
)

// LineError reports the input line that aborted a conversion. Kind is one of the sentinel errors above
type LineError struct {
	Kind   error
	Line   int // 1-based physical line number in the original input, 0 when not tied to a line
	Text   string
	Reason string
}

func (err *LineError) Unwrap() error {
	return err.Kind
}

func (err *LineError) Error() string {
	if err.Line == 0 {
		return fmt.Sprintf("%v: %v", err.Kind, err.Reason)
	}
	return fmt.Sprintf("%v: line %d: %v: %q", err.Kind, err.Line, err.Reason, err.Text)
}

func structuralError(line Line, format string, args ...any) error {
	return &LineError{Kind: ErrStructuralFormat, Line: line.No, Text: line.Text, Reason: fmt.Sprintf(format, args...)}
}

func continuationError(line Line, format string, args ...any) error {
	return &LineError{Kind: ErrUnresolvedContinuation, Line: line.No, Text: line.Text, Reason: fmt.Sprintf(format, args...)}
}

func unrecognizedError(line Line, format string, args ...any) error {
	return &LineError{Kind: ErrUnrecognizedLine, Line: line.No, Text: line.Text, Reason: fmt.Sprintf(format, args...)}
}
