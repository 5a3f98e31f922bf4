package engine

import (
	"errors"
	"log/slog"
	"strconv"
)

// Status is a render outcome. The values match mustach.
type Status int

const (
	StatusOK              Status = 0
	StatusSystem          Status = -1
	StatusUnexpectedEnd   Status = -2
	StatusEmptyTag        Status = -3
	StatusTagTooLong      Status = -4
	StatusBadSeparators   Status = -5
	StatusTooDeep         Status = -6
	StatusClosing         Status = -7
	StatusBadUnescapeTag  Status = -8
	StatusInvalidItf      Status = -9
	StatusItemNotFound    Status = -10
	StatusPartialNotFound Status = -11
	StatusUndefinedTag    Status = -12
)

// String describes the status.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusSystem:
		return "system error"
	case StatusUnexpectedEnd:
		return "unexpected end of template"
	case StatusEmptyTag:
		return "empty tag"
	case StatusTagTooLong:
		return "tag too long"
	case StatusBadSeparators:
		return "bad delimiters"
	case StatusTooDeep:
		return "nesting too deep"
	case StatusClosing:
		return "mismatched closing tag"
	case StatusBadUnescapeTag:
		return "bad unescape tag"
	case StatusInvalidItf:
		return "invalid interface"
	case StatusItemNotFound:
		return "item not found"
	case StatusPartialNotFound:
		return "partial not found"
	case StatusUndefinedTag:
		return "undefined tag"
	default:
		return "status " + strconv.Itoa(int(s))
	}
}

// Error is a parse or render failure.
type Error struct {
	Status Status
	// Tag is the name or content of the offending tag, if any.
	Tag string
	// Offset is the byte offset of the offending tag in its template, or -1.
	Offset int
	// Err is the underlying cause, if any.
	Err error
}

func newError(status Status, tag string, offset int) *Error {
	return &Error{Status: status, Tag: tag, Offset: offset}
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := "mustache: " + e.Status.String()

	if e.Tag != "" {
		msg += " " + strconv.Quote(e.Tag)
	}

	if e.Offset >= 0 {
		msg += " at offset " + strconv.Itoa(e.Offset)
	}

	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error with the same Status.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}

	return t.Status == e.Status
}

// LogValue implements slog.LogValuer.
func (e *Error) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("error", e.Status.String()),
		slog.Int("status", int(e.Status)),
	}

	if e.Tag != "" {
		attrs = append(attrs, slog.String("tag", e.Tag))
	}

	if e.Offset >= 0 {
		attrs = append(attrs, slog.Int("offset", e.Offset))
	}

	if e.Err != nil {
		attrs = append(attrs, slog.String("cause", e.Err.Error()))
	}

	return slog.GroupValue(attrs...)
}

// StatusOf returns the Status carried by err, StatusOK for nil, and
// StatusSystem for errors that are not an *Error.
func StatusOf(err error) Status {
	if err == nil {
		return StatusOK
	}

	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}

	return StatusSystem
}
