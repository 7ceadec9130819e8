package errs

import (
	"fmt"
	"strings"

	cr "github.com/cockroachdb/errors"
)

func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.Wrap(err, msg)
}

func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return cr.Wrapf(err, format, args...)
}

func New(msg string) error {
	return cr.New(msg)
}

func Newf(format string, args ...any) error {
	return cr.Newf(format, args...)
}

// Mark attaches markErr as an identity for errors.Is without changing the message.
func Mark(err error, markErr error) error {
	if err == nil {
		return markErr
	}
	return cr.Mark(err, markErr)
}

// Classify marks err with a specific sentinel and a taxonomy class so callers
// can match on either. A nil err yields the sentinel itself.
func Classify(err, specific, kind error) error {
	return Mark(Mark(err, specific), kind)
}

// Is reports whether err matches target by identity or by mark. The stdlib
// errors.Is does not see marks, so callers matching marked errors use this.
func Is(err, target error) bool {
	return cr.Is(err, target)
}

func As(err error, target any) bool {
	return cr.As(err, target)
}

// Kind returns the first taxonomy sentinel err is marked with, or nil.
func Kind(err error) error {
	for _, k := range taxonomy {
		if cr.Is(err, k) {
			return k
		}
	}
	return nil
}

func ExtractStackLines(err error, maxLines int) []string {
	if err == nil {
		return nil
	}
	s := fmt.Sprintf("%+v", err)
	lines := strings.Split(s, "\n")
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return lines
}
