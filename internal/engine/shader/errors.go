package shader

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptySource is returned when a stage has no source text.
	ErrEmptySource = errors.New("empty shader source")

	// ErrNoObject is returned when the driver could not allocate a shader or program object.
	ErrNoObject = errors.New("driver returned no object")

	// ErrDeleted is returned when a program is used after Delete.
	ErrDeleted = errors.New("program deleted")
)

// CompileError reports a stage rejected by the driver's compiler.
type CompileError struct {
	Stage Stage
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s shader: %s", e.Stage, e.Log)
}

// LinkError reports two compiled stages the driver refused to link together.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("link: %s", e.Log)
}

// diagnostic trims a driver info log and substitutes a fallback for empty logs.
func diagnostic(log, fallback string) string {
	log = strings.TrimRight(log, "\x00 \t\r\n")
	if log == "" {
		return fallback
	}
	return log
}
