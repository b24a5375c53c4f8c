// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package agent

import "fmt"

// ValidationError reports a briefing that cannot start a run. It is
// always raised before the first model call.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid briefing field %s: %s", e.Field, e.Reason)
}

// OutlineError reports an outline that cannot carry the drafting loop,
// such as raw model output that parses to zero sections.
type OutlineError struct {
	Reason string
}

func (e *OutlineError) Error() string {
	return fmt.Sprintf("unusable outline: %s", e.Reason)
}
