package config

import "strings"

// Error lists every problem found in a config file, so they can be fixed in one pass.
type Error struct {
	Path    string
	Missing []string // unresolved ${VAR} references
	Errors  []string // Validate messages
}

func (e *Error) Error() string {
	problems := e.problems()
	if len(problems) == 0 {
		return ""
	}

	head := "invalid configuration"
	if e.Path != "" {
		head = e.Path + ": " + head
	}
	return head + "\n  - " + strings.Join(problems, "\n  - ")
}

// HasErrors reports whether there is anything to fix.
func (e *Error) HasErrors() bool {
	return len(e.Missing) > 0 || len(e.Errors) > 0
}

func (e *Error) problems() []string {
	out := make([]string, 0, len(e.Missing)+len(e.Errors))
	for _, m := range e.Missing {
		out = append(out, "environment variable not set: "+m)
	}
	return append(out, e.Errors...)
}
