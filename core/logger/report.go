package logger

import (
	"sort"
	"strconv"
	"strings"
)

// StrCounter counts occurrences of strings.
type StrCounter map[string]int

// Increment adds one to the count for key.
func (s *StrCounter) Increment(key string) {
	if *s == nil {
		*s = make(StrCounter)
	}
	(*s)[key]++
}

// Top returns up to n keys ordered by descending count, ties broken
// alphabetically.
func (s StrCounter) Top(n int) []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if s[keys[i]] != s[keys[j]] {
			return s[keys[i]] > s[keys[j]]
		}
		return keys[i] < keys[j]
	})
	if n >= 0 && len(keys) > n {
		keys = keys[:n]
	}
	return keys
}

// Report holds statistics about the logged events.
type Report struct {
	LogEntries     int        `json:"log_entries"`
	Sessions       StrCounter `json:"sessions,omitempty"`
	InvalidEntries StrCounter `json:"unknown_log_entries,omitempty"`

	Builtin        BuiltinReport        `json:"builtin_report"`
	RunCommand     RunCommandReport     `json:"run_command_report"`
	UnknownCommand UnknownCommandReport `json:"unknown_command_report"`
	ExecFailure    ExecFailureReport    `json:"exec_failure_report"`
}

// Update adds the entry to the report.
func (r *Report) Update(le *LogEntry) {
	r.LogEntries++
	if le.SessionID != "" {
		r.Sessions.Increment(le.SessionID)
	}

	switch le.Type {
	case TypeBuiltin:
		r.Builtin.update(le)
	case TypeRunCommand:
		r.RunCommand.update(le)
	case TypeUnknownCommand:
		r.UnknownCommand.update(le)
	case TypeExecFailure:
		r.ExecFailure.update(le)
	default:
		r.InvalidEntries.Increment(le.Type)
	}
}

func commandName(le *LogEntry) string {
	if len(le.Command) == 0 {
		return ""
	}
	return le.Command[0]
}

type BuiltinReport struct {
	CommandNames StrCounter `json:"command_names"`
	Statuses     StrCounter `json:"statuses"`
}

func (r *BuiltinReport) update(le *LogEntry) {
	r.CommandNames.Increment(commandName(le))
	r.Statuses.Increment(strconv.Itoa(le.Status))
}

type RunCommandReport struct {
	// Path of the resolved command
	ResolvedCommandPaths StrCounter `json:"resolved_command_paths"`
	// Name of the command
	CommandNames StrCounter `json:"command_names"`
	Statuses     StrCounter `json:"statuses"`
}

func (r *RunCommandReport) update(le *LogEntry) {
	r.ResolvedCommandPaths.Increment(le.ResolvedPath)
	r.CommandNames.Increment(commandName(le))
	r.Statuses.Increment(strconv.Itoa(le.Status))
}

type UnknownCommandReport struct {
	CommandNames StrCounter `json:"command_names"`
}

func (r *UnknownCommandReport) update(le *LogEntry) {
	r.CommandNames.Increment(commandName(le))
}

type ExecFailureReport struct {
	CommandNames StrCounter `json:"command_names"`
	Errors       StrCounter `json:"errors"`
}

func (r *ExecFailureReport) update(le *LogEntry) {
	r.CommandNames.Increment(commandName(le))
	r.Errors.Increment(strings.TrimSpace(le.Error))
}
