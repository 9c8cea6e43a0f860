package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONLinesRoundTrip(t *testing.T) {
	buf := &bytes.Buffer{}
	session := NewJSONLinesLogRecorder(buf).NewSession()
	require.NotEmpty(t, session.SessionID())

	require.NoError(t, session.Record(Event{
		Type:         TypeRunCommand,
		Command:      []string{"ls", "-l"},
		ResolvedPath: "/bin/ls",
		Status:       0,
		Line:         1,
	}))
	require.NoError(t, session.Record(Event{
		Type:    TypeUnknownCommand,
		Command: []string{"nope"},
		Status:  127,
		Line:    2,
	}))
	require.NoError(t, session.Record(Event{
		Type:    TypeExecFailure,
		Command: []string{"./bad"},
		Status:  1,
		Error:   "text file busy",
		Line:    3,
	}))

	assert.Equal(t, 3, strings.Count(buf.String(), "\n"))

	var entries []*LogEntry
	require.NoError(t, ReadJSONLinesLog(buf, func(le *LogEntry) {
		entries = append(entries, le)
	}))
	require.Len(t, entries, 3)

	first := entries[0]
	assert.Equal(t, session.SessionID(), first.SessionID)
	assert.NotZero(t, first.TimestampMicros)
	assert.Equal(t, TypeRunCommand, first.Type)
	assert.Equal(t, []string{"ls", "-l"}, first.Command)
	assert.Equal(t, "/bin/ls", first.ResolvedPath)
	assert.Equal(t, 1, first.Line)

	assert.Equal(t, 127, entries[1].Status)
	assert.Empty(t, entries[1].ResolvedPath)
	assert.Equal(t, "text file busy", entries[2].Error)
}

func TestSessionLogger_nil(t *testing.T) {
	var session *SessionLogger

	assert.NoError(t, session.Record(Event{Type: TypeBuiltin}))
	assert.Empty(t, session.SessionID())
}

func TestReport(t *testing.T) {
	entries := []*LogEntry{
		{Event: Event{Type: TypeBuiltin, Command: []string{"cd", "/"}, Status: 0}, SessionID: "a"},
		{Event: Event{Type: TypeBuiltin, Command: []string{"cd", "/x"}, Status: 2}, SessionID: "a"},
		{Event: Event{Type: TypeRunCommand, Command: []string{"ls"}, ResolvedPath: "/bin/ls"}, SessionID: "a"},
		{Event: Event{Type: TypeRunCommand, Command: []string{"ls"}, ResolvedPath: "/bin/ls", Status: 2}, SessionID: "b"},
		{Event: Event{Type: TypeUnknownCommand, Command: []string{"sl"}, Status: 127}, SessionID: "b"},
		{Event: Event{Type: "mystery"}},
	}

	var report Report
	for _, le := range entries {
		report.Update(le)
	}

	assert.Equal(t, 6, report.LogEntries)
	assert.Equal(t, StrCounter{"a": 3, "b": 2}, report.Sessions)
	assert.Equal(t, StrCounter{"mystery": 1}, report.InvalidEntries)
	assert.Equal(t, StrCounter{"cd": 2}, report.Builtin.CommandNames)
	assert.Equal(t, StrCounter{"0": 1, "2": 1}, report.Builtin.Statuses)
	assert.Equal(t, StrCounter{"/bin/ls": 2}, report.RunCommand.ResolvedCommandPaths)
	assert.Equal(t, StrCounter{"sl": 1}, report.UnknownCommand.CommandNames)
	assert.Nil(t, report.ExecFailure.CommandNames)
}

func TestStrCounter_Top(t *testing.T) {
	var counter StrCounter
	for _, k := range []string{"b", "a", "c", "a", "b", "a"} {
		counter.Increment(k)
	}

	assert.Equal(t, []string{"a", "b"}, counter.Top(2))
	assert.Equal(t, []string{"a", "b", "c"}, counter.Top(-1))
}
