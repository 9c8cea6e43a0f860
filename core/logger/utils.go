package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// Event types.
const (
	TypeBuiltin        = "builtin"
	TypeRunCommand     = "run_command"
	TypeUnknownCommand = "unknown_command"
	TypeExecFailure    = "exec_failure"
)

// Field names shared by every event.
const (
	fieldTimestamp = "timestamp_micros"
	fieldSession   = "session_id"
	fieldType      = "type"
	fieldCommand   = "command"
	fieldResolved  = "resolved_path"
	fieldStatus    = "status"
	fieldError     = "error"
	fieldLine      = "line"
)

// Event is one interpreter action.
type Event struct {
	Type         string
	Command      []string
	ResolvedPath string
	Status       int
	Error        string
	// Line is the interpreter's line count when the event happened.
	Line int
}

// LogRecorder is a callback that stores events in an external datastore.
type LogRecorder func(le *structpb.Struct) error

// Logger captures interpreter events.
type Logger struct {
	Record LogRecorder
}

// NewJSONLinesLogRecorder creates a Logger that exports logs in newline
// delimited JSON object format.
func NewJSONLinesLogRecorder(w io.Writer) *Logger {
	var mu sync.Mutex
	return &Logger{
		Record: func(le *structpb.Struct) error {
			entry, err := protojson.Marshal(le)
			if err != nil {
				return err
			}

			mu.Lock()
			defer mu.Unlock()
			_, err = fmt.Fprintln(w, string(entry))
			return err
		},
	}
}

func (l *Logger) recordEvent(sessionID string, event Event) error {
	command := make([]interface{}, len(event.Command))
	for i, arg := range event.Command {
		command[i] = arg
	}

	fields := map[string]interface{}{
		fieldTimestamp: time.Now().UnixNano() / int64(time.Microsecond),
		fieldSession:   sessionID,
		fieldType:      event.Type,
		fieldCommand:   command,
		fieldStatus:    event.Status,
		fieldLine:      event.Line,
	}
	if event.ResolvedPath != "" {
		fields[fieldResolved] = event.ResolvedPath
	}
	if event.Error != "" {
		fields[fieldError] = event.Error
	}

	le, err := structpb.NewStruct(fields)
	if err != nil {
		return err
	}
	return l.Record(le)
}

// NewSession creates a logger with a fresh session ID.
func (l *Logger) NewSession() *SessionLogger {
	return &SessionLogger{Logger: l, sessionID: uuid.NewString()}
}

// SessionLogger logs events with a shared session ID. A nil SessionLogger
// discards everything.
type SessionLogger struct {
	*Logger
	sessionID string
}

// SessionID returns the ID attached to every event.
func (l *SessionLogger) SessionID() string {
	if l == nil {
		return ""
	}
	return l.sessionID
}

// Record logs the event.
func (l *SessionLogger) Record(event Event) error {
	if l == nil || l.Logger == nil {
		return nil
	}
	return l.recordEvent(l.sessionID, event)
}

// LogEntry is a decoded event.
type LogEntry struct {
	Event
	TimestampMicros int64
	SessionID       string
}

// ReadJSONLinesLog parses a newline delimited JSON log.
func ReadJSONLinesLog(r io.Reader, handler func(le *LogEntry)) error {
	decoder := json.NewDecoder(r)
	for decoder.More() {
		var rawEntry json.RawMessage
		if err := decoder.Decode(&rawEntry); err != nil {
			return err
		}

		var msg structpb.Struct
		if err := protojson.Unmarshal(rawEntry, &msg); err != nil {
			return err
		}

		handler(decodeEntry(&msg))
	}
	return nil
}

func decodeEntry(msg *structpb.Struct) *LogEntry {
	fields := msg.GetFields()
	str := func(key string) string {
		return fields[key].GetStringValue()
	}
	num := func(key string) int64 {
		return int64(fields[key].GetNumberValue())
	}

	le := &LogEntry{
		TimestampMicros: num(fieldTimestamp),
		SessionID:       str(fieldSession),
	}
	le.Type = str(fieldType)
	le.ResolvedPath = str(fieldResolved)
	le.Status = int(num(fieldStatus))
	le.Error = str(fieldError)
	le.Line = int(num(fieldLine))
	for _, arg := range fields[fieldCommand].GetListValue().GetValues() {
		le.Command = append(le.Command, arg.GetStringValue())
	}
	return le
}
