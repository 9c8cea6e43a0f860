// Package logger is a structured event log for the interpreter.
//
// Every dispatched command produces one event. Events are protobuf Struct
// messages written as newline delimited JSON so they can be aggregated later
// with Report.
package logger
