// Package shell turns raw input lines into the pieces the interpreter
// executes: chain segments, words and expanded arguments.
//
// The grammar is deliberately small. A line is split on the chain operators
// ";", "&&" and "||"; each segment is split into words on blanks. There are no
// pipelines, redirections, background jobs or quoting.
package shell

import "strings"

// Condition decides whether a chain segment runs, based on the status of the
// segment immediately before it.
type Condition int

const (
	// Always runs regardless of the previous status (";" or start of line).
	Always Condition = iota
	// IfSucceeded runs only if the previous status was zero ("&&").
	IfSucceeded
	// IfFailed runs only if the previous status was nonzero ("||").
	IfFailed
)

func (c Condition) String() string {
	switch c {
	case Always:
		return ";"
	case IfSucceeded:
		return "&&"
	case IfFailed:
		return "||"
	default:
		return "?"
	}
}

// Met reports whether a segment carrying the condition should run after a
// segment that finished with status.
func (c Condition) Met(status int) bool {
	switch c {
	case IfSucceeded:
		return status == 0
	case IfFailed:
		return status != 0
	default:
		return true
	}
}

// Segment is one command unit between chain operators.
type Segment struct {
	Text      string
	Condition Condition
}

// Empty reports whether the segment contains no words.
func (s Segment) Empty() bool {
	return len(Words(s.Text)) == 0
}

// StripComment truncates line at the first '#' that starts a word.
func StripComment(line string) string {
	for i := 0; i < len(line); i++ {
		if line[i] != '#' {
			continue
		}
		if i == 0 || strings.IndexByte(Delimiters, line[i-1]) >= 0 {
			return line[:i]
		}
	}
	return line
}

// SplitChain partitions line into ordered segments. The first segment is
// always Always; each later segment carries the condition of the operator
// preceding it. A lone '&' or '|' is kept as segment text.
//
// The result always has at least one segment, and a trailing operator yields
// an empty final segment.
func SplitChain(line string) []Segment {
	line = StripComment(line)

	var segments []Segment
	cond := Always
	start := 0
	for i := 0; i < len(line); i++ {
		var next Condition
		width := 1
		switch c := line[i]; {
		case c == ';':
			next = Always
		case c == '&' && i+1 < len(line) && line[i+1] == '&':
			next, width = IfSucceeded, 2
		case c == '|' && i+1 < len(line) && line[i+1] == '|':
			next, width = IfFailed, 2
		default:
			continue
		}

		segments = append(segments, Segment{
			Text:      strings.TrimSpace(line[start:i]),
			Condition: cond,
		})
		cond = next
		i += width - 1
		start = i + 1
	}

	return append(segments, Segment{
		Text:      strings.TrimSpace(line[start:]),
		Condition: cond,
	})
}
