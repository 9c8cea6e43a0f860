package shell

import (
	"strconv"
	"strings"
)

// Delimiters separate words in a command segment.
const Delimiters = " \t\r\n"

// maxAliasDepth bounds alias chains like `alias a=b b=c c=a`.
const maxAliasDepth = 10

// Tokenize splits s into words on any of the bytes in delims. Runs of
// delimiters never produce empty words.
func Tokenize(s, delims string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return strings.ContainsRune(delims, r)
	})
}

// Words splits s on the default Delimiters.
func Words(s string) []string {
	return Tokenize(s, Delimiters)
}

// Vars holds the values used for variable replacement.
type Vars struct {
	// Status is the value of $?.
	Status int
	// Pid is the value of $$.
	Pid int
	// Lookup resolves $NAME.
	Lookup func(name string) (string, bool)
}

// ReplaceVars returns a copy of words where every word that is exactly $?,
// $$ or $NAME is replaced by its value. Names that are unset or empty expand
// to nothing and their word is dropped. Partial words such as "a$B" are left
// alone.
func ReplaceVars(words []string, vars Vars) []string {
	out := make([]string, 0, len(words))
	for _, word := range words {
		if len(word) < 2 || word[0] != '$' {
			out = append(out, word)
			continue
		}

		switch name := word[1:]; name {
		case "?":
			out = append(out, strconv.Itoa(vars.Status))
		case "$":
			out = append(out, strconv.Itoa(vars.Pid))
		default:
			if vars.Lookup == nil {
				continue
			}
			if val, ok := vars.Lookup(name); ok && val != "" {
				out = append(out, val)
			}
		}
	}
	return out
}

// ExpandAlias replaces the first word of line with its alias, repeating for
// the replacement's own first word. Expansion stops when a name repeats, when
// a word has no alias or after a fixed number of rounds.
func ExpandAlias(line string, resolve func(name string) (string, bool)) string {
	seen := make(map[string]bool)
	for round := 0; round < maxAliasDepth; round++ {
		start := 0
		for start < len(line) && strings.IndexByte(Delimiters, line[start]) >= 0 {
			start++
		}
		end := start
		for end < len(line) && strings.IndexByte(Delimiters, line[end]) < 0 {
			end++
		}

		name := line[start:end]
		if name == "" || seen[name] {
			return line
		}
		seen[name] = true

		value, ok := resolve(name)
		if !ok {
			return line
		}
		line = line[:start] + value + line[end:]
	}
	return line
}
