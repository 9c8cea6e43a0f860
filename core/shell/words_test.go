package shell

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	cases := []struct {
		in       string
		delims   string
		expected []string
	}{
		{"", Delimiters, []string{}},
		{"   \t ", Delimiters, []string{}},
		{"ls -l", Delimiters, []string{"ls", "-l"}},
		{"  ls\t\t-l \n", Delimiters, []string{"ls", "-l"}},
		{"/a::/b", ":", []string{"/a", "/b"}},
	}

	for _, tc := range cases {
		actual := Tokenize(tc.in, tc.delims)
		if len(tc.expected) == 0 {
			assert.Empty(t, actual, "input %q", tc.in)
			continue
		}
		assert.Equal(t, tc.expected, actual, "input %q", tc.in)
	}
}

func TestReplaceVars(t *testing.T) {
	env := map[string]string{"HOME": "/root", "EMPTY": ""}
	vars := Vars{
		Status: 127,
		Pid:    42,
		Lookup: func(name string) (string, bool) {
			val, ok := env[name]
			return val, ok
		},
	}

	words := []string{"echo", "$?", "$$", "$HOME", "$MISSING", "$", "a$HOME", "$EMPTY"}
	actual := ReplaceVars(words, vars)

	assert.Equal(t, []string{"echo", "127", "42", "/root", "$", "a$HOME"}, actual)
	assert.Equal(t, "$?", words[1], "input must not be modified")
	assert.Empty(t, ReplaceVars([]string{"$MISSING"}, vars))
}

func TestExpandAlias(t *testing.T) {
	aliases := map[string]string{
		"ll":   "ls -l",
		"a":    "b",
		"b":    "a",
		"both": "true && echo ok",
		"l":    "ll",
	}
	resolve := func(name string) (string, bool) {
		val, ok := aliases[name]
		return val, ok
	}

	cases := map[string]string{
		"ll /tmp":      "ls -l /tmp",
		"  ll":         "  ls -l",
		"l":            "ls -l",
		"a x":          "a x",
		"both; ls":     "true && echo ok; ls",
		"echo ll":      "echo ll",
		"":             "",
		"unknown ll":   "unknown ll",
		"ll&&ll":       "ll&&ll",
		"ll && ll":     "ls -l && ll",
		"\tboth\targs": "\ttrue && echo ok\targs",
	}

	for in, expected := range cases {
		assert.Equal(t, expected, ExpandAlias(in, resolve), "input %q", in)
	}
}
