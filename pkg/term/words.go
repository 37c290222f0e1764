package term

import "strings"

// SplitWords splits a command string into words the way a POSIX shell would
// tokenize it: whitespace separates words, single quotes preserve everything,
// double quotes preserve everything except backslash escapes of `"` and `\`.
// A trailing unterminated quote closes at end of input rather than failing;
// configured terminal references are trusted input.
func SplitWords(s string) []string {
	var (
		words   []string
		word    strings.Builder
		inWord  bool
		quote   rune // 0, '\'' or '"'
		escaped bool
	)

	flush := func() {
		if inWord {
			words = append(words, word.String())
			word.Reset()
			inWord = false
		}
	}

	for _, r := range s {
		switch {
		case escaped:
			word.WriteRune(r)
			inWord = true
			escaped = false
		case quote == '\'':
			if r == '\'' {
				quote = 0
			} else {
				word.WriteRune(r)
			}
		case quote == '"':
			switch r {
			case '"':
				quote = 0
			case '\\':
				escaped = true
			default:
				word.WriteRune(r)
			}
		case r == '\\':
			escaped = true
			inWord = true
		case r == '\'' || r == '"':
			quote = r
			inWord = true
		case r == ' ' || r == '\t' || r == '\n':
			flush()
		default:
			word.WriteRune(r)
			inWord = true
		}
	}
	flush()
	return words
}

// Quote returns s as a single shell word, using single quotes when needed.
// The metacharacter set is deliberately conservative: ~ and # are only
// special word-initially, but quoting them anywhere costs nothing.
func Quote(s string) string {
	if s == "" {
		return "''"
	}
	if !strings.ContainsAny(s, " \t\n\"'\\$`!*?[](){}<>|&;~#") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// QuoteJoin renders argv as one shell command string with each word quoted.
func QuoteJoin(argv []string) string {
	quoted := make([]string, len(argv))
	for i, arg := range argv {
		quoted[i] = Quote(arg)
	}
	return strings.Join(quoted, " ")
}
