package repair

import (
	"strings"
	"unicode"

	"github.com/jonathan/resume-guard/internal/llm"
)

const (
	leftDoubleQuote  = '“'
	rightDoubleQuote = '”'
	leftSingleQuote  = '‘'
	rightSingleQuote = '’'
)

// Clean repairs common formatting damage in model output so that it can be decoded. It strips
// code fences and surrounding prose, keeps only the text from the first '{' to the last '}',
// converts smart quotes, drops trailing commas, escapes stray backslashes, and collapses
// whitespace. Clean never fails; undecodable results surface as a ParseError later.
func Clean(raw string) string {
	text := llm.CleanJSONBlock(raw)

	if first, last := strings.Index(text, "{"), strings.LastIndex(text, "}"); first >= 0 && last > first {
		text = text[first : last+1]
	}

	return normalizeJSONText(text)
}

// normalizeJSONText rewrites text in one pass, tracking whether it is inside a string literal.
// A string opened by a smart quote is closed by a smart quote; smart quotes inside an ASCII
// string become escaped quotes.
func normalizeJSONText(text string) string {
	runes := []rune(text)
	var sb strings.Builder
	sb.Grow(len(text))

	inString := false
	smartOpened := false
	pendingSpace := false

	for i := 0; i < len(runes); i++ {
		r := runes[i]

		if inString {
			switch {
			case r == '\\':
				if i+1 < len(runes) && isValidEscape(runes[i+1:]) {
					sb.WriteRune(r)
					sb.WriteRune(runes[i+1])
					i++
				} else {
					sb.WriteString(`\\`)
				}
			case r == '"' && !smartOpened:
				sb.WriteRune('"')
				inString = false
			case (r == leftDoubleQuote || r == rightDoubleQuote) && smartOpened:
				sb.WriteRune('"')
				inString = false
			case r == '"' || r == leftDoubleQuote || r == rightDoubleQuote:
				sb.WriteString(`\"`)
			case r == leftSingleQuote || r == rightSingleQuote:
				sb.WriteRune('\'')
			case unicode.IsSpace(r):
				if !strings.HasSuffix(sb.String(), " ") {
					sb.WriteRune(' ')
				}
			default:
				sb.WriteRune(r)
			}
			continue
		}

		switch {
		case unicode.IsSpace(r):
			pendingSpace = true
			continue
		case r == ',' && closesAfter(runes[i+1:]):
			continue
		}

		if pendingSpace && sb.Len() > 0 {
			sb.WriteRune(' ')
		}
		pendingSpace = false

		switch r {
		case '"':
			inString, smartOpened = true, false
			sb.WriteRune('"')
		case leftDoubleQuote, rightDoubleQuote:
			inString, smartOpened = true, true
			sb.WriteRune('"')
		default:
			sb.WriteRune(r)
		}
	}

	return sb.String()
}

// isValidEscape reports whether rest, which follows a backslash, starts a JSON escape
func isValidEscape(rest []rune) bool {
	switch rest[0] {
	case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
		return true
	case 'u':
		if len(rest) < 5 {
			return false
		}
		for _, h := range rest[1:5] {
			if !strings.ContainsRune("0123456789abcdefABCDEF", h) {
				return false
			}
		}
		return true
	}
	return false
}

// closesAfter reports whether the next non-space rune closes an object or array
func closesAfter(rest []rune) bool {
	for _, r := range rest {
		if unicode.IsSpace(r) {
			continue
		}
		return r == '}' || r == ']'
	}
	return false
}
