package rewriter

import "strings"

// attr is one attribute inside a tag body. Offsets are relative to the body
// (the text between the tag-opening token and the closing '>').
type attr struct {
	name string
	// start includes the whitespace run that precedes the name, so cutting
	// [start:end) removes the attribute without leaving a double space.
	start     int
	nameStart int
	// valStart/valEnd bound the value without quotes; both are -1 for a
	// bare attribute such as <svg hidden>.
	valStart int
	valEnd   int
	end      int
}

func (a attr) hasValue() bool {
	return a.valStart >= 0
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

// parseAttrs lexes the attributes of a tag body. Quoted values may use single
// or double quotes; an unterminated quote runs to the end of the body.
func parseAttrs(body string) []attr {
	var attrs []attr
	i := 0
	for i < len(body) {
		wsStart := i
		for i < len(body) && isSpace(body[i]) {
			i++
		}
		if i >= len(body) {
			break
		}
		if c := body[i]; c == '/' || c == '>' || c == '=' {
			i++
			continue
		}

		nameStart := i
		for i < len(body) && !isSpace(body[i]) && body[i] != '=' && body[i] != '/' && body[i] != '>' {
			i++
		}
		a := attr{
			name:      body[nameStart:i],
			start:     wsStart,
			nameStart: nameStart,
			valStart:  -1,
			valEnd:    -1,
			end:       i,
		}

		j := i
		for j < len(body) && isSpace(body[j]) {
			j++
		}
		if j < len(body) && body[j] == '=' {
			j++
			for j < len(body) && isSpace(body[j]) {
				j++
			}
			switch {
			case j < len(body) && (body[j] == '"' || body[j] == '\''):
				q := body[j]
				a.valStart = j + 1
				if k := strings.IndexByte(body[j+1:], q); k >= 0 {
					a.valEnd = j + 1 + k
					a.end = a.valEnd + 1
				} else {
					a.valEnd = len(body)
					a.end = len(body)
				}
			default:
				a.valStart = j
				for j < len(body) && !isSpace(body[j]) && body[j] != '>' {
					j++
				}
				a.valEnd = j
				a.end = j
			}
		}

		attrs = append(attrs, a)
		i = a.end
	}
	return attrs
}

// hasAttr reports whether body declares an attribute called name.
func hasAttr(body, name string) bool {
	for _, a := range parseAttrs(body) {
		if a.name == name {
			return true
		}
	}
	return false
}

// findTag locates the next tag opened by token (for example "<path") at or
// after from. The token must be followed by whitespace, '/', or '>' so that
// "<pathology>" is not mistaken for a path. The span ends at the first '>'
// after the token; a '>' inside an attribute value therefore ends the tag
// early. It returns -1, -1 when no complete tag remains.
func findTag(s string, from int, token string) (start, end int) {
	for from <= len(s) {
		idx := strings.Index(s[from:], token)
		if idx < 0 {
			return -1, -1
		}
		start = from + idx
		next := start + len(token)
		if next < len(s) && !isSpace(s[next]) && s[next] != '/' && s[next] != '>' {
			from = next
			continue
		}
		gt := strings.IndexByte(s[next:], '>')
		if gt < 0 {
			return -1, -1
		}
		return start, next + gt
	}
	return -1, -1
}
