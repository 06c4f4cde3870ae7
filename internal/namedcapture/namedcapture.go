// Package namedcapture extracts the named groups of a Ruby regexp source.
//
// Only the group syntax is understood: "(?<name>...)" and "(?'name'...)".
// Escapes and bracket expressions are skipped so that "\(?<x>" and
// "[(?<x>]" do not count.
package namedcapture

// Names returns the group names in first-appearance order without
// duplicates.
func Names(src []byte) []string {
	var out []string
	seen := map[string]bool{}
	depth := 0 // bracket expression nesting
	for i := 0; i < len(src); i++ {
		c := src[i]
		switch {
		case c == '\\':
			i++
		case c == '[':
			depth++
		case c == ']' && depth > 0:
			depth--
		case c == '(' && depth == 0:
			name, end := groupName(src, i)
			if end < 0 {
				continue
			}
			i = end
			if !seen[name] {
				seen[name] = true
				out = append(out, name)
			}
		}
	}
	return out
}

// groupName parses a named group opener at src[i] == '('. It returns the
// name and the index of the closing '>' or '\'', or -1 when src[i:] does not
// open a named group.
func groupName(src []byte, i int) (string, int) {
	if i+3 >= len(src) || src[i+1] != '?' {
		return "", -1
	}
	var close byte
	switch src[i+2] {
	case '<':
		close = '>'
	case '\'':
		close = '\''
	default:
		return "", -1
	}
	start := i + 3
	if src[start] == '=' || src[start] == '!' {
		return "", -1
	}
	j := start
	for j < len(src) && src[j] != close {
		if !nameByte(src[j], j == start) {
			return "", -1
		}
		j++
	}
	if j >= len(src) || j == start {
		return "", -1
	}
	return string(src[start:j]), j
}

func nameByte(c byte, first bool) bool {
	switch {
	case c == '_' || c >= 0x80:
		return true
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		return true
	case c >= '0' && c <= '9':
		return !first
	}
	return false
}

// IsLocalName reports whether name can be bound as a local variable. Names
// starting with an uppercase ASCII letter are constants.
func IsLocalName(name string) bool {
	if name == "" {
		return false
	}
	c := name[0]
	return !(c >= 'A' && c <= 'Z')
}
