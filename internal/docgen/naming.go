package docgen

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// VariableName builds a variable name from the path of field names leading to
// an argument, the argument name being the last element.
// e.g. [user posts first] => userPostsFirst
func VariableName(path []string) string {
	if len(path) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(path[0])
	for _, segment := range path[1:] {
		sb.WriteString(upperFirst(segment))
	}

	return sb.String()
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func appendPath(path []string, name string) []string {
	next := make([]string, len(path), len(path)+1)
	copy(next, path)
	return append(next, name)
}
