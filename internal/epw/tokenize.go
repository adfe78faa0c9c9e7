package epw

import "strings"

// Fields is one tokenized EPW line.
type Fields []string

// Tokenize splits a line on commas and trims each field. It never fails;
// field count problems are detected by the decoders.
func Tokenize(line string) Fields {
	parts := strings.Split(line, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// At returns the field at i, or "" when the line is too short.
func (f Fields) At(i int) string {
	if i < 0 || i >= len(f) {
		return ""
	}
	return f[i]
}
