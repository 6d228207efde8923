package casing

import (
	"strings"

	"github.com/iancoleman/strcase"
)

// Snake converts a camel-style token into its underscore-separated form.
// "emailDigest" -> "email_digest", "new_comment" stays as is. Leading,
// trailing and repeated separators are dropped: "__FOO_BAR__" -> "foo_bar".
func Snake(s string) string {
	words := strings.FieldsFunc(strcase.ToSnake(s), func(r rune) bool { return r == '_' })
	return strings.Join(words, "_")
}

// SnakeKeys returns a shallow copy of m with every top-level key snake-cased.
// Values are left untouched.
func SnakeKeys(m map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[Snake(k)] = v
	}
	return out
}
