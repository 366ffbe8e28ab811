// Package id generates prefixed entity identifiers.
package id

import (
	"fmt"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Prefixes for each persisted entity.
const (
	PrefixUser       = "usr"
	PrefixIngredient = "ing"
	PrefixTag        = "tag"
	PrefixRecipe     = "rcp"
	PrefixToken      = "tok"
)

// Generate returns prefix-nanoid, e.g. "rcp-V1StGXR8_Z5jdHi6B-myT".
// Fails only when the system entropy source does.
func Generate(prefix string) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + id, nil
}

// HasPrefix reports whether id was generated with prefix.
func HasPrefix(id, prefix string) bool {
	return strings.HasPrefix(id, prefix+"-") && len(id) > len(prefix)+1
}
