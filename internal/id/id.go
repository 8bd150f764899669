package id

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// ShayariPrefix prefixes every poem record ID.
const ShayariPrefix = "shy"

// Generate returns prefix + "-" + a 21 character URL-safe NanoID.
func Generate(prefix string) (string, error) {
	n, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + n, nil
}

// NewShayariID generates a poem record ID.
func NewShayariID() (string, error) {
	return Generate(ShayariPrefix)
}
