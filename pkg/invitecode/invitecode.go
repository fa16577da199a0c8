// Package invitecode davetli başına kısa davet kodları (INV-XXXXXXXX) üretir.
package invitecode

import (
	"fmt"
	"regexp"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	Prefix   = "INV-"
	alphabet = "0123456789ABCDEF"
	size     = 8
)

var pattern = regexp.MustCompile(`^INV-[0-9A-F]{8}$`)

// Generate yeni bir davet kodu üretir.
func Generate() (string, error) {
	id, err := gonanoid.Generate(alphabet, size)
	if err != nil {
		return "", fmt.Errorf("davet kodu üretilemedi: %w", err)
	}
	return Prefix + id, nil
}

// Valid kodun beklenen biçimde olup olmadığını söyler.
func Valid(code string) bool {
	return pattern.MatchString(code)
}
