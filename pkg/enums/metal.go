package enums

import (
	"fmt"
	"strings"
)

// Metal enumerates the metals the catalog and rate table understand.
type Metal string

const (
	MetalSilver   Metal = "silver"
	MetalGold     Metal = "gold"
	MetalPlatinum Metal = "platinum"
)

var metals = map[Metal]struct{}{
	MetalSilver:   {},
	MetalGold:     {},
	MetalPlatinum: {},
}

func (m Metal) String() string {
	return string(m)
}

func (m Metal) IsValid() bool {
	_, ok := metals[m]
	return ok
}

// ParseMetal normalizes and validates a metal label.
func ParseMetal(value string) (Metal, error) {
	metal := Metal(strings.ToLower(strings.TrimSpace(value)))
	if !metal.IsValid() {
		return "", fmt.Errorf("unknown metal %q", value)
	}
	return metal, nil
}
