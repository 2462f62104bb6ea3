package domain

import (
	"fmt"
	"strings"
)

// IconRef points at an icon inside a named icon set. Presentation layers
// resolve the pair; the tracker only stores and validates it.
type IconRef struct {
	Set  string `json:"set"`
	Name string `json:"name"`
}

// DefaultIconSet is used when a reference omits the set.
const DefaultIconSet = "ionicons"

// ParseIconRef parses "set:name" or a bare "name" in the default set.
func ParseIconRef(s string) IconRef {
	s = strings.TrimSpace(s)
	if set, name, ok := strings.Cut(s, ":"); ok && set != "" {
		return IconRef{Set: set, Name: name}
	}
	return IconRef{Set: DefaultIconSet, Name: s}
}

func (r IconRef) String() string {
	return r.Set + ":" + r.Name
}

// SportDefinition is a selectable activity category.
type SportDefinition struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Icon IconRef `json:"icon"`
}

// Validate checks the sport definition.
func (s SportDefinition) Validate() error {
	if strings.TrimSpace(s.ID) == "" || strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("%w: sport id and name are required", ErrInvalidEntry)
	}
	return nil
}
