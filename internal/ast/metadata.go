package ast

import (
	"github.com/BurntChromium/IonaLang/internal/source"
)

// Visibility of a top-level item. The default is private.
type Visibility uint8

const (
	// VisibilityPrivate limits the item to its own module.
	VisibilityPrivate Visibility = iota
	// VisibilityPublic makes the item importable by other modules.
	VisibilityPublic
)

func (v Visibility) String() string {
	if v == VisibilityPublic {
		return "Public"
	}
	return "Private"
}

// Metadata is the parsed form of an @metadata block. A declaration without
// a block gets the zero value: private, not exported, no derives, no
// permissions.
type Metadata struct {
	Visibility Visibility
	// Export marks the item as visible beyond the compilation session
	// (linked C symbol), distinct from module visibility.
	Export bool
	// Derives lists requested derived capabilities (Eq, Show, ...).
	// Carried opaquely; capability generation is a later stage.
	Derives []string
	// Uses lists declared effect permissions (ReadFile, WriteFile, ...).
	// Carried opaquely; enforcement is a later stage.
	Uses []string
	Span source.Span
}

// HasDerive reports whether the capability name was requested.
func (m Metadata) HasDerive(name string) bool {
	for _, d := range m.Derives {
		if d == name {
			return true
		}
	}
	return false
}
