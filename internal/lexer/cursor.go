package lexer

import (
	"fmt"
	"unicode/utf8"

	"fortio.org/safecast"

	"github.com/BurntChromium/IonaLang/internal/source"
)

// Cursor is a byte position inside one source file.
type Cursor struct {
	File  *source.File
	Off   uint32
	limit uint32
}

// NewCursor creates a cursor at the start of the provided file.
func NewCursor(f *source.File) Cursor {
	limit, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	return Cursor{
		File:  f,
		Off:   0,
		limit: limit,
	}
}

// EOF reports whether the cursor is past the last byte.
func (c *Cursor) EOF() bool {
	return c.Off >= c.limit
}

// Peek reads the current byte, or 0 at EOF.
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.File.Content[c.Off]
}

// Peek2 reads the current and the next byte.
func (c *Cursor) Peek2() (b0, b1 byte, ok bool) {
	if c.Off+1 >= c.limit {
		return 0, 0, false
	}
	return c.File.Content[c.Off], c.File.Content[c.Off+1], true
}

// Bump advances by one byte and returns the byte read.
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.File.Content[c.Off]
	c.Off++
	return b
}

// PeekRune decodes the rune at the cursor without consuming it.
func (c *Cursor) PeekRune() (rune, int) {
	if c.EOF() {
		return 0, 0
	}
	return utf8.DecodeRune(c.File.Content[c.Off:])
}

// BumpRune advances past one full rune.
func (c *Cursor) BumpRune() {
	_, sz := c.PeekRune()
	c.Off += uint32(sz)
}

// Mark tags a cursor offset so a span can be recovered later.
type Mark uint32

// Mark saves the current position.
func (c *Cursor) Mark() Mark {
	return Mark(c.Off)
}

// SpanFrom returns the span covering everything scanned since the mark.
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{
		File:  c.File.ID,
		Start: uint32(m),
		End:   c.Off,
	}
}
