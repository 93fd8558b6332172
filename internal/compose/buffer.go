package compose

import "sync"

// DefaultText seeds the voice generation input on first launch.
const DefaultText = "Kia orana kōtou kātoatoa"

// Buffer is the text being composed for voice generation. Keyboard
// edits and glyph appends are serialized mutations of the same value,
// so an append never loses in-flight keystrokes.
type Buffer struct {
	mu   sync.Mutex
	text string
}

// NewBuffer creates a buffer seeded with the default sample text.
func NewBuffer() *Buffer {
	return &Buffer{text: DefaultText}
}

// Set replaces the buffer with the latest keyboard state.
func (b *Buffer) Set(text string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.text = text
}

// Append adds a glyph at the end of the current text and returns the
// resulting value.
func (b *Buffer) Append(glyph string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.text += glyph
	return b.text
}

// Value returns the current text.
func (b *Buffer) Value() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.text
}
