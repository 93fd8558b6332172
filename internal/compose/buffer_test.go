package compose

import (
	"sync"
	"testing"
)

// TestBufferAppendPreservesPrefix verifies glyphs land at the end of
// previously entered text.
func TestBufferAppendPreservesPrefix(t *testing.T) {
	b := NewBuffer()
	b.Set("Kia")

	got := b.Append("ā")
	if got != "Kiaā" {
		t.Fatalf("text = %q, want Kiaā", got)
	}
	if b.Value() != "Kiaā" {
		t.Fatalf("value = %q, want Kiaā", b.Value())
	}
}

// TestBufferDefaultText verifies the first-launch sample text.
func TestBufferDefaultText(t *testing.T) {
	b := NewBuffer()
	if b.Value() != DefaultText {
		t.Fatalf("value = %q, want default text", b.Value())
	}
}

// TestBufferSurvivesInterleavedMutation verifies concurrent edits and
// appends never drop characters appended by this goroutine.
func TestBufferSurvivesInterleavedMutation(t *testing.T) {
	b := NewBuffer()
	b.Set("")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b.Append("ē")
		}()
	}
	wg.Wait()

	if len([]rune(b.Value())) != 50 {
		t.Fatalf("rune count = %d, want 50", len([]rune(b.Value())))
	}
}
