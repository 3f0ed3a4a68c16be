//go:build !dspdebug

package delay

import "testing"

func TestViewReadClampsOffsets(t *testing.T) {
	h, err := NewHistory(16)
	if err != nil {
		t.Fatalf("NewHistory: %v", err)
	}
	for i := 1; i <= 16; i++ {
		h.Write(int32(i))
	}
	// cursor = 0; sample written k ticks ago is 17-k.
	if got := h.Read(3); got != h.Read(MinOffset) {
		t.Fatalf("offset below MinOffset read %d, want %d", got, h.Read(MinOffset))
	}
	if got := h.Read(100); got != h.Read(15) {
		t.Fatalf("offset beyond capacity read %d, want %d", got, h.Read(15))
	}
}
