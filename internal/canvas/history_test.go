package canvas

import (
	"image"
	"testing"
)

func TestHistoryRing(t *testing.T) {
	h := NewHistory(3)
	imgs := make([]*image.RGBA, 5)
	for i := range imgs {
		imgs[i] = image.NewRGBA(image.Rect(0, 0, i+1, 1))
		h.Push(imgs[i])
	}

	if h.Len() != 3 || h.Cap() != 3 {
		t.Fatalf("Len/Cap = %d/%d, want 3/3", h.Len(), h.Cap())
	}
	for _, want := range []int{4, 3, 2} {
		got, ok := h.Pop()
		if !ok {
			t.Fatalf("Pop returned false, want image %d", want)
		}
		if got != imgs[want] {
			t.Errorf("Pop = image of width %d, want %d", got.Bounds().Dx(), want+1)
		}
	}
	if _, ok := h.Pop(); ok {
		t.Error("Pop on empty history should return false")
	}

	h.Push(imgs[0])
	h.Clear()
	if h.Len() != 0 {
		t.Errorf("Len after Clear = %d, want 0", h.Len())
	}
}

func TestHistoryMinimumCapacity(t *testing.T) {
	h := NewHistory(0)
	h.Push(image.NewRGBA(image.Rect(0, 0, 1, 1)))
	h.Push(image.NewRGBA(image.Rect(0, 0, 2, 1)))
	if h.Len() != 1 {
		t.Errorf("Len = %d, want 1", h.Len())
	}
}

func TestParseHex(t *testing.T) {
	c, err := ParseHex("#fef9f3")
	if err != nil {
		t.Fatalf("ParseHex: %v", err)
	}
	if c != Background {
		t.Errorf("ParseHex = %v, want %v", c, Background)
	}
	if Hex(c) != "#fef9f3" {
		t.Errorf("Hex = %q", Hex(c))
	}
	for _, bad := range []string{"", "#fff", "zzzzzz", "#1234567"} {
		if _, err := ParseHex(bad); err == nil {
			t.Errorf("ParseHex(%q) should fail", bad)
		}
	}
}
