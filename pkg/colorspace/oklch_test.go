package colorspace

import (
	"fmt"
	"strings"
	"testing"
)

func TestHexToOKLCHKnownValues(t *testing.T) {
	t.Run("white", func(t *testing.T) {
		got := HexToOKLCH("#ffffff")
		if got != "oklch(1.000 0.000 0.0)" {
			t.Fatalf("white converted to %q", got)
		}
	})

	t.Run("black", func(t *testing.T) {
		got := HexToOKLCH("#000000")
		if got != "oklch(0.000 0.000 0.0)" {
			t.Fatalf("black converted to %q", got)
		}
	})

	t.Run("pure red has positive chroma", func(t *testing.T) {
		got := HexToOKLCH("#ff0000")
		if !strings.HasPrefix(got, "oklch(") {
			t.Fatalf("unexpected format %q", got)
		}
		var l, c, h float64
		if _, err := fmt.Sscanf(got, "oklch(%f %f %f)", &l, &c, &h); err != nil {
			t.Fatalf("cannot parse %q: %v", got, err)
		}
		if c <= 0 {
			t.Fatalf("expected chroma > 0 for red, got %f", c)
		}
		if h < 0 || h >= 360 {
			t.Fatalf("hue out of range: %f", h)
		}
	})
}

func TestHexToOKLCHShortFormMatchesLongForm(t *testing.T) {
	if short, long := HexToOKLCH("#08b"), HexToOKLCH("#0088bb"); short != long {
		t.Fatalf("short form %q != long form %q", short, long)
	}
}

func TestHexToOKLCHMalformedInput(t *testing.T) {
	for _, input := range []string{"", "notacolor", "#12", "#12345", "#zzzzzz", "0891b2"} {
		if got := HexToOKLCH(input); got != FallbackOKLCH {
			t.Fatalf("input %q: expected fallback, got %q", input, got)
		}
	}
}

func TestConverterMemoizes(t *testing.T) {
	conv := NewConverter(4)

	first := conv.Convert("#0891b2")
	second := conv.Convert("#0891b2")
	if first != second {
		t.Fatalf("conversion not stable: %q vs %q", first, second)
	}
	if conv.Len() != 1 {
		t.Fatalf("expected one cached entry, got %d", conv.Len())
	}

	if got := conv.Convert("notacolor"); got != FallbackOKLCH {
		t.Fatalf("expected cached fallback, got %q", got)
	}
	if got := conv.Convert("notacolor"); got != FallbackOKLCH {
		t.Fatalf("fallback not stable on repeat, got %q", got)
	}
}

func TestConverterEvictsBeyondCapacity(t *testing.T) {
	conv := NewConverter(2)
	conv.Convert("#111111")
	conv.Convert("#222222")
	conv.Convert("#333333")
	if conv.Len() > 2 {
		t.Fatalf("cache exceeded bound: %d entries", conv.Len())
	}
}
