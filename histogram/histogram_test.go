package histogram

import (
	"bytes"
	"testing"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestFull(t *testing.T) {
	b, err := Full([]float64{1, 2, 2, 3, 5, 8}, DefaultBins)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if !bytes.HasPrefix(b, pngMagic) {
		t.Error("expected a PNG image")
	}
}

func TestMini(t *testing.T) {
	b, err := Mini([]float64{1, 2, 2, 3, 5, 8}, DefaultBins)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if !bytes.HasPrefix(b, pngMagic) {
		t.Error("expected a PNG image")
	}
}

func TestRenderEmpty(t *testing.T) {
	b, err := Full(nil, DefaultBins)

	if b != nil || err != nil {
		t.Errorf("expected nil result for no data, got %v, %v", b, err)
	}
}
