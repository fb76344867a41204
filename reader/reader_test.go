package reader

import (
	"bytes"
	"testing"
)

func TestUniversalReader(t *testing.T) {
	s := "\xef\xbb\xbfhello world!\r"

	r := bytes.NewBufferString(s)
	ur := &UniversalReader{r}

	buf := make([]byte, 20)
	n, err := ur.Read(buf)

	if err != nil {
		t.Fatalf("problem reading: %s", err)
	}

	if cap(buf) != 20 {
		t.Fatalf("expected 20 cap, got %d", cap(buf))
	}

	if len(s)-3 != n {
		t.Errorf("expected %d bytes, got %d", len(s)-3, n)
	}

	exp := "hello world!\n"

	if string(buf[:n]) != exp {
		t.Errorf("expected '%v', got '%v'", exp, string(buf[:n]))
	}
}

func TestDetectType(t *testing.T) {
	tests := map[string]struct {
		Format      string
		Compression string
	}{
		"data.csv":           {"csv", ""},
		"data.csv.gz":        {"csv", "gzip"},
		"data.json.bz2":      {"json", "bzip2"},
		"data.ldjson":        {"ldjson", ""},
		"/tmp/path/data.csv": {"csv", ""},
		"data.txt":           {"", ""},
	}

	for url, test := range tests {
		t.Run(url, func(t *testing.T) {
			f, c := DetectType(url)

			if f != test.Format || c != test.Compression {
				t.Errorf("expected (%s, %s), got (%s, %s)", test.Format, test.Compression, f, c)
			}
		})
	}
}

func TestOpenUnknownCompression(t *testing.T) {
	if _, err := Open("data.csv", "zip"); err == nil {
		t.Error("expected error for unknown compression")
	}
}
