package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriteTableAlignsColumns(t *testing.T) {
	var out bytes.Buffer
	err := writeTable(&out, []string{"CLASS", "COMPLETED"}, [][]string{
		{"anonymous", "yes"},
		{"authenticated", "no"},
	})
	if err != nil {
		t.Fatalf("writeTable: %v", err)
	}

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus two rows, got %d lines", len(lines))
	}
	header := strings.Index(lines[0], "COMPLETED")
	for _, line := range lines[1:] {
		if !strings.HasPrefix(line[header:], "yes") && !strings.HasPrefix(line[header:], "no") {
			t.Fatalf("column not aligned under header: %q", line)
		}
	}
}

func TestClip(t *testing.T) {
	short := ".topic-list"
	if got := clip(short); got != short {
		t.Fatalf("short cell must pass through, got %q", got)
	}

	long := strings.Repeat(".selector", 10)
	got := clip(long)
	if len([]rune(got)) != cellLimit {
		t.Fatalf("clipped cell length: got %d runes", len([]rune(got)))
	}
	if !strings.HasSuffix(got, "…") {
		t.Fatalf("clipped cell must end with an ellipsis, got %q", got)
	}
}

func TestFormatYesNo(t *testing.T) {
	if formatYesNo(true) != "yes" || formatYesNo(false) != "no" {
		t.Fatal("unexpected yes/no rendering")
	}
}
