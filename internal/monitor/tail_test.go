package monitor

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTemp(t *testing.T, content string) *os.File {
	t.Helper()
	path := filepath.Join(t.TempDir(), "server.log")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open fixture: %v", err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

func TestTail(t *testing.T) {
	tests := []struct {
		name    string
		content string
		n       int
		want    []string
	}{
		{
			name:    "last two of many",
			content: "one\ntwo\nthree\nfour\n",
			n:       2,
			want:    []string{"three", "four"},
		},
		{
			name:    "single line file asked for two",
			content: "only line\n",
			n:       2,
			want:    []string{"only line"},
		},
		{
			name:    "no trailing newline",
			content: "one\ntwo\npartial",
			n:       2,
			want:    []string{"two", "partial"},
		},
		{
			name:    "empty file",
			content: "",
			n:       2,
			want:    nil,
		},
		{
			name:    "zero lines requested",
			content: "one\n",
			n:       0,
			want:    nil,
		},
		{
			name:    "exactly the requested count",
			content: "one\ntwo\n",
			n:       2,
			want:    []string{"one", "two"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := writeTemp(t, tt.content)

			got, err := Tail(f, tt.n)
			if err != nil {
				t.Fatalf("Tail() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Tail() = %q, want %q", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Tail()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestTail_FileLargerThanBlock(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 500; i++ {
		fmt.Fprintf(&b, "log line %04d with some padding to cross the block size\n", i)
	}
	f := writeTemp(t, b.String())

	got, err := Tail(f, 2)
	if err != nil {
		t.Fatalf("Tail() error = %v", err)
	}
	want := []string{
		"log line 0498 with some padding to cross the block size",
		"log line 0499 with some padding to cross the block size",
	}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("Tail() = %q, want %q", got, want)
	}
}

func TestTail_LineLongerThanBlock(t *testing.T) {
	// A final line spanning several blocks forces the window to grow
	// until the whole-file fallback kicks in.
	long := strings.Repeat("x", 3*tailBlockSize)
	f := writeTemp(t, "first\nsecond\n"+long+"\n")

	got, err := Tail(f, 2)
	if err != nil {
		t.Fatalf("Tail() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Tail() returned %d lines, want 2", len(got))
	}
	if got[0] != "second" {
		t.Errorf("Tail()[0] = %q, want %q", got[0], "second")
	}
	if got[1] != long {
		t.Errorf("Tail()[1] = %d bytes, want the long line intact", len(got[1]))
	}
}
