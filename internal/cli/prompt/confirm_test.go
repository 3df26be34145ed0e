package prompt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/thoreinstein/tsfix/internal/errors"
)

func TestConfirm(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"yes", "y\n", true},
		{"yes word", "yes\n", true},
		{"uppercase", "Y\n", true},
		{"no", "n\n", false},
		{"default is no", "\n", false},
		{"garbage is no", "sure\n", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			c := NewConfirmerWithIO(strings.NewReader(tt.input), &buf)

			got, err := c.Confirm("Patch src/a.ts?")
			if err != nil {
				t.Fatalf("Confirm() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Confirm(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if !strings.Contains(buf.String(), "Patch src/a.ts? [y/N]:") {
				t.Errorf("prompt text = %q", buf.String())
			}
		})
	}
}

func TestConfirm_EOFCancels(t *testing.T) {
	var buf bytes.Buffer
	c := NewConfirmerWithIO(strings.NewReader(""), &buf)

	_, err := c.Confirm("continue?")
	if !errors.Is(err, ErrCancelled) {
		t.Errorf("Confirm() error = %v, want ErrCancelled", err)
	}
}

func TestConfirm_SequentialReads(t *testing.T) {
	var buf bytes.Buffer
	c := NewConfirmerWithIO(strings.NewReader("y\nn\n"), &buf)

	first, err := c.Confirm("first?")
	if err != nil || !first {
		t.Fatalf("first Confirm() = %v, %v", first, err)
	}
	second, err := c.Confirm("second?")
	if err != nil || second {
		t.Fatalf("second Confirm() = %v, %v", second, err)
	}
}
