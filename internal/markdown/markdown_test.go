package markdown

import (
	"strings"
	"testing"
)

func TestRender(t *testing.T) {
	md := "# Plan\n\n- warm up\n- deadlift\n"
	for _, width := range []int{0, 40} {
		out := Render(md, width)
		for _, want := range []string{"Plan", "warm", "deadlift"} {
			if !strings.Contains(out, want) {
				t.Errorf("Render(width=%d) = %q, missing %q", width, out, want)
			}
		}
	}
}
