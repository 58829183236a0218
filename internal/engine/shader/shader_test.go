package shader

import (
	"strings"
	"testing"
)

const source = `#version 410 core
uniform float uTime;
void main() {
    gl_FragColor = vec4(uTim);
}
`

func TestExcerptMesa(t *testing.T) {
	got := Excerpt(source, "0:4(25): error: `uTim' undeclared\n", 1)
	want := "   3| void main() {\n" +
		"   4|     gl_FragColor = vec4(uTim);\n" +
		"   5| }\n"
	if got != want {
		t.Errorf("Excerpt:\n%s\nwant:\n%s", got, want)
	}
}

func TestExcerptNvidiaAndGap(t *testing.T) {
	log := "0(1) : error C0000: bad version\n0(4) : error C1008: undefined variable\n"
	got := Excerpt(source, log, 0)
	if !strings.Contains(got, "   1| #version 410 core\n    ...\n   4|") {
		t.Errorf("Excerpt = %q", got)
	}
}

func TestExcerptMergesOverlaps(t *testing.T) {
	got := Excerpt(source, "ERROR: 0:2: a\nERROR: 0:3: b\n", 1)
	if n := strings.Count(got, "\n"); n != 4 {
		t.Errorf("Excerpt has %d lines, want 4:\n%s", n, got)
	}
	if strings.Contains(got, "...") {
		t.Errorf("Excerpt should be contiguous:\n%s", got)
	}
}

func TestExcerptNoLines(t *testing.T) {
	if got := Excerpt(source, "link failed", 2); got != "" {
		t.Errorf("Excerpt = %q, want empty", got)
	}
	if got := Excerpt(source, "0:99(1): error", 2); got != "" {
		t.Errorf("out of range line gave %q", got)
	}
}

func TestCompileErrorMessage(t *testing.T) {
	err := &CompileError{Program: "sand/0", Stage: "fragment", Log: "0:4(25): error\x00", Excerpt: "   4| x\n"}
	got := err.Error()
	want := "sand/0 fragment: 0:4(25): error\n   4| x\n"
	if got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
