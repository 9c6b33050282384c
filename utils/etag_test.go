package utils

import (
	"strings"
	"testing"
)

func TestGenerateETag(t *testing.T) {
	a := GenerateETag("12", "abc", "400")
	b := GenerateETag("12", "abc", "400")
	if a != b {
		t.Errorf("same parts produced different tags: %s vs %s", a, b)
	}

	if !strings.HasPrefix(a, `"`) || !strings.HasSuffix(a, `"`) {
		t.Errorf("etag not quoted: %s", a)
	}

	c := GenerateETag("12", "abc", "500")
	if a == c {
		t.Error("different parts produced the same tag")
	}

	// joining must not let adjacent parts collide
	if GenerateETag("ab", "c") == GenerateETag("a", "bc") {
		t.Error("part boundaries not preserved")
	}
}
