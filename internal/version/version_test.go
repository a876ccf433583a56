package version

import (
	"runtime"
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	s := String()
	if !strings.HasPrefix(s, Version) {
		t.Errorf("String() should start with %q, got: %s", Version, s)
	}
	if !strings.Contains(s, runtime.Version()) {
		t.Errorf("String() should contain go version, got: %s", s)
	}
}
