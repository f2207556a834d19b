package version

import (
	"strings"
	"testing"
)

func TestString_ContainsVersionAndBuildTime(t *testing.T) {
	t.Parallel()

	s := String()
	if !strings.Contains(s, "plangate version") {
		t.Errorf("expected banner prefix, got %q", s)
	}
	if !strings.Contains(s, Version) {
		t.Errorf("expected version %q in %q", Version, s)
	}
	if !strings.Contains(s, BuildTime) {
		t.Errorf("expected build time %q in %q", BuildTime, s)
	}
}
