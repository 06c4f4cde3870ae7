package version

import (
	"strings"
	"testing"
)

func Test_Version_Format(t *testing.T) {
	if got := Format(); got != "0.4.0" {
		t.Fatalf("format = %q", got)
	}
}

func Test_Version_String_Mentions_Both(t *testing.T) {
	s := String()
	if !strings.Contains(s, Version) || !strings.Contains(s, "format "+Format()) {
		t.Fatalf("version string = %q", s)
	}
}
