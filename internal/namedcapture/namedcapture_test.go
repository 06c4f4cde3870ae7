package namedcapture

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func Test_Names(t *testing.T) {
	cases := []struct {
		src  string
		want []string
	}{
		{`(?<year>\d+)-(?<month>\d+)`, []string{"year", "month"}},
		{`(?'a'x)(?<a>y)`, []string{"a"}},
		{`\(?<no>x\)`, nil},
		{`[(?<no>)]`, nil},
		{`(?<=look)(?<!behind)`, nil},
		{`(?:plain)(x)`, nil},
		{`(?<Upper>x)`, []string{"Upper"}},
		{`(?<1bad>x)`, nil},
		{`(?<unterminated`, nil},
	}
	for _, tc := range cases {
		t.Run(tc.src, func(t *testing.T) {
			got := Names([]byte(tc.src))
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("Names(%q) mismatch (-want +got):\n%s", tc.src, diff)
			}
		})
	}
}

func Test_IsLocalName(t *testing.T) {
	if !IsLocalName("year") || !IsLocalName("_x") {
		t.Fatalf("lowercase names must be locals")
	}
	if IsLocalName("Year") || IsLocalName("") {
		t.Fatalf("constants and empty names are not locals")
	}
}
