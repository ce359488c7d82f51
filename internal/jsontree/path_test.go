package jsontree

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePath(t *testing.T) {
	tests := []struct {
		in   string
		want Path
	}{
		{"", nil},
		{"title", Path{Key("title")}},
		{"jobs[2].title", Path{Key("jobs"), Index(2), Key("title")}},
		{"[0]", Path{Index(0)}},
		{"a.b.c", Path{Key("a"), Key("b"), Key("c")}},
		{`slides["a.b"][1]`, Path{Key("slides"), Key("a.b"), Index(1)}},
		{"matrix[1][0]", Path{Key("matrix"), Index(1), Index(0)}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePath(tt.in)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("ParsePath(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
			assert.Equal(t, tt.in, got.String())
		})
	}
}

func TestParsePathErrors(t *testing.T) {
	for _, in := range []string{".a", "a.", "a..b", "a[", "a[x]", "a[-1]", "a]", `a["x]`, "a[0]b", "jobs[+1].title", "a[01]", "a[ 1]", "a.[0]", `a.["b"]`} {
		t.Run(in, func(t *testing.T) {
			_, err := ParsePath(in)
			assert.Error(t, err)
		})
	}
}

func TestPathChildDoesNotAlias(t *testing.T) {
	base := make(Path, 1, 4)
	base[0] = Key("a")
	x := base.Child(Key("x"))
	y := base.Child(Key("y"))
	assert.Equal(t, "a.x", x.String())
	assert.Equal(t, "a.y", y.String())
}
