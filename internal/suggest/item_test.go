package suggest

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func values(items []Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Value)
	}
	return out
}

func TestMerge_OrderAndDedup(t *testing.T) {
	api := []Item{{Kind: KindPackage, Value: "reactstrap"}}
	recent, popular := LocalItems("re", []string{"react", "redux"}, []string{"react", "vue"})

	got := Merge(api, recent, popular)
	assert.Equal(t, []string{"reactstrap", "react", "redux"}, values(got))
	assert.Equal(t, KindRecent, got[1].Kind)
}

func TestMerge_SourceConcatenationOrder(t *testing.T) {
	got := Merge(
		[]Item{{Kind: KindPackage, Value: "reactstrap"}},
		[]Item{{Kind: KindRecent, Value: "react"}, {Kind: KindRecent, Value: "redux"}},
		[]Item{{Kind: KindPopular, Value: "react"}, {Kind: KindPopular, Value: "vue"}},
	)
	assert.Equal(t, []string{"reactstrap", "react", "redux", "vue"}, values(got))
	assert.Equal(t, []Kind{KindPackage, KindRecent, KindRecent, KindPopular},
		[]Kind{got[0].Kind, got[1].Kind, got[2].Kind, got[3].Kind})
}

func TestMerge_FirstSourceWinsTies(t *testing.T) {
	api := []Item{{Kind: KindPackage, Value: "react", Description: "from api"}}
	recent := []Item{{Kind: KindRecent, Value: "react"}}
	popular := []Item{{Kind: KindPopular, Value: "react"}, {Kind: KindPopular, Value: "vue"}}

	got := Merge(api, recent, popular)
	require.Len(t, got, 2)
	assert.Equal(t, Item{Kind: KindPackage, Value: "react", Description: "from api"}, got[0])
	assert.Equal(t, "vue", got[1].Value)
}

func TestMerge_RandomOverlapKeepsBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	gen := func(kind Kind, n int) []Item {
		out := make([]Item, n)
		for i := range out {
			out[i] = Item{Kind: kind, Value: fmt.Sprintf("p%d", rng.Intn(15))}
		}
		return out
	}

	for i := 0; i < 300; i++ {
		got := Merge(gen(KindPackage, rng.Intn(15)), gen(KindRecent, rng.Intn(10)), gen(KindPopular, rng.Intn(20)))
		require.LessOrEqual(t, len(got), MaxItems)

		seen := map[string]bool{}
		for _, it := range got {
			require.False(t, seen[it.Value], "duplicate %q", it.Value)
			seen[it.Value] = true
		}
	}
}

func TestLocalItems(t *testing.T) {
	recent := []string{"r1", "r2", "r3", "r4", "r5", "r6", "r7", "React-DOM"}
	popular := []string{"p1", "p2", "p3", "p4", "p5", "p6", "p7", "p8", "p9", "react"}

	tests := []struct {
		name        string
		query       string
		wantRecent  []string
		wantPopular []string
	}{
		{
			name:        "empty query takes heads",
			query:       "  ",
			wantRecent:  []string{"r1", "r2", "r3", "r4", "r5", "r6"},
			wantPopular: []string{"p1", "p2", "p3", "p4", "p5", "p6", "p7", "p8"},
		},
		{
			name:        "filter is case insensitive",
			query:       "REACT",
			wantRecent:  []string{"React-DOM"},
			wantPopular: []string{"react"},
		},
		{
			name:        "filtered limits",
			query:       "r",
			wantRecent:  []string{"r1", "r2", "r3", "r4"},
			wantPopular: []string{"react"},
		},
		{
			name:        "filtered popular limit",
			query:       "p",
			wantRecent:  []string{},
			wantPopular: []string{"p1", "p2", "p3", "p4", "p5", "p6"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, p := LocalItems(tt.query, recent, popular)
			assert.Equal(t, tt.wantRecent, values(r))
			assert.Equal(t, tt.wantPopular, values(p))
		})
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "package", KindPackage.String())
	assert.Equal(t, "recent", KindRecent.String())
	assert.Equal(t, "popular", KindPopular.String())
	assert.Equal(t, "unknown", Kind(9).String())
}
