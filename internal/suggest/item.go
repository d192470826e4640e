package suggest

import (
	"strings"

	"github.com/five82/pkgscout/internal/registry"
)

// Kind tags where a suggestion came from. Lower kinds win ties.
type Kind int

const (
	KindPackage Kind = iota
	KindRecent
	KindPopular
)

func (k Kind) String() string {
	switch k {
	case KindPackage:
		return "package"
	case KindRecent:
		return "recent"
	case KindPopular:
		return "popular"
	default:
		return "unknown"
	}
}

// Item is one suggestion. Description is only set for KindPackage.
type Item struct {
	Kind        Kind
	Value       string
	Description string
}

const (
	// MaxItems bounds the merged suggestion list.
	MaxItems = 12

	emptyRecentLimit     = 6
	emptyPopularLimit    = 8
	filteredRecentLimit  = 4
	filteredPopularLimit = 6
)

// Merge concatenates api, recent and popular in that order, keeps the first
// item seen for each Value and truncates to MaxItems.
func Merge(api, recent, popular []Item) []Item {
	out := make([]Item, 0, MaxItems)
	seen := make(map[string]struct{}, MaxItems)
	for _, group := range [][]Item{api, recent, popular} {
		for _, item := range group {
			if len(out) == MaxItems {
				return out
			}
			if _, dup := seen[item.Value]; dup {
				continue
			}
			seen[item.Value] = struct{}{}
			out = append(out, item)
		}
	}
	return out
}

// LocalItems derives the recent and popular contributions for query. An
// empty query lists the head of each source unfiltered; otherwise entries
// containing query case-insensitively are kept.
func LocalItems(query string, recent, popular []string) (recentItems, popularItems []Item) {
	query = strings.TrimSpace(query)
	if query == "" {
		return toItems(KindRecent, recent, emptyRecentLimit, ""),
			toItems(KindPopular, popular, emptyPopularLimit, "")
	}
	needle := strings.ToLower(query)
	return toItems(KindRecent, recent, filteredRecentLimit, needle),
		toItems(KindPopular, popular, filteredPopularLimit, needle)
}

func toItems(kind Kind, values []string, limit int, needle string) []Item {
	out := make([]Item, 0, limit)
	for _, v := range values {
		if len(out) == limit {
			break
		}
		if needle != "" && !strings.Contains(strings.ToLower(v), needle) {
			continue
		}
		out = append(out, Item{Kind: kind, Value: v})
	}
	return out
}

func packageItems(pkgs []registry.Package) []Item {
	out := make([]Item, 0, len(pkgs))
	for _, p := range pkgs {
		out = append(out, Item{Kind: KindPackage, Value: p.Name, Description: p.Description})
	}
	return out
}

func cloneItems(items []Item) []Item {
	if len(items) == 0 {
		return nil
	}
	dup := make([]Item, len(items))
	copy(dup, items)
	return dup
}
