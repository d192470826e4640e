// Package popular supplies the static popularity list used as the last
// suggestion source.
package popular

import (
	"errors"
	"fmt"
	"os"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

var defaultPackages = []string{
	"react",
	"lodash",
	"express",
	"axios",
	"typescript",
	"vue",
	"next",
	"webpack",
	"eslint",
	"prettier",
	"jest",
	"moment",
	"chalk",
	"commander",
	"dotenv",
	"uuid",
	"redux",
	"tailwindcss",
	"vite",
	"zod",
}

// Default returns a copy of the built-in list, most popular first.
func Default() []string {
	return clean(defaultPackages)
}

// Load reads a TOML file of the form
//
//	packages = ["react", "vue"]
//
// An empty path or a missing file yields Default. Entries are trimmed and
// deduplicated with the original order kept.
func Load(path string) ([]string, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("read popular list: %w", err)
	}

	var raw struct {
		Packages []string `toml:"packages"`
	}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse popular list: %w", err)
	}
	list := clean(raw.Packages)
	if len(list) == 0 {
		return Default(), nil
	}
	return list, nil
}

func clean(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
		if trimmed == "" {
			continue
		}
		if _, dup := seen[trimmed]; dup {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	return out
}
