package registry

// Package is a single search hit.
type Package struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Version     string `json:"version,omitempty"`
}

// Page is one page of search results.
type Page struct {
	Packages []Package
	Total    int
}

// searchResponse mirrors the payload returned by /-/v1/search.
type searchResponse struct {
	Objects []searchObject `json:"objects"`
	Total   int            `json:"total"`
}

type searchObject struct {
	Package Package `json:"package"`
}

func (r searchResponse) page() Page {
	pkgs := make([]Package, 0, len(r.Objects))
	for _, obj := range r.Objects {
		if obj.Package.Name == "" {
			continue
		}
		pkgs = append(pkgs, obj.Package)
	}
	return Page{Packages: pkgs, Total: r.Total}
}
