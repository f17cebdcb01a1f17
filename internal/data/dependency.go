package data

// DependencyKey uniquely identifies a catalog data dependency.
type DependencyKey string

// FetchScope says what a dependency is keyed on.
type FetchScope string

const (
	// ScopePackage means the dependency is fetched per package and keyed on
	// the package's fully-qualified name.
	ScopePackage FetchScope = "package"

	// ScopeGlobal means the dependency is catalog-wide and independent of any
	// particular package.
	ScopeGlobal FetchScope = "global"
)

// DependencyRequest represents a request for a specific dependency with optional parameters.
type DependencyRequest struct {
	Key    DependencyKey
	Params map[string]string
}
