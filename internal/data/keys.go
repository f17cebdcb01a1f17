package data

const (
	// DepPackageIndex represents the full catalog package listing.
	DepPackageIndex DependencyKey = "pkg.index"

	// DepPackageDetails represents the catalog record for a single package,
	// addressed by its fully-qualified name.
	DepPackageDetails DependencyKey = "pkg.details"

	// DepPackageReviews represents the user reviews posted against a package.
	DepPackageReviews DependencyKey = "pkg.reviews"

	// DepPackageBottles represents the prebuilt binary artifacts (bottles)
	// available for a package, one entry per platform/arch/version tuple.
	DepPackageBottles DependencyKey = "pkg.bottles"

	// DepFeaturedPackages represents the curated set of packages the catalog
	// currently features on its front page.
	DepFeaturedPackages DependencyKey = "pkg.featured"

	// DepPosts represents blog and guide posts published by the catalog.
	// Accepts an optional "tag" param to filter by tag.
	DepPosts DependencyKey = "posts.list"
)

// Priority returns the fetch priority for a dependency key (lower is higher priority).
func Priority(key DependencyKey) int {
	switch key {
	case DepPackageDetails:
		return 0 // The GUI blocks on details, fetch first (P0)
	case DepPackageBottles, DepPackageIndex:
		return 1 // Install-relevant data (P1)
	default:
		return 2 // Everything else (P2)
	}
}
