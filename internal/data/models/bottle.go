package models

// Bottle is a prebuilt binary artifact for a package.
type Bottle struct {
	// Name is the fully-qualified package name the bottle was built from.
	Name     string `json:"name"`
	Platform string `json:"platform"`
	Arch     string `json:"arch"`
	Version  string `json:"version"`
}
