package models

// Package is a catalog package record.
//
// FullName is the namespace/name identifier used to address the package both
// in the catalog API and on the local installer command line.
type Package struct {
	FullName         string `json:"full_name"`
	Name             string `json:"name"`
	Homepage         string `json:"homepage,omitempty"`
	Version          string `json:"version"`
	LastModified     string `json:"last_modified,omitempty"`
	ShortDescription string `json:"short_description,omitempty"`
	ThumbImageURL    string `json:"thumb_image_url,omitempty"`
	Installs         int    `json:"installs"`
	Maintainer       string `json:"maintainer,omitempty"`
}
