package models

// Post is a blog or guide entry published by the catalog.
type Post struct {
	Title         string   `json:"title"`
	SubTitle      string   `json:"sub_title,omitempty"`
	Slug          string   `json:"slug"`
	Link          string   `json:"link"`
	ThumbImageURL string   `json:"thumb_image_url,omitempty"`
	Tags          []string `json:"tags,omitempty"`
}
