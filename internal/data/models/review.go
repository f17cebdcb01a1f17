package models

// Review is a user review posted against a package.
type Review struct {
	Title   string `json:"title"`
	Comment string `json:"comment,omitempty"`
	// Rating is a 0-5 star score.
	Rating int `json:"rating"`
}
