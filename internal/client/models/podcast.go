package models

import "time"

const podcastDateLayout = "Jan 2, 2006"

// Podcast is the cached summary of an episode shown in podcast lists.
type Podcast struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	FeaturedImageURL string    `json:"featuredImageUrl,omitempty"`
	UploadDate       time.Time `json:"uploadDate"`
}

// DateString formats the upload date for display, or returns "" when the
// date is unknown.
func (p Podcast) DateString() string {
	if p.UploadDate.IsZero() {
		return ""
	}
	return p.UploadDate.Format(podcastDateLayout)
}
