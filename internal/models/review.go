package models

// Review is a testimonial shown on course pages. The course reference is free
// text rather than a foreign key, and nothing stops multiple reviews per
// course. Rating and ReviewCount on catalog records are maintained elsewhere;
// reviews are never aggregated server-side.
type Review struct {
	BaseModel
	Course   string `json:"course"`
	Rating   int    `json:"rating"`
	Text     string `json:"text"`
	Avatar   string `json:"avatar"`
	Verified bool   `json:"verified"`
	Date     string `json:"date"`
}
