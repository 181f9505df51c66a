package models

import (
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// Course is the institute's primary purchasable offering.
type Course struct {
	BaseModel
	Slug             string         `gorm:"uniqueIndex" json:"slug"`
	Title            string         `json:"title"`
	ShortDescription string         `json:"short_description"`
	FullDescription  string         `json:"full_description"`
	Price            *float64       `json:"price"`
	OriginalPrice    *float64       `json:"original_price"`
	Thumbnails       pq.StringArray `gorm:"type:text[]" json:"thumbnails"`
	Category         string         `json:"category"`
	Mode             string         `json:"mode"` // online|offline|hybrid
	Duration         string         `json:"duration"`
	Rating           float64        `json:"rating"`
	ReviewCount      int            `json:"review_count"`
	WhatYouLearn     pq.StringArray `gorm:"type:text[]" json:"what_you_learn"`
	Curriculum       datatypes.JSON `json:"curriculum"`
	WhoIsThisFor     pq.StringArray `gorm:"type:text[]" json:"who_is_this_for"`
	Faculty          string         `json:"faculty"`
	FAQs             datatypes.JSON `json:"faqs"`
	Tags             pq.StringArray `gorm:"type:text[]" json:"tags"`
	Featured         bool           `json:"featured"`
	Popular          bool           `json:"popular"`
}

// Exam describes a licensing or entrance exam the institute prepares for.
type Exam struct {
	BaseModel
	Slug        string         `gorm:"uniqueIndex" json:"slug"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Price       *float64       `json:"price"`
	Thumbnails  pq.StringArray `gorm:"type:text[]" json:"thumbnails"`
	Syllabus    datatypes.JSON `json:"syllabus"`
	Mode        string         `json:"mode"`
	Duration    string         `json:"duration"`
	Rating      float64        `json:"rating"`
	ReviewCount int            `json:"review_count"`
	Tags        pq.StringArray `gorm:"type:text[]" json:"tags"`
	Featured    bool           `json:"featured"`
	Popular     bool           `json:"popular"`
}

// TestSeries is a bundle of practice tests sold separately from courses.
type TestSeries struct {
	BaseModel
	Slug        string         `gorm:"uniqueIndex" json:"slug"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Price       *float64       `json:"price"`
	TestCount   int            `json:"test_count"`
	Features    pq.StringArray `gorm:"type:text[]" json:"features"`
	Thumbnails  pq.StringArray `gorm:"type:text[]" json:"thumbnails"`
	Rating      float64        `json:"rating"`
	ReviewCount int            `json:"review_count"`
	Featured    bool           `json:"featured"`
	Popular     bool           `json:"popular"`
}

// Video is a recorded lecture available for individual purchase.
type Video struct {
	BaseModel
	Slug        string         `gorm:"uniqueIndex" json:"slug"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Price       *float64       `json:"price"`
	VideoURL    string         `json:"video_url"`
	Duration    string         `json:"duration"`
	Thumbnails  pq.StringArray `gorm:"type:text[]" json:"thumbnails"`
	Tags        pq.StringArray `gorm:"type:text[]" json:"tags"`
	Rating      float64        `json:"rating"`
	ReviewCount int            `json:"review_count"`
	Featured    bool           `json:"featured"`
	Popular     bool           `json:"popular"`
}

// Note is downloadable study material. Notes may be free, so price stays nil.
type Note struct {
	BaseModel
	Slug        string         `gorm:"uniqueIndex" json:"slug"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Subject     string         `json:"subject"`
	Price       *float64       `json:"price"`
	FileURL     string         `json:"file_url"`
	Pages       int            `json:"pages"`
	Thumbnails  pq.StringArray `gorm:"type:text[]" json:"thumbnails"`
	Featured    bool           `json:"featured"`
	Popular     bool           `json:"popular"`
}

// DentistRegistration is a registration-assistance program sold like a course.
type DentistRegistration struct {
	BaseModel
	Slug        string         `gorm:"uniqueIndex" json:"slug"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Price       *float64       `json:"price"`
	Benefits    pq.StringArray `gorm:"type:text[]" json:"benefits"`
	Thumbnails  pq.StringArray `gorm:"type:text[]" json:"thumbnails"`
	Featured    bool           `json:"featured"`
	Popular     bool           `json:"popular"`
}
