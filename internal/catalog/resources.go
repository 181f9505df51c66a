package catalog

import (
	"github.com/example/dentacademy/internal/models"
)

// Descriptors for every catalog resource type. Required lists are ordered:
// the first missing field is the one named in the validation error.
//
// Courses require the denormalized rating and reviewCount aggregates up
// front; a zero value is treated as absent, so a genuinely unrated course
// cannot be created with rating 0.

var catalogFlags = []string{"featured", "popular"}

// Courses describes the Course resource.
func Courses() Descriptor[models.Course] {
	return Descriptor[models.Course]{
		Name: "Course",
		Required: []Field[models.Course]{
			{Name: "slug", Missing: func(r *models.Course) bool { return r.Slug == "" }},
			{Name: "title", Missing: func(r *models.Course) bool { return r.Title == "" }},
			{Name: "shortDescription", Missing: func(r *models.Course) bool { return r.ShortDescription == "" }},
			{Name: "fullDescription", Missing: func(r *models.Course) bool { return r.FullDescription == "" }},
			{Name: "price", Missing: func(r *models.Course) bool { return r.Price == nil }},
			{Name: "thumbnails", Missing: func(r *models.Course) bool { return len(r.Thumbnails) == 0 }},
			{Name: "category", Missing: func(r *models.Course) bool { return r.Category == "" }},
			{Name: "mode", Missing: func(r *models.Course) bool { return r.Mode == "" }},
			{Name: "duration", Missing: func(r *models.Course) bool { return r.Duration == "" }},
			{Name: "rating", Missing: func(r *models.Course) bool { return r.Rating == 0 }},
			{Name: "reviewCount", Missing: func(r *models.Course) bool { return r.ReviewCount == 0 }},
			{Name: "whatYouLearn", Missing: func(r *models.Course) bool { return len(r.WhatYouLearn) == 0 }},
			{Name: "curriculum", Missing: func(r *models.Course) bool { return len(r.Curriculum) == 0 }},
			{Name: "whoIsThisFor", Missing: func(r *models.Course) bool { return len(r.WhoIsThisFor) == 0 }},
			{Name: "faculty", Missing: func(r *models.Course) bool { return r.Faculty == "" }},
			{Name: "faqs", Missing: func(r *models.Course) bool { return len(r.FAQs) == 0 }},
		},
		Slug:      func(r *models.Course) string { return r.Slug },
		Flags:     catalogFlags,
		Normalize: func(r *models.Course) { r.Rating = clampRating(r.Rating) },
	}
}

// Exams describes the Exam resource.
func Exams() Descriptor[models.Exam] {
	return Descriptor[models.Exam]{
		Name: "Exam",
		Required: []Field[models.Exam]{
			{Name: "slug", Missing: func(r *models.Exam) bool { return r.Slug == "" }},
			{Name: "title", Missing: func(r *models.Exam) bool { return r.Title == "" }},
			{Name: "description", Missing: func(r *models.Exam) bool { return r.Description == "" }},
			{Name: "thumbnails", Missing: func(r *models.Exam) bool { return len(r.Thumbnails) == 0 }},
		},
		Slug:      func(r *models.Exam) string { return r.Slug },
		Flags:     catalogFlags,
		Normalize: func(r *models.Exam) { r.Rating = clampRating(r.Rating) },
	}
}

// TestSeriesDesc describes the TestSeries resource.
func TestSeriesDesc() Descriptor[models.TestSeries] {
	return Descriptor[models.TestSeries]{
		Name: "TestSeries",
		Required: []Field[models.TestSeries]{
			{Name: "slug", Missing: func(r *models.TestSeries) bool { return r.Slug == "" }},
			{Name: "title", Missing: func(r *models.TestSeries) bool { return r.Title == "" }},
			{Name: "description", Missing: func(r *models.TestSeries) bool { return r.Description == "" }},
			{Name: "price", Missing: func(r *models.TestSeries) bool { return r.Price == nil }},
		},
		Slug:      func(r *models.TestSeries) string { return r.Slug },
		Flags:     catalogFlags,
		Normalize: func(r *models.TestSeries) { r.Rating = clampRating(r.Rating) },
	}
}

// Videos describes the Video resource.
func Videos() Descriptor[models.Video] {
	return Descriptor[models.Video]{
		Name: "Video",
		Required: []Field[models.Video]{
			{Name: "slug", Missing: func(r *models.Video) bool { return r.Slug == "" }},
			{Name: "title", Missing: func(r *models.Video) bool { return r.Title == "" }},
			{Name: "description", Missing: func(r *models.Video) bool { return r.Description == "" }},
			{Name: "price", Missing: func(r *models.Video) bool { return r.Price == nil }},
			{Name: "videoUrl", Missing: func(r *models.Video) bool { return r.VideoURL == "" }},
		},
		Slug:      func(r *models.Video) string { return r.Slug },
		Flags:     catalogFlags,
		Normalize: func(r *models.Video) { r.Rating = clampRating(r.Rating) },
	}
}

// Notes describes the Note resource. Notes may be free, so price is optional.
func Notes() Descriptor[models.Note] {
	return Descriptor[models.Note]{
		Name: "Note",
		Required: []Field[models.Note]{
			{Name: "slug", Missing: func(r *models.Note) bool { return r.Slug == "" }},
			{Name: "title", Missing: func(r *models.Note) bool { return r.Title == "" }},
			{Name: "description", Missing: func(r *models.Note) bool { return r.Description == "" }},
			{Name: "fileUrl", Missing: func(r *models.Note) bool { return r.FileURL == "" }},
		},
		Slug:  func(r *models.Note) string { return r.Slug },
		Flags: catalogFlags,
	}
}

// DentistRegistrations describes the registration-assistance programs.
func DentistRegistrations() Descriptor[models.DentistRegistration] {
	return Descriptor[models.DentistRegistration]{
		Name: "DentistRegistration",
		Required: []Field[models.DentistRegistration]{
			{Name: "slug", Missing: func(r *models.DentistRegistration) bool { return r.Slug == "" }},
			{Name: "name", Missing: func(r *models.DentistRegistration) bool { return r.Name == "" }},
			{Name: "description", Missing: func(r *models.DentistRegistration) bool { return r.Description == "" }},
			{Name: "price", Missing: func(r *models.DentistRegistration) bool { return r.Price == nil }},
		},
		Slug:  func(r *models.DentistRegistration) string { return r.Slug },
		Flags: catalogFlags,
	}
}

// Reviews describes the Review resource. Reviews are id-addressed, have no
// slug or uniqueness rule, and allow multiple entries per course.
func Reviews() Descriptor[models.Review] {
	return Descriptor[models.Review]{
		Name: "Review",
		Required: []Field[models.Review]{
			{Name: "course", Missing: func(r *models.Review) bool { return r.Course == "" }},
			{Name: "text", Missing: func(r *models.Review) bool { return r.Text == "" }},
			{Name: "date", Missing: func(r *models.Review) bool { return r.Date == "" }},
		},
		Normalize: func(r *models.Review) {
			if r.Rating < 0 {
				r.Rating = 0
			}
			if r.Rating > 5 {
				r.Rating = 5
			}
		},
	}
}

func clampRating(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 5 {
		return 5
	}
	return v
}
