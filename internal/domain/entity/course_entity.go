package entity

import (
	"slices"
	"time"
)

type CourseDifficulty string

const (
	CourseBeginner     CourseDifficulty = "beginner"
	CourseIntermediate CourseDifficulty = "intermediate"
	CourseAdvanced     CourseDifficulty = "advanced"
)

func (d CourseDifficulty) Valid() bool {
	switch d {
	case CourseBeginner, CourseIntermediate, CourseAdvanced:
		return true
	}
	return false
}

// Resource is a downloadable attachment of a course module or project.
type Resource struct {
	Title   string `json:"title" bson:"title"`
	FileURL string `json:"file_url" bson:"file_url"`
	Type    string `json:"type" bson:"type"`
}

// CourseModule is one ordered unit of course content.
type CourseModule struct {
	Title       string     `json:"title" bson:"title"`
	Description string     `json:"description" bson:"description"`
	VideoURL    string     `json:"video_url" bson:"video_url"`
	Resources   []Resource `json:"resources" bson:"resources"`
}

// Rating is a single user's review. At most one per user.
type Rating struct {
	UserID string  `json:"user_id" bson:"user_id"`
	Rating float64 `json:"rating" bson:"rating"`
	Review string  `json:"review" bson:"review"`
}

type Course struct {
	ID               string           `json:"id" bson:"_id"`
	Title            string           `json:"title" bson:"title"`
	Description      string           `json:"description" bson:"description"`
	InstructorID     string           `json:"instructor_id" bson:"instructor_id"`
	Thumbnail        string           `json:"thumbnail" bson:"thumbnail"`
	Difficulty       CourseDifficulty `json:"difficulty" bson:"difficulty"`
	Duration         float64          `json:"duration" bson:"duration"`
	Topics           []string         `json:"topics" bson:"topics"`
	Content          []CourseModule   `json:"content" bson:"content"`
	EnrolledStudents []string         `json:"enrolled_students" bson:"enrolled_students"`
	Ratings          []Rating         `json:"ratings" bson:"ratings"`
	Price            float64          `json:"price" bson:"price"`
	IsPublished      bool             `json:"is_published" bson:"is_published"`
	CreatedAt        time.Time        `json:"created_at" bson:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at" bson:"updated_at"`
}

func (c *Course) HasStudent(userID string) bool {
	return slices.Contains(c.EnrolledStudents, userID)
}

// AddStudent enrolls userID; false when already enrolled.
func (c *Course) AddStudent(userID string) bool {
	if c.HasStudent(userID) {
		return false
	}
	c.EnrolledStudents = append(c.EnrolledStudents, userID)
	return true
}

// UpsertRating overwrites the user's existing rating in place or appends a new one.
// Reports whether a new entry was appended.
func (c *Course) UpsertRating(userID string, rating float64, review string) bool {
	for i := range c.Ratings {
		if c.Ratings[i].UserID == userID {
			c.Ratings[i].Rating = rating
			c.Ratings[i].Review = review
			return false
		}
	}
	c.Ratings = append(c.Ratings, Rating{UserID: userID, Rating: rating, Review: review})
	return true
}

func (c *Course) AverageRating() float64 {
	if len(c.Ratings) == 0 {
		return 0
	}
	var sum float64
	for _, r := range c.Ratings {
		sum += r.Rating
	}
	return sum / float64(len(c.Ratings))
}

func (c *Course) Clone() *Course {
	cp := *c
	cp.Topics = cloneSlice(c.Topics)
	cp.EnrolledStudents = cloneSlice(c.EnrolledStudents)
	cp.Ratings = cloneSlice(c.Ratings)
	if c.Content != nil {
		cp.Content = make([]CourseModule, len(c.Content))
		for i, m := range c.Content {
			m.Resources = cloneSlice(m.Resources)
			cp.Content[i] = m
		}
	}
	return &cp
}

func (c *Course) Normalize() {
	c.Topics = nonNil(c.Topics)
	c.Content = nonNil(c.Content)
	for i := range c.Content {
		c.Content[i].Resources = nonNil(c.Content[i].Resources)
	}
	c.EnrolledStudents = nonNil(c.EnrolledStudents)
	c.Ratings = nonNil(c.Ratings)
}
