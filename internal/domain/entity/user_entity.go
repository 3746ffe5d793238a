package entity

import (
	"slices"
	"time"
)

// User is the aggregate root for accounts.
// Passwords are stored as bcrypt hashes in Password field and never serialized.
type User struct {
	ID               string    `json:"id" bson:"_id"`
	Name             string    `json:"name" bson:"name"`
	Email            string    `json:"email" bson:"email"`
	Password         string    `json:"-" bson:"password"`
	Role             Role      `json:"role" bson:"role"`
	ProfilePhoto     string    `json:"profile_photo" bson:"profile_photo"`
	ContactNumber    string    `json:"contact_number" bson:"contact_number"`
	EnrolledCourses  []string  `json:"enrolled_courses" bson:"enrolled_courses"`
	CompletedCourses []string  `json:"completed_courses" bson:"completed_courses"`
	Projects         []string  `json:"projects" bson:"projects"`
	CreatedAt        time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" bson:"updated_at"`
}

// UserSummary is the inline projection of a referenced user.
type UserSummary struct {
	ID    string `json:"id" bson:"_id"`
	Name  string `json:"name" bson:"name"`
	Email string `json:"email" bson:"email"`
}

func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
}

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

// AddEnrolledCourse appends courseID unless it is already listed.
func (u *User) AddEnrolledCourse(courseID string) bool {
	if slices.Contains(u.EnrolledCourses, courseID) {
		return false
	}
	u.EnrolledCourses = append(u.EnrolledCourses, courseID)
	return true
}

func (u *User) AddProject(projectID string) bool {
	if slices.Contains(u.Projects, projectID) {
		return false
	}
	u.Projects = append(u.Projects, projectID)
	return true
}

func (u *User) RemoveProject(projectID string) bool {
	i := slices.Index(u.Projects, projectID)
	if i < 0 {
		return false
	}
	u.Projects = slices.Delete(u.Projects, i, i+1)
	return true
}

// Clone returns a deep copy; stores hand out clones so callers never alias stored state.
func (u *User) Clone() *User {
	c := *u
	c.EnrolledCourses = cloneSlice(u.EnrolledCourses)
	c.CompletedCourses = cloneSlice(u.CompletedCourses)
	c.Projects = cloneSlice(u.Projects)
	return &c
}

// Normalize replaces nil lists with empty ones so documents serialize as [].
func (u *User) Normalize() {
	u.EnrolledCourses = nonNil(u.EnrolledCourses)
	u.CompletedCourses = nonNil(u.CompletedCourses)
	u.Projects = nonNil(u.Projects)
}

// cloneSlice copies in, keeping an empty slice empty rather than nil.
func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}

func nonNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
