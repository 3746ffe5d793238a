package application

import (
	"context"
	"fmt"

	"github.com/oksasatya/edu-platform/internal/domain/entity"
	"github.com/oksasatya/edu-platform/internal/domain/repository"
	"github.com/oksasatya/edu-platform/pkg/apperror"
	"github.com/oksasatya/edu-platform/pkg/metrics"
	"github.com/oksasatya/edu-platform/pkg/validation"
)

type CourseService struct {
	Base
}

func NewCourseService(base Base) *CourseService {
	return &CourseService{Base: base}
}

// CourseView is a course with its referenced users resolved to summaries.
type CourseView struct {
	*entity.Course
	Instructor    *entity.UserSummary  `json:"instructor"`
	Students      []entity.UserSummary `json:"students,omitempty"`
	AverageRating float64              `json:"average_rating"`
}

type CreateCourseInput struct {
	Title       string                  `json:"title" validate:"required"`
	Description string                  `json:"description" validate:"required"`
	Difficulty  entity.CourseDifficulty `json:"difficulty" validate:"required,course_level"`
	Duration    float64                 `json:"duration" validate:"required,gt=0"`
	Topics      []string                `json:"topics"`
	Content     []entity.CourseModule   `json:"content"`
	Price       *float64                `json:"price" validate:"required,gte=0"`
	Thumbnail   string                  `json:"thumbnail" validate:"omitempty,url"`
	IsPublished bool                    `json:"is_published"`
}

// UpdateCourseInput merges only the fields that are present. Nil slices mean "unchanged".
type UpdateCourseInput struct {
	Title       *string                  `json:"title" validate:"omitempty,min=1"`
	Description *string                  `json:"description" validate:"omitempty,min=1"`
	Difficulty  *entity.CourseDifficulty `json:"difficulty" validate:"omitempty,course_level"`
	Duration    *float64                 `json:"duration" validate:"omitempty,gt=0"`
	Topics      []string                 `json:"topics"`
	Content     []entity.CourseModule    `json:"content"`
	Price       *float64                 `json:"price" validate:"omitempty,gte=0"`
	Thumbnail   *string                  `json:"thumbnail" validate:"omitempty,url"`
	IsPublished *bool                    `json:"is_published"`
}

type RateCourseInput struct {
	Rating float64 `json:"rating" validate:"required,min=1,max=5"`
	Review string  `json:"review" validate:"max=2000"`
}

func (s *CourseService) view(c *entity.Course, users map[string]entity.UserSummary, withStudents bool) CourseView {
	v := CourseView{
		Course:        c,
		Instructor:    summaryPtr(users, c.InstructorID),
		AverageRating: c.AverageRating(),
	}
	if withStudents {
		v.Students = summaryList(users, c.EnrolledStudents)
	}
	return v
}

func (s *CourseService) views(ctx context.Context, courses []*entity.Course) ([]CourseView, error) {
	ids := make([]string, 0, len(courses))
	for _, c := range courses {
		ids = append(ids, c.InstructorID)
	}
	users, err := s.summaries(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]CourseView, 0, len(courses))
	for _, c := range courses {
		out = append(out, s.view(c, users, false))
	}
	return out, nil
}

func (s *CourseService) detail(ctx context.Context, c *entity.Course) (*CourseView, error) {
	users, err := s.summaries(ctx, []string{c.InstructorID}, c.EnrolledStudents)
	if err != nil {
		return nil, err
	}
	v := s.view(c, users, true)
	return &v, nil
}

// List returns courses newest first, each with its instructor summary.
func (s *CourseService) List(ctx context.Context, f repository.CourseFilter) ([]CourseView, error) {
	courses, err := s.Store.Courses.Find(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return s.views(ctx, courses)
}

func (s *CourseService) Get(ctx context.Context, id string) (*CourseView, error) {
	c, err := s.Store.Courses.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "course")
	}
	return s.detail(ctx, c)
}

// Create makes creatorID the instructor of a new, unpublished-by-default course.
func (s *CourseService) Create(ctx context.Context, in CreateCourseInput, creatorID string) (*CourseView, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	now := s.now()
	c := &entity.Course{
		ID:           s.newID(),
		Title:        in.Title,
		Description:  in.Description,
		InstructorID: creatorID,
		Thumbnail:    in.Thumbnail,
		Difficulty:   in.Difficulty,
		Duration:     in.Duration,
		Topics:       in.Topics,
		Content:      in.Content,
		Price:        *in.Price,
		IsPublished:  in.IsPublished,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Store.Courses.Save(ctx, c); err != nil {
		return nil, fmt.Errorf("create course: %w", err)
	}
	s.Search.indexCourse(ctx, c)
	return s.detail(ctx, c)
}

func (s *CourseService) Update(ctx context.Context, id string, in UpdateCourseInput) (*CourseView, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	c, err := s.Store.Courses.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "course")
	}
	if in.Title != nil {
		c.Title = *in.Title
	}
	if in.Description != nil {
		c.Description = *in.Description
	}
	if in.Difficulty != nil {
		c.Difficulty = *in.Difficulty
	}
	if in.Duration != nil {
		c.Duration = *in.Duration
	}
	if in.Topics != nil {
		c.Topics = in.Topics
	}
	if in.Content != nil {
		c.Content = in.Content
	}
	if in.Price != nil {
		c.Price = *in.Price
	}
	if in.Thumbnail != nil {
		c.Thumbnail = *in.Thumbnail
	}
	if in.IsPublished != nil {
		c.IsPublished = *in.IsPublished
	}
	c.UpdatedAt = s.now()
	if err := s.Store.Courses.Save(ctx, c); err != nil {
		return nil, fmt.Errorf("update course: %w", err)
	}
	s.Search.indexCourse(ctx, c)
	return s.detail(ctx, c)
}

// Delete removes the course. Users keep the stale id in enrolled_courses.
func (s *CourseService) Delete(ctx context.Context, id string) error {
	if err := s.Store.Courses.Delete(ctx, id); err != nil {
		return notFound(err, "course")
	}
	s.Search.remove(ctx, KindCourse, id)
	return nil
}

// Enroll adds userID to the course and the course to the user, course first.
func (s *CourseService) Enroll(ctx context.Context, id, userID string) error {
	var (
		course *entity.Course
		user   *entity.User
	)
	err := s.Store.Tx.WithinTx(ctx, func(ctx context.Context) error {
		c, err := s.Store.Courses.GetByID(ctx, id)
		if err != nil {
			return notFound(err, "course")
		}
		if c.HasStudent(userID) {
			return apperror.Conflict("already enrolled in this course")
		}
		u, err := s.Store.Users.GetByID(ctx, userID)
		if err != nil {
			return notFound(err, "user")
		}
		now := s.now()
		c.AddStudent(userID)
		c.UpdatedAt = now
		if err := s.Store.Courses.Save(ctx, c); err != nil {
			return fmt.Errorf("save course: %w", err)
		}
		u.AddEnrolledCourse(c.ID)
		u.UpdatedAt = now
		if err := s.Store.Users.Update(ctx, u); err != nil {
			return fmt.Errorf("save user: %w", err)
		}
		course, user = c, u
		return nil
	})
	if err != nil {
		return err
	}
	metrics.RecordEvent(metrics.EventEnrollment)
	s.Notify.CourseEnrollment(ctx, user, course)
	return nil
}

// Rate upserts userID's rating. Only enrolled students may rate.
func (s *CourseService) Rate(ctx context.Context, id, userID string, in RateCourseInput) (*CourseView, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	var course *entity.Course
	err := s.Store.Tx.WithinTx(ctx, func(ctx context.Context) error {
		c, err := s.Store.Courses.GetByID(ctx, id)
		if err != nil {
			return notFound(err, "course")
		}
		if !c.HasStudent(userID) {
			return apperror.Forbidden("you must be enrolled to rate this course")
		}
		c.UpsertRating(userID, in.Rating, in.Review)
		c.UpdatedAt = s.now()
		if err := s.Store.Courses.Save(ctx, c); err != nil {
			return fmt.Errorf("save course: %w", err)
		}
		course = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.RecordEvent(metrics.EventRating)
	return s.detail(ctx, course)
}

// MyCourses follows the user's enrolled_courses order, skipping deleted courses.
func (s *CourseService) MyCourses(ctx context.Context, userID string) ([]CourseView, error) {
	u, err := s.Store.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, "user")
	}
	courses, err := s.Store.Courses.GetByIDs(ctx, u.EnrolledCourses)
	if err != nil {
		return nil, fmt.Errorf("load enrolled courses: %w", err)
	}
	return s.views(ctx, courses)
}

func (s *CourseService) UploadThumbnail(ctx context.Context, id string, f Upload) (*CourseView, error) {
	c, err := s.Store.Courses.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "course")
	}
	url, err := s.uploadImage(ctx, "courses", c.ID, f)
	if err != nil {
		return nil, err
	}
	c.Thumbnail = url
	c.UpdatedAt = s.now()
	if err := s.Store.Courses.Save(ctx, c); err != nil {
		return nil, fmt.Errorf("update course: %w", err)
	}
	return s.detail(ctx, c)
}
