package validation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/edu-platform/pkg/apperror"
)

type sampleModule struct {
	Title string `json:"title" validate:"required"`
}

type sampleInput struct {
	Title    string         `json:"title" validate:"required"`
	Level    string         `json:"difficulty" validate:"required,course_level"`
	Duration float64        `json:"duration" validate:"gt=0"`
	Price    *float64       `json:"price" validate:"required,gte=0"`
	Status   string         `json:"status" validate:"omitempty,application_status"`
	Password string         `json:"password" validate:"omitempty,pwd"`
	Content  []sampleModule `json:"content" validate:"dive"`
}

func TestStructReportsFieldDetails(t *testing.T) {
	neg := -1.0
	err := Struct(sampleInput{
		Level:    "expert",
		Price:    &neg,
		Status:   "hired",
		Password: "short",
		Content:  []sampleModule{{}},
	})
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	ae, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, map[string]string{
		"title":            "is required",
		"difficulty":       "must be one of: beginner, intermediate, advanced",
		"duration":         "must be greater than 0",
		"price":            "must be greater than or equal to 0",
		"status":           "must be one of: pending, reviewed, accepted, rejected",
		"password":         "min length 8",
		"content[0].title": "is required",
	}, ae.Details)
}

func TestStructAcceptsValidInput(t *testing.T) {
	zero := 0.0
	assert.NoError(t, Struct(sampleInput{
		Title:    "Go",
		Level:    "beginner",
		Duration: 2,
		Price:    &zero,
	}))
}

func TestToDetailsJSONErrors(t *testing.T) {
	var v struct {
		Rating float64 `json:"rating"`
	}
	err := json.Unmarshal([]byte(`{"rating":"five"}`), &v)
	assert.Equal(t, map[string]string{"rating": "must be a float64"}, ToDetails(err))

	err = json.Unmarshal([]byte(`{`), &v)
	assert.NotNil(t, ToDetails(err))
	assert.Nil(t, ToDetails(nil))
}
