package mongodb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/oksasatya/edu-platform/internal/domain/entity"
	"github.com/oksasatya/edu-platform/internal/domain/repository"
)

func TestContainsIQuotesPattern(t *testing.T) {
	assert.Equal(t, bson.M{"$regex": `c\+\+ \(intro\)`, "$options": "i"}, containsI("c++ (intro)"))
}

func TestCourseFilter(t *testing.T) {
	assert.Equal(t, bson.M{}, courseFilter(repository.CourseFilter{}))
	assert.Equal(t, bson.M{"difficulty": "beginner"},
		courseFilter(repository.CourseFilter{Difficulty: entity.CourseBeginner}))

	got := courseFilter(repository.CourseFilter{Difficulty: entity.CourseBeginner, Search: "go"})
	assert.Equal(t, bson.M{"$and": bson.A{
		bson.M{"difficulty": "beginner"},
		bson.M{"$or": bson.A{
			bson.M{"title": containsI("go")},
			bson.M{"description": containsI("go")},
		}},
	}}, got)
}

func TestProjectFilterMember(t *testing.T) {
	got := projectFilter(repository.ProjectFilter{Member: "u1"})
	assert.Equal(t, bson.M{"$or": bson.A{
		bson.M{"creator_id": "u1"},
		bson.M{"collaborators": "u1"},
	}}, got)
}

func TestProjectFilterCombines(t *testing.T) {
	got := projectFilter(repository.ProjectFilter{Difficulty: entity.ProjectExpert, Status: entity.ProjectCompleted})
	assert.Equal(t, bson.M{"$and": bson.A{
		bson.M{"difficulty": "expert"},
		bson.M{"status": "completed"},
	}}, got)
}

func TestOpportunityFilter(t *testing.T) {
	remote := true
	got := opportunityFilter(repository.OpportunityFilter{
		ActiveOnly: true,
		Type:       entity.OpportunityInternship,
		Location:   "remote",
		IsRemote:   &remote,
		Search:     "acme",
		Applicant:  "u2",
	})
	assert.Equal(t, bson.M{"$and": bson.A{
		bson.M{"is_active": true},
		bson.M{"type": "internship"},
		bson.M{"location": containsI("remote")},
		bson.M{"is_remote": true},
		bson.M{"$or": bson.A{
			bson.M{"title": containsI("acme")},
			bson.M{"description": containsI("acme")},
			bson.M{"company": containsI("acme")},
		}},
		bson.M{"applicants.user_id": "u2"},
	}}, got)
}
