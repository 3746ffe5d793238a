package mongodb

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/oksasatya/edu-platform/internal/domain/repository"
)

// containsI matches s literally anywhere in the field, ignoring case.
func containsI(s string) bson.M {
	return bson.M{"$regex": regexp.QuoteMeta(s), "$options": "i"}
}

func anyFieldContains(s string, fields ...string) bson.M {
	or := make(bson.A, len(fields))
	for i, f := range fields {
		or[i] = bson.M{f: containsI(s)}
	}
	return bson.M{"$or": or}
}

// and folds conditions into a single filter document; empty means match all.
func and(conds []bson.M) bson.M {
	switch len(conds) {
	case 0:
		return bson.M{}
	case 1:
		return conds[0]
	}
	all := make(bson.A, len(conds))
	for i, c := range conds {
		all[i] = c
	}
	return bson.M{"$and": all}
}

func courseFilter(f repository.CourseFilter) bson.M {
	var conds []bson.M
	if f.Difficulty != "" {
		conds = append(conds, bson.M{"difficulty": string(f.Difficulty)})
	}
	if f.Search != "" {
		conds = append(conds, anyFieldContains(f.Search, "title", "description"))
	}
	return and(conds)
}

func projectFilter(f repository.ProjectFilter) bson.M {
	var conds []bson.M
	if f.Difficulty != "" {
		conds = append(conds, bson.M{"difficulty": string(f.Difficulty)})
	}
	if f.Status != "" {
		conds = append(conds, bson.M{"status": string(f.Status)})
	}
	if f.Search != "" {
		conds = append(conds, anyFieldContains(f.Search, "title", "description"))
	}
	if f.Member != "" {
		conds = append(conds, bson.M{"$or": bson.A{
			bson.M{"creator_id": f.Member},
			bson.M{"collaborators": f.Member},
		}})
	}
	return and(conds)
}

func opportunityFilter(f repository.OpportunityFilter) bson.M {
	var conds []bson.M
	if f.ActiveOnly {
		conds = append(conds, bson.M{"is_active": true})
	}
	if f.Type != "" {
		conds = append(conds, bson.M{"type": string(f.Type)})
	}
	if f.Location != "" {
		conds = append(conds, bson.M{"location": containsI(f.Location)})
	}
	if f.IsRemote != nil {
		conds = append(conds, bson.M{"is_remote": *f.IsRemote})
	}
	if f.Search != "" {
		conds = append(conds, anyFieldContains(f.Search, "title", "description", "company"))
	}
	if f.Applicant != "" {
		conds = append(conds, bson.M{"applicants.user_id": f.Applicant})
	}
	return and(conds)
}
