package postgres

import (
	"strconv"
	"strings"

	"github.com/oksasatya/edu-platform/internal/domain/repository"
)

// where accumulates AND-ed conditions with positional arguments.
type where struct {
	conds []string
	args  []any
}

// arg binds v and returns its placeholder.
func (w *where) arg(v any) string {
	w.args = append(w.args, v)
	return "$" + strconv.Itoa(len(w.args))
}

func (w *where) add(cond string) {
	w.conds = append(w.conds, cond)
}

func (w *where) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// contains turns s into an ILIKE pattern that matches it literally anywhere.
func contains(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// anyFieldLike matches pattern against any of the listed JSON fields.
func (w *where) anyFieldLike(pattern string, fields ...string) {
	p := w.arg(pattern)
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = "data->>'" + f + "' ILIKE " + p
	}
	if len(parts) == 1 {
		w.add(parts[0])
		return
	}
	w.add("(" + strings.Join(parts, " OR ") + ")")
}

func courseWhere(f repository.CourseFilter) *where {
	w := &where{}
	if f.Difficulty != "" {
		w.add("data->>'difficulty' = " + w.arg(string(f.Difficulty)))
	}
	if f.Search != "" {
		w.anyFieldLike(contains(f.Search), "title", "description")
	}
	return w
}

func projectWhere(f repository.ProjectFilter) *where {
	w := &where{}
	if f.Difficulty != "" {
		w.add("data->>'difficulty' = " + w.arg(string(f.Difficulty)))
	}
	if f.Status != "" {
		w.add("data->>'status' = " + w.arg(string(f.Status)))
	}
	if f.Search != "" {
		w.anyFieldLike(contains(f.Search), "title", "description")
	}
	if f.Member != "" {
		p := w.arg(f.Member)
		w.add("(data->>'creator_id' = " + p + " OR data->'collaborators' ? " + p + ")")
	}
	return w
}

func opportunityWhere(f repository.OpportunityFilter) *where {
	w := &where{}
	if f.ActiveOnly {
		w.add("(data->>'is_active')::boolean")
	}
	if f.Type != "" {
		w.add("data->>'type' = " + w.arg(string(f.Type)))
	}
	if f.Location != "" {
		w.anyFieldLike(contains(f.Location), "location")
	}
	if f.IsRemote != nil {
		w.add("(data->>'is_remote')::boolean = " + w.arg(*f.IsRemote))
	}
	if f.Search != "" {
		w.anyFieldLike(contains(f.Search), "title", "description", "company")
	}
	if f.Applicant != "" {
		w.add("data->'applicants' @> jsonb_build_array(jsonb_build_object('user_id', " + w.arg(f.Applicant) + "::text))")
	}
	return w
}
