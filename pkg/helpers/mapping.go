package helpers

import (
	"fmt"
	"strings"

	"github.com/oksasatya/edu-platform/pkg/mailer"
)

// NormalizeJob fills the recipient fields templates expect and canonicalizes the template name.
func NormalizeJob(job *mailer.EmailJob) {
	if job.Data == nil {
		job.Data = map[string]any{}
	}
	if v, ok := job.Data["Email"]; !ok || fmt.Sprintf("%v", v) == "" {
		job.Data["Email"] = job.To
	}
	if v, ok := job.Data["RecipientEmail"]; !ok || fmt.Sprintf("%v", v) == "" {
		job.Data["RecipientEmail"] = job.To
	}
	job.Template = strings.ToLower(strings.TrimSpace(job.Template))
}
