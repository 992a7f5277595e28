package submit

import (
	"strings"

	"github.com/goliatone/go-houseprice/pkg/model"
)

// MissingFieldsNotice is the blocking notice shown when a submission is
// attempted with empty fields.
const MissingFieldsNotice = "Please fill all the fields"

// ValidationError reports the fields that were empty at submission time.
type ValidationError struct {
	Missing []model.Field
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Missing))
	for _, field := range e.Missing {
		names = append(names, field.String())
	}
	return "submit: missing required fields: " + strings.Join(names, ", ")
}
