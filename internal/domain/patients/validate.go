package patients

import (
	"fmt"
	"strings"
)

// Genders is the closed set of accepted gender values, in display order.
// The form client cycles through these; the server rejects anything else.
var Genders = []string{"male", "female", "other"}

const (
	MinAge = 1
	MaxAge = 120
)

// Violation describes a single field-level validation failure.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validate checks a submission against the registration rules and returns
// one violation per failing field. An empty slice means the submission may
// be sent to the stores. Both the form client and the service call this;
// the service's call is the authoritative gate.
func Validate(s Submission) []Violation {
	var violations []Violation

	if strings.TrimSpace(s.Name) == "" {
		violations = append(violations, Violation{Field: "name", Message: "name must not be empty"})
	}
	if s.Age < MinAge || s.Age > MaxAge {
		violations = append(violations, Violation{
			Field:   "age",
			Message: fmt.Sprintf("age must be between %d and %d", MinAge, MaxAge),
		})
	}
	if !validGender(s.Gender) {
		violations = append(violations, Violation{
			Field:   "gender",
			Message: "gender must be one of " + strings.Join(Genders, ", "),
		})
	}
	if strings.TrimSpace(s.Contact) == "" {
		violations = append(violations, Violation{Field: "contact", Message: "contact must not be empty"})
	}

	return violations
}

func validGender(g string) bool {
	for _, v := range Genders {
		if g == v {
			return true
		}
	}
	return false
}
