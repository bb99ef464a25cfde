package validate

import (
	"context"
	_ "embed"
	"encoding/json"
	"strings"

	"github.com/qri-io/jsonschema"
)

//go:embed intake_schema.json
var intakeSchemaJSON []byte

var intakeSchema = mustCompile(intakeSchemaJSON)

func mustCompile(b []byte) *jsonschema.Schema {
	rs := &jsonschema.Schema{}
	if err := json.Unmarshal(b, rs); err != nil {
		panic("validate: compile intake schema: " + err.Error())
	}

	return rs
}

// IntakeViolation is one structural problem in an intake request body.
type IntakeViolation struct {
	Field   string
	Message string
}

// CheckIntake validates the raw intake request body against the embedded
// JSON schema: required fields present, known fields only, correct types.
// Returns the first violation, or nil if the body is structurally valid.
// A second error return covers malformed JSON itself.
func CheckIntake(ctx context.Context, body []byte) (*IntakeViolation, error) {
	errs, err := intakeSchema.ValidateBytes(ctx, body)
	if err != nil {
		return nil, err
	}
	if len(errs) == 0 {
		return nil, nil
	}

	ke := errs[0]
	field := strings.Trim(ke.PropertyPath, "/")
	if field == "" {
		// required-property violations report the object path; pull the
		// property name out of the message ("email" is required.)
		if i := strings.Index(ke.Message, `"`); i >= 0 {
			if j := strings.Index(ke.Message[i+1:], `"`); j >= 0 {
				field = ke.Message[i+1 : i+1+j]
			}
		}
	}

	return &IntakeViolation{Field: field, Message: ke.Message}, nil
}
