package snapshot

import (
	_ "embed"
	"sort"
	"sync"

	"atsscore/internal/errors"
	"atsscore/internal/types"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed resume.schema.json
var resumeSchema string

var (
	schemaOnce sync.Once
	schema     *gojsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(resumeSchema))
	})
	return schema, schemaErr
}

// Diagnose reports shape problems in a raw resume document. The scorer
// tolerates all of them; they exist to help clients fix their payloads.
func Diagnose(raw map[string]any) ([]types.SchemaIssue, error) {
	s, err := compiledSchema()
	if err != nil {
		return nil, errors.NewInternalError(errors.ErrCodeInvalidConfig, "resume schema failed to compile", err)
	}

	result, err := s.Validate(gojsonschema.NewGoLoader(raw))
	if err != nil {
		return nil, errors.NewValidationError(errors.ErrCodeInvalidResume, "resume could not be validated", err)
	}

	issues := make([]types.SchemaIssue, 0, len(result.Errors()))
	for _, re := range result.Errors() {
		issues = append(issues, types.SchemaIssue{
			Field:       re.Field(),
			Description: re.Description(),
		})
	}
	sort.SliceStable(issues, func(i, j int) bool {
		return issues[i].Field < issues[j].Field
	})
	return issues, nil
}
