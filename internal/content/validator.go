// Package content turns raw text-model output into validated marketing content.
package content

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"sellerboost-api/internal/model"
	"sellerboost-api/pkg/apierror"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/generated_content.schema.json
var schemaBytes []byte

const schemaURL = "generated_content.schema.json"

var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
	printer        = message.NewPrinter(language.English)
)

// Issue is a single schema violation.
type Issue struct {
	Path    string // e.g. "/facebook/hashtags/2"
	Message string
}

func (i Issue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}

// ValidationError lists every issue found in one document.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		parts[i] = issue.String()
	}
	return strings.Join(parts, "; ")
}

// getSchema compiles the embedded schema once.
func getSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			compileErr = fmt.Errorf("unmarshaling schema JSON: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, doc); err != nil {
			compileErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(schemaURL)
		if compileErr != nil {
			compileErr = fmt.Errorf("compiling schema: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}

// Parse normalizes, decodes and validates the text model's output.
// It returns MalformedOutput when the text is not JSON and SchemaViolation when
// the JSON does not match the platform schema.
func Parse(raw string) (*model.GeneratedContent, error) {
	schema, err := getSchema()
	if err != nil {
		return nil, apierror.Internal("Failed to load content schema: ", err)
	}

	normalized := StripCodeFence(raw)

	inst, err := jsonschema.UnmarshalJSON(strings.NewReader(normalized))
	if err != nil {
		return nil, apierror.MalformedOutput("Failed to parse AI response - invalid JSON format: ", err)
	}

	if err := schema.Validate(inst); err != nil {
		var ve *jsonschema.ValidationError
		if !errors.As(err, &ve) {
			return nil, apierror.Internal("Unexpected validation failure: ", err)
		}
		return nil, apierror.SchemaViolation("AI response missing required platform fields: ", &ValidationError{Issues: extractIssues(ve)})
	}

	var gc model.GeneratedContent
	if err := json.Unmarshal([]byte(normalized), &gc); err != nil {
		return nil, apierror.MalformedOutput("Failed to decode AI response: ", err)
	}

	return &gc, nil
}

// ParseInsights decodes the four-field insights object. Any missing field is an error.
func ParseInsights(raw string) (model.Insights, error) {
	var insights model.Insights
	if err := json.Unmarshal([]byte(StripCodeFence(raw)), &insights); err != nil {
		return model.Insights{}, apierror.MalformedOutput("Failed to parse insights: ", err)
	}
	if !insights.Complete() {
		return model.Insights{}, apierror.SchemaViolation("Insights response incomplete", nil)
	}
	return insights, nil
}

// extractIssues walks the ValidationError tree and returns leaf-level issues.
func extractIssues(ve *jsonschema.ValidationError) []Issue {
	var issues []Issue
	collectIssues(ve, &issues)

	if len(issues) == 0 {
		return []Issue{{Message: ve.Error()}}
	}
	return issues
}

func collectIssues(ve *jsonschema.ValidationError, issues *[]Issue) {
	if len(ve.Causes) == 0 {
		path := ""
		if len(ve.InstanceLocation) > 0 {
			path = "/" + strings.Join(ve.InstanceLocation, "/")
		}

		msg := ve.Error()
		if ve.ErrorKind != nil {
			msg = ve.ErrorKind.LocalizedString(printer)
		}

		*issues = append(*issues, Issue{Path: path, Message: msg})
		return
	}

	for _, cause := range ve.Causes {
		collectIssues(cause, issues)
	}
}
