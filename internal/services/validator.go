package services

import (
	"encoding/json"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/SaiNikheel/tenderBot/internal/models"
)

// The validator only guarantees the top-level shape the report renderer
// needs. Categories, enums and numeric ranges inside are model-generated and
// pass through unchecked; the model is the source of truth for content.
const analysisResponseSchema = `{
	"type": "object",
	"required": ["matches", "mismatches", "summary"],
	"properties": {
		"matches": {"type": "array"},
		"mismatches": {"type": "array"},
		"summary": {"type": "object"}
	}
}`

type ResponseValidator struct {
	schema *jsonschema.Schema
}

func NewResponseValidator() *ResponseValidator {
	return &ResponseValidator{
		schema: jsonschema.MustCompileString("analysis-response.json", analysisResponseSchema),
	}
}

// ParseAnalysis extracts the JSON object from a raw model reply, which may be
// wrapped in prose or markdown fences, and checks it has the required shape.
func (v *ResponseValidator) ParseAnalysis(raw string) (*models.AnalysisResult, error) {
	jsonStr, ok := extractJSONObject(raw)
	if !ok {
		return nil, &MalformedResponseError{Reason: "no JSON object found in model response"}
	}

	var doc any
	if err := json.Unmarshal([]byte(jsonStr), &doc); err != nil {
		return nil, &MalformedResponseError{Reason: "model response is not valid JSON", Err: err}
	}

	if err := v.schema.Validate(doc); err != nil {
		return nil, &MalformedResponseError{Reason: "model response is missing required fields", Err: err}
	}

	var result models.AnalysisResult
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return nil, &MalformedResponseError{Reason: "model response fields have unexpected types", Err: err}
	}

	return &result, nil
}

// extractJSONObject scans from the first "{" to the last "}" so prose around
// the object is tolerated. Markdown code fences are stripped first.
func extractJSONObject(text string) (string, bool) {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end <= start {
		return "", false
	}

	return text[start : end+1], true
}
