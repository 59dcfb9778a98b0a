package pipeline

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"quotedesk/internal/domain"
)

// ExtractedResponse is the model's output after JSON recovery, before
// coverage validation. Coverages stay raw so the validator can judge each
// entry independently.
type ExtractedResponse struct {
	Metadata  domain.Metadata
	Coverages []json.RawMessage
	PlanNotes []domain.PlanNote
}

// fencedBlock matches a markdown code fence with an optional json language tag.
var fencedBlock = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")

// RecoverJSON recovers a JSON value from raw model response text. The model
// inconsistently wraps output in markdown fences, so the fenced interior is
// tried first and the whole text second. Anything else is a ParseError;
// truncated or ambiguous output is a clean failure, not a guess.
func RecoverJSON(responseText string) (json.RawMessage, error) {
	if m := fencedBlock.FindStringSubmatch(responseText); m != nil {
		interior := strings.TrimSpace(m[1])
		if raw, err := parseValue(interior); err == nil {
			return raw, nil
		}
	}

	raw, err := parseValue(strings.TrimSpace(responseText))
	if err != nil {
		return nil, &ParseError{Reason: "no JSON recoverable from response text", Err: err}
	}
	return raw, nil
}

func parseValue(candidate string) (json.RawMessage, error) {
	if candidate == "" {
		return nil, fmt.Errorf("empty candidate")
	}
	var v any
	if err := json.Unmarshal([]byte(candidate), &v); err != nil {
		return nil, err
	}
	return json.RawMessage(candidate), nil
}

// rawRoot distinguishes an absent key from an explicit null while keeping
// coverages unvalidated.
type rawRoot struct {
	Metadata  *domain.Metadata  `json:"metadata"`
	Coverages []json.RawMessage `json:"coverages"`
	PlanNotes []domain.PlanNote `json:"planNotes"`
}

// ExtractJSON recovers the root object from response text and enforces the
// three-key contract (metadata, coverages, planNotes). A model that answered
// with some other shape is rejected here, never repaired by guessing.
func ExtractJSON(responseText string) (*ExtractedResponse, error) {
	raw, err := RecoverJSON(responseText)
	if err != nil {
		return nil, err
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keys); err != nil {
		return nil, &ParseError{Reason: "response root is not a JSON object", Err: err}
	}
	for _, required := range []string{"metadata", "coverages", "planNotes"} {
		if _, ok := keys[required]; !ok {
			return nil, &ParseError{Reason: fmt.Sprintf("response root missing required key %q", required)}
		}
	}

	var root rawRoot
	if err := json.Unmarshal(raw, &root); err != nil {
		return nil, &ParseError{Reason: "response root did not match the expected shape", Err: err}
	}
	if root.Metadata == nil {
		return nil, &ParseError{Reason: "response metadata is null"}
	}

	return &ExtractedResponse{
		Metadata:  *root.Metadata,
		Coverages: root.Coverages,
		PlanNotes: root.PlanNotes,
	}, nil
}
