package pipeline_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quotedesk/internal/pipeline"
)

func TestRecoverJSON_FencedBlock(t *testing.T) {
	raw, err := pipeline.RecoverJSON("Here is the result:\n```json\n{\"a\": 1}\n```\nDone.")
	require.NoError(t, err)
	assert.JSONEq(t, `{"a": 1}`, string(raw))
}

func TestRecoverJSON_FenceWithoutLanguageTag(t *testing.T) {
	raw, err := pipeline.RecoverJSON("```\n{\"a\": 1}\n```")
	require.NoError(t, err)
	assert.JSONEq(t, `{"a": 1}`, string(raw))
}

func TestRecoverJSON_BareJSON(t *testing.T) {
	raw, err := pipeline.RecoverJSON(`  {"metadata": {}, "coverages": []}  `)
	require.NoError(t, err)
	assert.JSONEq(t, `{"metadata": {}, "coverages": []}`, string(raw))
}

func TestRecoverJSON_FencedGarbageFallsBackToWholeText(t *testing.T) {
	// The fenced interior is not JSON; the whole text is not either.
	_, err := pipeline.RecoverJSON("```\nnot json\n```")
	var parseErr *pipeline.ParseError
	require.Error(t, err)
	assert.True(t, errors.As(err, &parseErr))
}

func TestRecoverJSON_NotJSON(t *testing.T) {
	_, err := pipeline.RecoverJSON("The document could not be processed, sorry.")
	var parseErr *pipeline.ParseError
	require.Error(t, err)
	assert.True(t, errors.As(err, &parseErr))
}

func TestRecoverJSON_TruncatedJSON(t *testing.T) {
	_, err := pipeline.RecoverJSON(`{"metadata": {"clientName": "Acme`)
	var parseErr *pipeline.ParseError
	require.Error(t, err)
	assert.True(t, errors.As(err, &parseErr))
}

func TestExtractJSON_Success(t *testing.T) {
	response := "```json\n" + `{
		"metadata": {"clientName": "Acme Corp", "carrierName": "Sun Life"},
		"coverages": [{"coverageType": "Dental Care"}],
		"planNotes": [{"note": "rates guaranteed 24 months"}]
	}` + "\n```"

	extracted, err := pipeline.ExtractJSON(response)
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", extracted.Metadata.ClientName)
	assert.Equal(t, "Sun Life", extracted.Metadata.CarrierName)
	assert.Len(t, extracted.Coverages, 1)
	require.Len(t, extracted.PlanNotes, 1)
	assert.Equal(t, "rates guaranteed 24 months", extracted.PlanNotes[0].Note)
}

func TestExtractJSON_MissingRequiredKey(t *testing.T) {
	_, err := pipeline.ExtractJSON(`{"metadata": {}, "coverages": []}`)
	var parseErr *pipeline.ParseError
	require.Error(t, err)
	require.True(t, errors.As(err, &parseErr))
	assert.Contains(t, parseErr.Reason, "planNotes")
}

func TestExtractJSON_RootNotObject(t *testing.T) {
	_, err := pipeline.ExtractJSON(`[1, 2, 3]`)
	var parseErr *pipeline.ParseError
	require.Error(t, err)
	assert.True(t, errors.As(err, &parseErr))
}

func TestExtractJSON_NullMetadata(t *testing.T) {
	_, err := pipeline.ExtractJSON(`{"metadata": null, "coverages": [], "planNotes": []}`)
	var parseErr *pipeline.ParseError
	require.Error(t, err)
	require.True(t, errors.As(err, &parseErr))
	assert.Contains(t, parseErr.Reason, "metadata")
}

func TestExtractJSON_EmptyCoveragesAllowed(t *testing.T) {
	extracted, err := pipeline.ExtractJSON(`{"metadata": {}, "coverages": [], "planNotes": []}`)
	require.NoError(t, err)
	assert.Empty(t, extracted.Coverages)
}
