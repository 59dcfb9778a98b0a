package pipeline

import "fmt"

// Stage identifies which step of a processing run failed. The names are part
// of the API surface: callers scope retries to the reported stage.
type Stage string

const (
	StageAuthentication Stage = "authentication"
	StageFormValidation Stage = "form validation"
	StageFileUpload     Stage = "file upload"
	StageTextExtraction Stage = "text extraction"
	StageAIProcessing   Stage = "AI processing"
	StageSave           Stage = "save"
)

// ParseError indicates no JSON object could be recovered from the model's
// response text, or the recovered root violated the three-key contract.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("response parse failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("response parse failed: %s", e.Reason)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// PipelineError wraps a stage failure with the stage that produced it.
// Processing aborts at the first failing stage; nothing is retried here.
type PipelineError struct {
	Stage Stage
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("pipeline failed at %s: %v", e.Stage, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// NewPipelineError wraps err with its failing stage.
func NewPipelineError(stage Stage, err error) *PipelineError {
	return &PipelineError{Stage: stage, Err: err}
}
