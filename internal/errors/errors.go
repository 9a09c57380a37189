package errors

import "fmt"

// ErrorType defines the category of the error
type ErrorType string

const (
	TypeConfiguration ErrorType = "CONFIGURATION"
	TypeVCS           ErrorType = "VCS"
	TypePrecondition  ErrorType = "PRECONDITION"
	TypeAITransport   ErrorType = "AI_TRANSPORT"
	TypeAIAuth        ErrorType = "AI_AUTH"
	TypeAIResponse    ErrorType = "AI_RESPONSE"
	TypeResultParse   ErrorType = "RESULT_PARSE"
	TypeInternal      ErrorType = "INTERNAL"
)

// AppError represents a domain-level error with a type and an underlying error
type AppError struct {
	Type       ErrorType
	Message    string
	Context    map[string]interface{}
	Err        error
	Suggestion string
}

func (e *AppError) Error() string {
	var msg string
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Err)
	} else {
		msg = fmt.Sprintf("%s: %s", e.Type, e.Message)
	}

	if e.Context != nil {
		if key, ok := e.Context["key"].(string); ok && key != "" {
			msg += fmt.Sprintf(" [%s]", key)
		}
		if status, ok := e.Context["status_code"].(int); ok && status != 0 {
			msg += fmt.Sprintf(" - status %d", status)
		}
	}

	return msg
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches sentinel errors by type and message, so derived copies built with
// WithError/WithContext still satisfy errors.Is against the original.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type && e.Message == t.Message
}

// WithError creates a new AppError with an underlying error
func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        err,
		Suggestion: e.Suggestion,
	}
}

// WithContext creates a new AppError with additional context
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	ctx := make(map[string]interface{})
	for k, v := range e.Context {
		ctx[k] = v
	}
	ctx[key] = value
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    ctx,
		Err:        e.Err,
		Suggestion: e.Suggestion,
	}
}

func (e *AppError) WithSuggestion(suggestion string) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        e.Err,
		Suggestion: suggestion,
	}
}

// ContextString returns a context value as a string, or "" when absent.
func (e *AppError) ContextString(key string) string {
	if e.Context == nil {
		return ""
	}
	v, ok := e.Context[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// NewAppError creates a new AppError
func NewAppError(t ErrorType, msg string, err error) *AppError {
	return &AppError{
		Type:    t,
		Message: msg,
		Err:     err,
	}
}

// Configuration errors
var (
	ErrConfigMissing = NewAppError(TypeConfiguration, "Configuration file not found", nil).
				WithSuggestion("Create codescore.cfg with [Github] and [API] sections or pass --config <path>")

	ErrConfigInvalid = NewAppError(TypeConfiguration, "Configuration file could not be parsed", nil).
				WithSuggestion("Check the file syntax: INI for .cfg/.ini, TOML for .toml")

	ErrConfigKeyMissing = NewAppError(TypeConfiguration, "Required configuration key is missing", nil).
				WithSuggestion("Required keys: Github.Token, API.SonnetAPIUrl, API.SonnetAPIKey, API.SonnetModel, API.DiffUrl")

	ErrConfigValueInvalid = NewAppError(TypeConfiguration, "Configuration value is invalid", nil)

	ErrTargetMissing = NewAppError(TypeConfiguration, "Target data file not found", nil).
				WithSuggestion("Create git.dat with the repository (owner/repo) on line 1 and the file path on line 2")

	ErrTargetInvalid = NewAppError(TypeConfiguration, "Target data file is incomplete", nil).
				WithSuggestion("git.dat needs two non-empty lines: owner/repo and the file path")

	ErrPromptMissing = NewAppError(TypeConfiguration, "Prompt template not found", nil).
				WithSuggestion("Create prompt.dat with '--- system' and '--- user' sections or pass --prompt <path>")

	ErrPromptInvalid = NewAppError(TypeConfiguration, "Prompt template has no '--- user' marker", nil).
				WithSuggestion("Separate the system and user instructions with a line starting with '--- user'")
)

// Precondition errors
var (
	ErrNotEnoughHistory = NewAppError(TypePrecondition, "Not enough commit history", nil).
		WithSuggestion("This file needs at least 2 commits to analyze changes")
)

// VCS errors
var (
	ErrListCommits = NewAppError(TypeVCS, "Failed to list commits for the target file", nil).
			WithSuggestion("Check the repository name in git.dat and that the token can read it")

	ErrDiffFetch = NewAppError(TypeVCS, "Error fetching the diff", nil).
			WithSuggestion("Check API.DiffUrl and that the token has access to the repository")

	ErrNoDiff = NewAppError(TypeVCS, "No diff found for the specified file", nil).
			WithSuggestion("Verify the file path in git.dat matches the repository path exactly")

	ErrVCSNotSupported = NewAppError(TypeVCS, "VCS provider not supported", nil).
				WithSuggestion("Set Github.Provider to 'github' or 'gitlab'")

	ErrInvalidRepository = NewAppError(TypeVCS, "Repository identifier must look like owner/repo", nil)

	ErrVCSTokenInvalid = NewAppError(TypeVCS, "VCS token is invalid or expired", nil).
				WithSuggestion("Generate a new token and update Github.Token")
)

// AI errors
var (
	ErrAIProviderNotSupported = NewAppError(TypeConfiguration, "AI provider not supported", nil).
					WithSuggestion("Set API.Provider to 'openai' or 'gemini'")

	ErrAITransport = NewAppError(TypeAITransport, "Could not reach the completion endpoint", nil).
			WithSuggestion("Check API.SonnetAPIUrl and your network connection")

	ErrAIAuth = NewAppError(TypeAIAuth, "Completion endpoint rejected the API key", nil).
			WithSuggestion("Check API.SonnetAPIKey")

	ErrAIMalformedResponse = NewAppError(TypeAIResponse, "Completion endpoint returned an unusable response", nil).
				WithSuggestion("Check API.SonnetModel and the endpoint compatibility")

	ErrNoJSONObject = NewAppError(TypeResultParse, "No JSON object found in the completion", nil)

	ErrResultParse = NewAppError(TypeResultParse, "Extracted JSON could not be parsed", nil).
			WithSuggestion("Adjust the prompt so the model answers with a single JSON object")
)
