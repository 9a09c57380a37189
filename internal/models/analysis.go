package models

// PromptPair holds the rendered system and user instructions for one call.
type PromptPair struct {
	System string `json:"system"`
	User   string `json:"user"`
}

// Completion is the free text returned by the model.
type Completion struct {
	Text  string      `json:"text"`
	Model string      `json:"model,omitempty"`
	Usage *TokenUsage `json:"usage,omitempty"`
}

// AnalysisResult is the JSON object found inside a completion. Its schema is
// whatever the model produced.
type AnalysisResult struct {
	Raw    string         `json:"raw"`
	Data   map[string]any `json:"data"`
	Pretty string         `json:"-"`
}
