package models

// ScoreState tracks how far a scoring run got.
type ScoreState string

const (
	StateConfigLoaded       ScoreState = "config_loaded"
	StateCommitsFetched     ScoreState = "commits_fetched"
	StateDiffFetched        ScoreState = "diff_fetched"
	StatePromptAssembled    ScoreState = "prompt_assembled"
	StateCompletionReceived ScoreState = "completion_received"
	StateResultExtracted    ScoreState = "result_extracted"
	StateResultMissing      ScoreState = "result_missing"
)

// ProgressEvent is emitted by the score service before each remote call.
// State is the state the run reaches once that call succeeds.
type ProgressEvent struct {
	State ScoreState
	Data  map[string]interface{}
}

// ScoreReport collects everything a scoring run produced.
type ScoreReport struct {
	Target        Target          `json:"target"`
	Latest        Commit          `json:"latest"`
	Previous      Commit          `json:"previous"`
	DiffLength    int             `json:"diff_length"`
	DiffTruncated bool            `json:"diff_truncated"`
	Prompt        PromptPair      `json:"-"`
	Completion    *Completion     `json:"completion,omitempty"`
	Result        *AnalysisResult `json:"result,omitempty"`
	State         ScoreState      `json:"state"`
}
