package nlp

// Entity is a single extracted value, e.g. {type: "class_name", value: "class 5"}.
type Entity struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// PreprocessResult is the structured output of the preprocessing path.
// Entities is always a list and Confidence is always within [0,1]; the
// parser enforces both.
type PreprocessResult struct {
	NormalizedText  string                 `json:"normalized_text"`
	SuggestedIntent string                 `json:"suggested_intent,omitempty"`
	Entities        []Entity               `json:"entities"`
	Confidence      float64                `json:"confidence"`
	ContextUpdate   map[string]interface{} `json:"context_update"`
}

// Decision is the structured output of the decision path. Action is empty
// unless every required slot of the addressed workflow is filled.
type Decision struct {
	Response string            `json:"response"`
	Action   string            `json:"action,omitempty"`
	Slots    map[string]string `json:"slots"`
}

// MaxTextLength caps normalized/response text recovered from malformed
// model output.
const MaxTextLength = 200

// Truncate trims s to at most MaxTextLength runes.
func Truncate(s string) string {
	runes := []rune(s)
	if len(runes) <= MaxTextLength {
		return s
	}
	return string(runes[:MaxTextLength])
}
