package nlp

import "strings"

// quickPatterns maps exact normalized phrases to precomputed results so
// trivial utterances never reach the model.
var quickPatterns = map[string]PreprocessResult{
	"hi":             greeting("hi"),
	"hello":          greeting("hello"),
	"hey":            greeting("hey"),
	"greetings":      greeting("greetings"),
	"good morning":   greeting("good morning"),
	"good afternoon": greeting("good afternoon"),

	"bye":     farewell("bye"),
	"goodbye": farewell("goodbye"),
	"see you": farewell("see you"),
	"exit":    farewell("exit"),
	"quit":    farewell("quit"),

	"list all students": {
		NormalizedText:  "list all students",
		SuggestedIntent: "list_students",
		Entities:        []Entity{},
		Confidence:      0.90,
		ContextUpdate:   map[string]interface{}{},
	},
	"list all classes": {
		NormalizedText:  "list all classes",
		SuggestedIntent: "list_classes",
		Entities:        []Entity{},
		Confidence:      0.90,
		ContextUpdate:   map[string]interface{}{},
	},
	"list all guardians": {
		NormalizedText:  "list all guardians",
		SuggestedIntent: "list_guardians",
		Entities:        []Entity{},
		Confidence:      0.90,
		ContextUpdate:   map[string]interface{}{},
	},
	"check academic setup": {
		NormalizedText:  "check academic setup",
		SuggestedIntent: "check_academic_setup",
		Entities:        []Entity{},
		Confidence:      0.90,
		ContextUpdate:   map[string]interface{}{},
	},
}

func greeting(text string) PreprocessResult {
	return PreprocessResult{
		NormalizedText:  text,
		SuggestedIntent: "greet",
		Entities:        []Entity{},
		Confidence:      0.95,
		ContextUpdate:   map[string]interface{}{},
	}
}

func farewell(text string) PreprocessResult {
	return PreprocessResult{
		NormalizedText:  text,
		SuggestedIntent: "goodbye",
		Entities:        []Entity{},
		Confidence:      0.95,
		ContextUpdate:   map[string]interface{}{},
	}
}

// MatchQuickPattern returns the precomputed result for trivial inputs.
// Checked after the rewrite engine and before any model call.
func MatchQuickPattern(text string) (PreprocessResult, bool) {
	result, ok := quickPatterns[strings.ToLower(strings.TrimSpace(text))]
	if !ok {
		return PreprocessResult{}, false
	}
	// copy the containers so callers cannot mutate the table
	out := result
	out.Entities = append([]Entity{}, result.Entities...)
	out.ContextUpdate = map[string]interface{}{}
	return out, true
}

// CacheAllowList is the curated set of canonical phrases whose results may
// be memoized. Entity-bearing free text is never cached so stale entities
// cannot be replayed into unrelated conversations.
var CacheAllowList = map[string]bool{
	"hi":                true,
	"hello":             true,
	"hey":               true,
	"greet":             true,
	"list all students": true,
	"list all classes":  true,
}

// Cacheable reports whether the normalized text may be memoized.
func Cacheable(normalized string) bool {
	return CacheAllowList[strings.ToLower(strings.TrimSpace(normalized))]
}
