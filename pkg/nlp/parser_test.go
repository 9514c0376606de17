package nlp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePreprocessStrictJSON(t *testing.T) {
	raw := `{"normalized_text": "create student", "suggested_intent": "create_student",
		"entities": [{"type": "student_name", "value": "Joshua Mwangi"}],
		"confidence": 0.85, "context_update": {"workflow": "student_creation"}}`

	result := ParsePreprocess(raw)

	assert.Equal(t, "create student", result.NormalizedText)
	assert.Equal(t, "create_student", result.SuggestedIntent)
	assert.Len(t, result.Entities, 1)
	assert.Equal(t, "student_name", result.Entities[0].Type)
	assert.Equal(t, "Joshua Mwangi", result.Entities[0].Value)
	assert.InDelta(t, 0.85, result.Confidence, 0.001)
	assert.Equal(t, "student_creation", result.ContextUpdate["workflow"])
}

func TestParsePreprocessCodeFences(t *testing.T) {
	raw := "```json\n{\"normalized_text\": \"list all students\", \"suggested_intent\": \"list_students\", \"entities\": [], \"confidence\": 0.9}\n```"

	result := ParsePreprocess(raw)

	assert.Equal(t, "list_students", result.SuggestedIntent)
	assert.InDelta(t, 0.9, result.Confidence, 0.001)
}

func TestParsePreprocessSurroundingNoise(t *testing.T) {
	raw := `Sure! Here is the JSON you asked for: {"normalized_text": "hi", "suggested_intent": "greet", "entities": [], "confidence": 0.95} Hope that helps.`

	result := ParsePreprocess(raw)

	assert.Equal(t, "greet", result.SuggestedIntent)
}

func TestParsePreprocessMalformed(t *testing.T) {
	result := ParsePreprocess("not json at all")

	assert.Equal(t, "not json at all", result.NormalizedText)
	assert.Empty(t, result.SuggestedIntent)
	assert.Empty(t, result.Entities)
	assert.NotNil(t, result.Entities)
	assert.Equal(t, 0.0, result.Confidence)
}

func TestParsePreprocessTruncatesLongGarbage(t *testing.T) {
	raw := strings.Repeat("x", 5*MaxTextLength)

	result := ParsePreprocess(raw)

	assert.Len(t, []rune(result.NormalizedText), MaxTextLength)
	assert.Equal(t, 0.0, result.Confidence)
}

func TestParsePreprocessHeuristicTier(t *testing.T) {
	result := ParsePreprocess("the user wants to greet the assistant")
	assert.Equal(t, "greet", result.SuggestedIntent)
	assert.InDelta(t, 0.3, result.Confidence, 0.001)

	result = ParsePreprocess("looks like they want to create a new student record")
	assert.Equal(t, "create_student", result.SuggestedIntent)
}

func TestParsePreprocessClampsConfidence(t *testing.T) {
	result := ParsePreprocess(`{"normalized_text": "hi", "confidence": 3.7}`)
	assert.Equal(t, 1.0, result.Confidence)

	result = ParsePreprocess(`{"normalized_text": "hi", "confidence": -2}`)
	assert.Equal(t, 0.0, result.Confidence)

	result = ParsePreprocess(`{"normalized_text": "hi", "confidence": "0.6"}`)
	assert.InDelta(t, 0.6, result.Confidence, 0.001)

	result = ParsePreprocess(`{"normalized_text": "hi", "confidence": "high"}`)
	assert.InDelta(t, 0.5, result.Confidence, 0.001)
}

func TestParsePreprocessCoercesEntityShapes(t *testing.T) {
	// single object instead of a list
	result := ParsePreprocess(`{"normalized_text": "x", "entities": {"type": "class_name", "value": "class 5"}}`)
	assert.Len(t, result.Entities, 1)
	assert.Equal(t, "class 5", result.Entities[0].Value)

	// rasa-style "entity" key
	result = ParsePreprocess(`{"normalized_text": "x", "entities": [{"entity": "phone", "value": "0712345678"}]}`)
	assert.Len(t, result.Entities, 1)
	assert.Equal(t, "phone", result.Entities[0].Type)

	// garbage container
	result = ParsePreprocess(`{"normalized_text": "x", "entities": "none"}`)
	assert.NotNil(t, result.Entities)
	assert.Empty(t, result.Entities)
}

func TestParsePreprocessFillsMissingFields(t *testing.T) {
	result := ParsePreprocess(`{"suggested_intent": "greet"}`)

	assert.NotNil(t, result.Entities)
	assert.NotNil(t, result.ContextUpdate)
	assert.InDelta(t, 0.5, result.Confidence, 0.001)
	assert.NotEmpty(t, result.NormalizedText)
}

func TestParseDecisionStrict(t *testing.T) {
	raw := `{"response": "Got it! Creating student Joshua Mwangi in Grade 5.",
		"action": "create_student",
		"slots": {"student_name": "Joshua Mwangi", "admission_no": "AUTO", "class_name": "Grade 5"}}`

	decision := ParseDecision(raw)

	assert.Equal(t, "create_student", decision.Action)
	assert.Equal(t, "Joshua Mwangi", decision.Slots["student_name"])
	assert.Equal(t, "AUTO", decision.Slots["admission_no"])
	assert.Equal(t, "Grade 5", decision.Slots["class_name"])
}

func TestParseDecisionNullAction(t *testing.T) {
	decision := ParseDecision(`{"response": "What is the student's full name?", "action": null, "slots": {}}`)

	assert.Empty(t, decision.Action)
	assert.NotNil(t, decision.Slots)
}

func TestParseDecisionMalformed(t *testing.T) {
	raw := strings.Repeat("definitely not json ", 30)

	decision := ParseDecision(raw)

	assert.Empty(t, decision.Action)
	assert.NotNil(t, decision.Slots)
	assert.LessOrEqual(t, len([]rune(decision.Response)), MaxTextLength)
}

func TestParseDecisionCoercesSlotValues(t *testing.T) {
	decision := ParseDecision(`{"response": "ok", "slots": {"amount": 5000, "student_name": "Amina", "note": null}}`)

	assert.Equal(t, "5000", decision.Slots["amount"])
	assert.Equal(t, "Amina", decision.Slots["student_name"])
	_, hasNote := decision.Slots["note"]
	assert.False(t, hasNote)
}

func TestParseDecisionDefaultResponse(t *testing.T) {
	decision := ParseDecision(`{"action": null, "slots": {}}`)
	assert.Equal(t, "I'm not sure what to say.", decision.Response)
}
