package nlp

import (
	"fmt"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ParsePreprocess extracts a PreprocessResult from raw model output. It
// never fails: tiers run in order (strict JSON, keyword heuristics, safe
// default) and the first success wins.
func ParsePreprocess(raw string) PreprocessResult {
	if obj, ok := decodeObject(raw); ok {
		return validatePreprocess(obj, raw)
	}

	if intent, ok := guessIntent(raw); ok {
		return PreprocessResult{
			NormalizedText:  Truncate(strings.TrimSpace(raw)),
			SuggestedIntent: intent,
			Entities:        []Entity{},
			Confidence:      0.3,
			ContextUpdate:   map[string]interface{}{},
		}
	}

	return SafeDefaultPreprocess(raw)
}

// ParseDecision extracts a Decision from raw model output. Never fails;
// undecodable output degrades to a plain-text reply with no action.
func ParseDecision(raw string) Decision {
	obj, ok := decodeObject(raw)
	if !ok {
		return Decision{
			Response: Truncate(strings.TrimSpace(raw)),
			Slots:    map[string]string{},
		}
	}

	decision := Decision{
		Response: stringField(obj, "response"),
		Action:   stringField(obj, "action"),
		Slots:    coerceSlots(obj["slots"]),
	}
	if decision.Response == "" {
		decision.Response = "I'm not sure what to say."
	}
	return decision
}

// SafeDefaultPreprocess is the tier-three result: truncated text, no
// intent, empty containers, zero confidence.
func SafeDefaultPreprocess(raw string) PreprocessResult {
	return PreprocessResult{
		NormalizedText: Truncate(strings.TrimSpace(raw)),
		Entities:       []Entity{},
		Confidence:     0.0,
		ContextUpdate:  map[string]interface{}{},
	}
}

// decodeObject strips code fences, slices the first '{' through the last
// '}', and attempts a strict JSON decode of that substring.
func decodeObject(raw string) (map[string]interface{}, bool) {
	text := strings.TrimSpace(raw)

	if strings.HasPrefix(text, "```") {
		text = strings.ReplaceAll(text, "```json", "")
		text = strings.ReplaceAll(text, "```", "")
		text = strings.TrimSpace(text)
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return nil, false
	}

	var obj map[string]interface{}
	if err := json.UnmarshalFromString(text[start:end+1], &obj); err != nil {
		return nil, false
	}
	return obj, true
}

func guessIntent(raw string) (string, bool) {
	lower := strings.ToLower(raw)
	switch {
	case strings.Contains(lower, "greet") || strings.Contains(lower, "hello"):
		return "greet", true
	case strings.Contains(lower, "student") && strings.Contains(lower, "create"):
		return "create_student", true
	}
	return "", false
}

// validatePreprocess fills missing fields with documented defaults, clamps
// confidence into [0,1] and coerces wrong-shaped containers.
func validatePreprocess(obj map[string]interface{}, raw string) PreprocessResult {
	result := PreprocessResult{
		NormalizedText:  stringField(obj, "normalized_text"),
		SuggestedIntent: stringField(obj, "suggested_intent"),
		Entities:        coerceEntities(obj["entities"]),
		Confidence:      coerceConfidence(obj["confidence"]),
		ContextUpdate:   coerceContext(obj["context_update"]),
	}

	if result.NormalizedText == "" {
		result.NormalizedText = Truncate(strings.TrimSpace(raw))
	}
	return result
}

func stringField(obj map[string]interface{}, key string) string {
	value, ok := obj[key].(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(value)
}

// coerceEntities accepts a list of entity objects, a single entity object,
// or garbage; the producer is unreliable about container shapes.
func coerceEntities(value interface{}) []Entity {
	switch typed := value.(type) {
	case []interface{}:
		entities := make([]Entity, 0, len(typed))
		for _, item := range typed {
			if entity, ok := entityFrom(item); ok {
				entities = append(entities, entity)
			}
		}
		return entities
	case map[string]interface{}:
		if entity, ok := entityFrom(typed); ok {
			return []Entity{entity}
		}
	}
	return []Entity{}
}

func entityFrom(item interface{}) (Entity, bool) {
	obj, ok := item.(map[string]interface{})
	if !ok {
		return Entity{}, false
	}

	entityType := stringField(obj, "type")
	if entityType == "" {
		entityType = stringField(obj, "entity")
	}
	if entityType == "" {
		return Entity{}, false
	}

	value := obj["value"]
	if value == nil {
		return Entity{}, false
	}
	return Entity{Type: entityType, Value: fmt.Sprintf("%v", value)}, true
}

func coerceConfidence(value interface{}) float64 {
	confidence := 0.5
	switch typed := value.(type) {
	case float64:
		confidence = typed
	case int:
		confidence = float64(typed)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(typed), 64)
		if err == nil {
			confidence = parsed
		}
	}

	if confidence < 0.0 {
		return 0.0
	}
	if confidence > 1.0 {
		return 1.0
	}
	return confidence
}

func coerceContext(value interface{}) map[string]interface{} {
	if typed, ok := value.(map[string]interface{}); ok {
		return typed
	}
	return map[string]interface{}{}
}

func coerceSlots(value interface{}) map[string]string {
	obj, ok := value.(map[string]interface{})
	if !ok {
		return map[string]string{}
	}

	slots := make(map[string]string, len(obj))
	for key, item := range obj {
		if item == nil {
			continue
		}
		if text, ok := item.(string); ok {
			slots[key] = text
			continue
		}
		slots[key] = fmt.Sprintf("%v", item)
	}
	return slots
}
