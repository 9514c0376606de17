package assistantService

import (
	"ShuleGolang/internal/api/assistant"
	contextPkg "ShuleGolang/pkg/context"
	"ShuleGolang/pkg/nlp"
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Preprocess runs the normalization pipeline for one utterance. The stages
// run cheapest first: rewrite rules, quick patterns, cache, then the model.
// It never returns an error for model failures; those degrade to the
// rewritten text with zero confidence.
func (s *assistantService) Preprocess(ctx context.Context, req assistant.PreprocessRequest) (nlp.PreprocessResult, error) {
	requestID := contextPkg.GetRequestID(ctx)

	rewritten := s.rewriter.Normalize(req.Message)

	if result, ok := nlp.MatchQuickPattern(rewritten); ok {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"intent":     result.SuggestedIntent,
		}).Debug("Quick pattern hit, skipping model")
		return result, nil
	}

	if result, ok := s.cache.GetPreprocessResult(ctx, rewritten); ok {
		return result, nil
	}

	if !s.preprocessConfig.Enabled {
		return nlp.SafeDefaultPreprocess(rewritten), nil
	}

	memory := s.sessions.Get(req.ConversationID)
	prompt := s.buildPreprocessPrompt(rewritten, req.Context, memory.Recent(s.preprocessConfig.MemoryTurns))

	raw, err := s.preprocessor.Generate(ctx, prompt)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Preprocessing model call failed, returning rewritten text")
		return nlp.SafeDefaultPreprocess(rewritten), nil
	}

	result := nlp.ParsePreprocess(raw)

	// The model sometimes echoes the raw input untouched; prefer the
	// rule-rewritten form in that case.
	if result.NormalizedText == "" || result.NormalizedText == strings.TrimSpace(req.Message) {
		result.NormalizedText = rewritten
	}

	if err := s.cache.SetPreprocessResult(ctx, rewritten, result); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Failed to memoize preprocessing result")
	}

	memory.Append(memoryTurn{UserText: req.Message})

	return result, nil
}

func (s *assistantService) buildPreprocessPrompt(message string, extra map[string]interface{}, history []memoryTurn) string {
	var b strings.Builder

	b.WriteString("You are a JSON-only preprocessing system for a Kenyan school management assistant. ")
	b.WriteString("Your ONLY job is to output valid JSON.\n\n")
	b.WriteString("CRITICAL: Respond with ONLY a single line of valid JSON. No explanations, no markdown, no extra text.\n")

	if len(history) > 0 {
		recent := history
		if len(recent) > 2 {
			recent = recent[len(recent)-2:]
		}
		b.WriteString("\nRecent:\n")
		for _, turn := range recent {
			fmt.Fprintf(&b, "User: %s\n", turn.UserText)
		}
	}

	if len(extra) > 0 {
		if encoded, err := json.MarshalToString(extra); err == nil {
			fmt.Fprintf(&b, "\nCurrent Context: %s\n", encoded)
		}
	}

	b.WriteString("\n**Entity Types to Extract:**\n")
	b.WriteString("- student_name, admission_no, class_name, level, stream\n")
	b.WriteString("- guardian_name, phone, relationship\n")
	b.WriteString("- academic_year, amount\n\n")

	fmt.Fprintf(&b, "User Message: %q\n\n", message)
	b.WriteString("Output ONLY this JSON (one line):\n")
	fmt.Fprintf(&b, `{"normalized_text": %q, "suggested_intent": "intent_name", "entities": [], "confidence": 0.85, "context_update": {}}`, message)
	b.WriteString("\n\nJSON:")

	return b.String()
}
