package assistantService

import (
	"ShuleGolang/internal/api/assistant"
	"ShuleGolang/internal/entity"
	contextPkg "ShuleGolang/pkg/context"
	"ShuleGolang/pkg/nlp"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

const fallbackResponse = "I'm having trouble connecting to my reasoning engine. Please try again in a moment."

// Decide runs the full decision pipeline for one user message: rewrite,
// quick-pattern shortcut, model reasoning, slot-completion guard, action
// dispatch. Model failures degrade to a canned reply instead of an error.
func (s *assistantService) Decide(ctx context.Context, req assistant.MessageRequest) (assistant.MessageResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	conversationID := strings.TrimSpace(req.ConversationID)
	if conversationID == "" {
		generated, err := s.utils.NewULIDFromTimestamp(time.Now())
		if err != nil {
			return assistant.MessageResponse{}, err
		}
		conversationID = generated
	}

	rewritten := s.rewriter.Normalize(req.Message)

	decision, confidence := s.decide(ctx, requestID, conversationID, req, rewritten)

	// The guard runs on the merged view: slots the caller already holds
	// plus whatever this turn extracted. The model is not trusted to
	// decide completion on its own.
	merged := mergeSlots(req.Context.Slots, decision.Slots)

	if decision.Action != "" && !nlp.ActionAllowed(decision.Action, merged) {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"action":     decision.Action,
		}).Warn("Premature action suppressed, required slots incomplete")
		decision.Action = ""
	}

	dispatched := false
	if decision.Action != "" {
		summary, err := s.dispatch(ctx, decision.Action, merged)
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"action":     decision.Action,
				"error":      err.Error(),
			}).Warn("Action dispatch failed")
			decision.Response = fmt.Sprintf("I couldn't complete that: %s", err.Error())
		} else {
			dispatched = true
			if summary != "" {
				decision.Response = summary
			}
		}
	}

	s.recordTurn(ctx, requestID, conversationID, req.Message, decision, confidence)

	memory := s.sessions.Get(conversationID)
	memory.Append(memoryTurn{
		UserText: req.Message,
		Response: decision.Response,
		Action:   decision.Action,
	})

	return assistant.MessageResponse{
		ConversationID: conversationID,
		Response:       decision.Response,
		Action:         decision.Action,
		Slots:          decision.Slots,
		Dispatched:     dispatched,
	}, nil
}

// decide resolves the reply itself: quick patterns answer without the
// model, everything else goes through the reasoning bridge. The returned
// confidence describes the stage that produced the decision.
func (s *assistantService) decide(ctx context.Context, requestID, conversationID string, req assistant.MessageRequest, rewritten string) (nlp.Decision, float64) {
	if result, ok := nlp.MatchQuickPattern(rewritten); ok {
		if decision, ok := quickDecision(result.SuggestedIntent); ok {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"intent":     result.SuggestedIntent,
			}).Debug("Quick pattern decision, skipping model")
			return decision, result.Confidence
		}
	}

	if result, ok := s.cache.GetPreprocessResult(ctx, rewritten); ok {
		if decision, ok := quickDecision(result.SuggestedIntent); ok {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"intent":     result.SuggestedIntent,
			}).Debug("Cached canonical phrase, skipping model")
			return decision, result.Confidence
		}
	}

	if !s.brainConfig.Enabled {
		return nlp.Decision{Response: fallbackResponse, Slots: map[string]string{}}, 0.0
	}

	memory := s.sessions.Get(conversationID)
	prompt := s.buildDecisionPrompt(req.Message, req.Context, memory.Recent(4))

	raw, err := s.brain.Generate(ctx, prompt)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Reasoning model call failed, degrading to fallback reply")
		return nlp.Decision{Response: fallbackResponse, Slots: map[string]string{}}, 0.0
	}

	decision := nlp.ParseDecision(raw)
	decision.Action = strings.TrimPrefix(decision.Action, "action_")
	return decision, 1.0
}

// quickDecision maps shortcut intents onto canned decisions. Listing
// intents carry their action so dispatch still runs; small talk stays
// local.
func quickDecision(intent string) (nlp.Decision, bool) {
	switch intent {
	case "greet":
		return nlp.Decision{
			Response: "Hello! I'm your school management assistant. I can create students, add guardians, set up classes, or list what you already have.",
			Slots:    map[string]string{},
		}, true
	case "goodbye":
		return nlp.Decision{
			Response: "Goodbye! Let me know if you need anything else.",
			Slots:    map[string]string{},
		}, true
	case "list_students":
		return nlp.Decision{
			Response: "Here are the students.",
			Action:   "list_students",
			Slots:    map[string]string{},
		}, true
	case "list_classes":
		return nlp.Decision{
			Response: "Here are the classes.",
			Action:   "list_classes",
			Slots:    map[string]string{},
		}, true
	case "list_guardians":
		return nlp.Decision{
			Response: "Here are the guardians.",
			Action:   "list_guardians",
			Slots:    map[string]string{},
		}, true
	case "check_academic_setup":
		return nlp.Decision{
			Response: "Checking the academic setup.",
			Action:   "check_academic_setup",
			Slots:    map[string]string{},
		}, true
	}
	return nlp.Decision{}, false
}

func mergeSlots(base, overlay map[string]string) map[string]string {
	merged := make(map[string]string, len(base)+len(overlay))
	for key, value := range base {
		merged[key] = value
	}
	for key, value := range overlay {
		if strings.TrimSpace(value) != "" {
			merged[key] = value
		}
	}
	return merged
}

// recordTurn persists the exchange for the history endpoint. Failures are
// logged and swallowed; the reply has already been decided.
func (s *assistantService) recordTurn(ctx context.Context, requestID, conversationID, userText string, decision nlp.Decision, confidence float64) {
	id, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Failed to generate turn ID")
		return
	}

	repo, err := s.assistantRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Failed to open repository client for turn record")
		return
	}

	turn := entity.ConversationTurn{
		ID:             id,
		ConversationID: conversationID,
		UserText:       userText,
		Response:       decision.Response,
		Action:         decision.Action,
		Confidence:     confidence,
		CreatedAt:      time.Now(),
	}

	if err := repo.Turns.CreateTurn(ctx, turn); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id":      requestID,
			"conversation_id": conversationID,
			"error":           err.Error(),
		}).Warn("Failed to persist conversation turn")
	}
}

func (s *assistantService) buildDecisionPrompt(message string, decisionCtx assistant.DecisionContext, history []memoryTurn) string {
	var b strings.Builder

	b.WriteString("You are an intelligent School Management AI Assistant.\n")
	b.WriteString("Your job: understand what the user wants, gather missing info conversationally, and trigger actions when ready.\n\n")

	b.WriteString("**Rules:**\n")
	b.WriteString("1. Always validate data (e.g., names must have first and last name)\n")
	b.WriteString("2. Ask step-by-step for missing info\n")
	b.WriteString("3. Only trigger an action when all required data is available\n")
	b.WriteString("4. Never output plain text, respond ONLY with JSON\n\n")

	b.WriteString("**Example outputs:**\n")
	b.WriteString(`{"response": "Sure, let's create a student. What is the student's full name?", "action": null, "slots": {}}`)
	b.WriteString("\n\n")
	b.WriteString(`{"response": "Got it! Creating student Joshua Mwangi in Grade 5.", "action": "create_student", "slots": {"student_name": "Joshua Mwangi", "admission_no": "AUTO", "class_name": "Grade 5"}}`)
	b.WriteString("\n\n")

	b.WriteString("**ACTION MAPPING RULES**\n")
	b.WriteString("- When user says 'create student', 'add student', 'register student' use create_student\n")
	b.WriteString("- When user says 'add guardian', 'register guardian' use add_guardian\n")
	b.WriteString("- When user says 'list students' or 'show students' use list_students\n")
	b.WriteString("- When user says 'list classes' or 'show classes' use list_classes\n")
	b.WriteString("- When user says 'list guardians' use list_guardians\n")
	b.WriteString("- When user says 'create class' use create_class\n")
	b.WriteString("- When user says 'check academic setup' use check_academic_setup\n")
	b.WriteString("- When user says 'get school info' use get_school_info\n")
	b.WriteString("If unsure, respond naturally and ask clarifying questions. Only trigger the action when all required slots are filled.\n\n")

	for _, workflow := range nlp.Workflows {
		fmt.Fprintf(&b, "**%s WORKFLOW** (action %s)\nAsk for these in order:\n", strings.ToUpper(workflow.Name), workflow.Action)
		for i, slot := range workflow.RequiredSlots {
			fmt.Fprintf(&b, "%d. %s\n", i+1, slot)
		}
		b.WriteString("If the user says \"auto generate\" for admission_no, store it as \"AUTO\".\n")
		fmt.Fprintf(&b, "Only emit action %q once every slot above is filled.\n\n", workflow.Action)
	}

	b.WriteString("Context:\n")
	activeWorkflow := decisionCtx.ActiveWorkflow
	if activeWorkflow == "" {
		activeWorkflow = "None"
	}
	fmt.Fprintf(&b, "Active Workflow: %s\n", activeWorkflow)

	recent := decisionCtx.RecentActions
	if len(recent) > 3 {
		recent = recent[len(recent)-3:]
	}
	fmt.Fprintf(&b, "Recent Actions: %s\n", strings.Join(recent, ", "))

	slots := decisionCtx.Slots
	if slots == nil {
		slots = map[string]string{}
	}
	if encoded, err := json.MarshalToString(slots); err == nil {
		fmt.Fprintf(&b, "Slots: %s\n", encoded)
	}

	b.WriteString("Conversation History:\n")
	if len(history) == 0 {
		b.WriteString("(no prior context)\n")
	} else {
		for _, turn := range history {
			fmt.Fprintf(&b, "User: %s\nAI: %s\n", turn.UserText, turn.Response)
		}
	}

	fmt.Fprintf(&b, "\nUser said: %q\n\n", message)
	b.WriteString("Respond **only** in JSON format:\n")
	b.WriteString(`{"response": "your reply", "action": "action_name or null", "slots": {}}`)

	return b.String()
}
