package nlp

import "strings"

// Workflow is a named multi-turn task defined by an ordered list of
// required slots. There is no persisted workflow state; the current step is
// reconstructed each turn from which slots are already non-empty.
type Workflow struct {
	Name          string
	Action        string
	RequiredSlots []string
}

// Workflows are the multi-turn tasks the orchestrator knows about, keyed
// by the action they trigger once complete.
var Workflows = []Workflow{
	{
		Name:          "student_creation",
		Action:        "create_student",
		RequiredSlots: []string{"student_name", "admission_no", "class_name"},
	},
	{
		Name:          "guardian_creation",
		Action:        "add_guardian",
		RequiredSlots: []string{"guardian_name", "relationship", "phone", "email", "student_name"},
	},
	{
		Name:          "class_creation",
		Action:        "create_class",
		RequiredSlots: []string{"class_name", "level"},
	},
}

// routedActions are single-shot actions with no slot requirements.
var routedActions = map[string]bool{
	"list_students":        true,
	"list_classes":         true,
	"list_guardians":       true,
	"check_academic_setup": true,
	"get_school_info":      true,
}

// WorkflowForAction resolves the workflow addressed by an action name.
func WorkflowForAction(action string) (Workflow, bool) {
	for _, workflow := range Workflows {
		if workflow.Action == action {
			return workflow, true
		}
	}
	return Workflow{}, false
}

// WorkflowByName resolves a workflow by its name.
func WorkflowByName(name string) (Workflow, bool) {
	for _, workflow := range Workflows {
		if workflow.Name == name {
			return workflow, true
		}
	}
	return Workflow{}, false
}

// MissingSlots returns the workflow's required slots, in declared order,
// that are empty or absent in the given slot map.
func (w Workflow) MissingSlots(slots map[string]string) []string {
	var missing []string
	for _, name := range w.RequiredSlots {
		if strings.TrimSpace(slots[name]) == "" {
			missing = append(missing, name)
		}
	}
	return missing
}

// Complete reports whether every required slot is non-empty.
func (w Workflow) Complete(slots map[string]string) bool {
	return len(w.MissingSlots(slots)) == 0
}

// ActionAllowed reports whether an action may be emitted given the merged
// slot state: routed actions always may, workflow actions only once their
// slot set is complete, unknown actions never.
func ActionAllowed(action string, slots map[string]string) bool {
	if action == "" {
		return false
	}
	if routedActions[action] {
		return true
	}
	workflow, ok := WorkflowForAction(action)
	if !ok {
		return false
	}
	return workflow.Complete(slots)
}
