package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWorkflowForAction(t *testing.T) {
	workflow, ok := WorkflowForAction("create_student")
	assert.True(t, ok)
	assert.Equal(t, "student_creation", workflow.Name)
	assert.Equal(t, []string{"student_name", "admission_no", "class_name"}, workflow.RequiredSlots)

	_, ok = WorkflowForAction("launch_rockets")
	assert.False(t, ok)
}

func TestMissingSlotsOrder(t *testing.T) {
	workflow, _ := WorkflowByName("guardian_creation")

	missing := workflow.MissingSlots(map[string]string{
		"guardian_name": "Jane Njeri",
		"phone":         "0712345678",
	})

	// declared order, not map order
	assert.Equal(t, []string{"relationship", "email", "student_name"}, missing)
}

func TestMissingSlotsTreatsBlankAsEmpty(t *testing.T) {
	workflow, _ := WorkflowByName("student_creation")

	missing := workflow.MissingSlots(map[string]string{
		"student_name": "Joshua Mwangi",
		"admission_no": "   ",
	})

	assert.Contains(t, missing, "admission_no")
	assert.Contains(t, missing, "class_name")
}

func TestActionAllowed(t *testing.T) {
	complete := map[string]string{
		"student_name": "Joshua Mwangi",
		"admission_no": "AUTO",
		"class_name":   "Grade 5",
	}
	assert.True(t, ActionAllowed("create_student", complete))

	partial := map[string]string{"student_name": "Joshua Mwangi"}
	assert.False(t, ActionAllowed("create_student", partial))

	// routed actions carry no slot requirements
	assert.True(t, ActionAllowed("list_students", nil))
	assert.True(t, ActionAllowed("get_school_info", map[string]string{}))

	// unknown or empty actions are never allowed
	assert.False(t, ActionAllowed("self_destruct", complete))
	assert.False(t, ActionAllowed("", complete))
}
