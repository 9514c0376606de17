package rewrite

import "regexp"

// DefaultRules is the ordered rule table. Order is a designed priority:
// listing patterns run before terminology so "show me grade 8 students"
// collapses to the canonical list query instead of "class 8 students".
func DefaultRules() []Rule {
	return []Rule{
		// Student listing patterns
		{Tag: "student-listing", Pattern: regexp.MustCompile(`(list|show|display|see|view).*(students?).*(school|system|database)`), Replacement: "list all students"},
		{Tag: "student-listing", Pattern: regexp.MustCompile(`(do we have|are there|how many).*(students?)`), Replacement: "list all students"},
		{Tag: "student-listing", Pattern: regexp.MustCompile(`(show|list|display|get).*(all)?.*(students?)`), Replacement: "list all students"},
		{Tag: "student-listing", Pattern: regexp.MustCompile(`(students?).*(list|show|display)`), Replacement: "list all students"},
		{Tag: "student-listing", Pattern: regexp.MustCompile(`(view|check).*(students?)`), Replacement: "list all students"},

		// Class listing patterns
		{Tag: "class-listing", Pattern: regexp.MustCompile(`(list|show|display|see).*(class(?:es)?|grade(?:s)?).*(school)`), Replacement: "list all classes"},
		{Tag: "class-listing", Pattern: regexp.MustCompile(`(what|which).*(class(?:es)?|grade(?:s)?).*(have|exist)`), Replacement: "list all classes"},
		{Tag: "class-listing", Pattern: regexp.MustCompile(`(show|list).*(all)?.*(class(?:es)?)`), Replacement: "list all classes"},

		// Guardian patterns
		{Tag: "guardian-listing", Pattern: regexp.MustCompile(`(list|show|display).*(guardians?|parents?)`), Replacement: "list all guardians"},
		{Tag: "guardian-listing", Pattern: regexp.MustCompile(`(students?).*(without|no).*(guardians?|parents?)`), Replacement: "list students without guardians"},

		// Academic setup patterns
		{Tag: "academic-setup", Pattern: regexp.MustCompile(`(check|show|view).*(academic|school).*(setup|configuration)`), Replacement: "check academic setup"},
		{Tag: "academic-setup", Pattern: regexp.MustCompile(`(what|which).*(academic year|term).*(active|current)`), Replacement: "check academic setup"},

		// Terminology normalization
		{Tag: "terminology", Pattern: regexp.MustCompile(`\bgrade\s+(\d+)`), Replacement: "class $1"},
		{Tag: "terminology", Pattern: regexp.MustCompile(`\bform\s+1\b`), Replacement: "class 9"},
		{Tag: "terminology", Pattern: regexp.MustCompile(`\bform\s+2\b`), Replacement: "class 10"},
		{Tag: "terminology", Pattern: regexp.MustCompile(`\bform\s+3\b`), Replacement: "class 11"},
		{Tag: "terminology", Pattern: regexp.MustCompile(`\bform\s+4\b`), Replacement: "class 12"},
		{Tag: "terminology", Pattern: regexp.MustCompile(`\bstd\s+(\d+)`), Replacement: "class $1"},
		{Tag: "terminology", Pattern: regexp.MustCompile(`\bstandard\s+(\d+)`), Replacement: "class $1"},
		{Tag: "terminology", Pattern: regexp.MustCompile(`\bpp1\b`), Replacement: "pre-primary 1"},
		{Tag: "terminology", Pattern: regexp.MustCompile(`\bpp2\b`), Replacement: "pre-primary 2"},

		// Synonym normalization
		{Tag: "synonym", Pattern: regexp.MustCompile(`\bparents?\b`), Replacement: "guardian"},
		{Tag: "synonym", Pattern: regexp.MustCompile(`\bcaregivers?\b`), Replacement: "guardian"},
		{Tag: "synonym", Pattern: regexp.MustCompile(`\bmum\b`), Replacement: "mother"},
		{Tag: "synonym", Pattern: regexp.MustCompile(`\bmom\b`), Replacement: "mother"},
		{Tag: "synonym", Pattern: regexp.MustCompile(`\bdad\b`), Replacement: "father"},
		{Tag: "synonym", Pattern: regexp.MustCompile(`\bpapa\b`), Replacement: "father"},

		// Action synonyms
		{Tag: "action-synonym", Pattern: regexp.MustCompile(`\bregister\b`), Replacement: "create"},
		{Tag: "action-synonym", Pattern: regexp.MustCompile(`\badd new\b`), Replacement: "create"},
		{Tag: "action-synonym", Pattern: regexp.MustCompile(`\benroll\b`), Replacement: "create"},
		{Tag: "action-synonym", Pattern: regexp.MustCompile(`\bremove\b`), Replacement: "delete"},
		{Tag: "action-synonym", Pattern: regexp.MustCompile(`\berase\b`), Replacement: "delete"},
	}
}
