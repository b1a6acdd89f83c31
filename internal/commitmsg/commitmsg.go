// Package commitmsg composes Conventional Commits messages.
package commitmsg

import (
	"fmt"
	"strings"
)

// MaxSubjectLen caps the header subject, following the common 72-column rule.
const MaxSubjectLen = 72

// Message holds the pieces of a conventional commit message.
type Message struct {
	Type     string
	Scope    string
	Subject  string
	Body     string
	Breaking string // BREAKING CHANGE description, empty if none
	Refs     []string
}

// Validate checks the message can be rendered.
func (m *Message) Validate() error {
	if m.Type == "" {
		return fmt.Errorf("commit type is required")
	}
	if strings.ContainsAny(m.Type, " ()") {
		return fmt.Errorf("commit type %q must be a single word", m.Type)
	}
	if m.Subject == "" {
		return fmt.Errorf("commit subject is required")
	}
	if len(m.Subject) > MaxSubjectLen {
		return fmt.Errorf("subject is %d chars, max %d", len(m.Subject), MaxSubjectLen)
	}
	return nil
}

// String renders the full commit message:
//
//	type(scope)!: subject
//
//	body
//
//	BREAKING CHANGE: ...
//
//	Refs: #1, #2
func (m *Message) String() string {
	var b strings.Builder

	b.WriteString(m.Type)
	if m.Scope != "" {
		b.WriteString("(" + m.Scope + ")")
	}
	if m.Breaking != "" {
		b.WriteString("!")
	}
	b.WriteString(": " + m.Subject)

	if m.Body != "" {
		b.WriteString("\n\n" + m.Body)
	}
	if m.Breaking != "" {
		b.WriteString("\n\nBREAKING CHANGE: " + m.Breaking)
	}
	if len(m.Refs) > 0 {
		b.WriteString("\n\nRefs: " + strings.Join(m.Refs, ", "))
	}
	return b.String()
}

// ParseRefs splits a comma- or space-separated list of issue references,
// normalizing bare numbers to #N form.
func ParseRefs(input string) []string {
	fields := strings.FieldsFunc(input, func(r rune) bool {
		return r == ',' || r == ' '
	})
	var refs []string
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		if f[0] >= '0' && f[0] <= '9' {
			f = "#" + f
		}
		refs = append(refs, f)
	}
	return refs
}

// TypeName extracts the bare type from a "name - description" menu entry.
func TypeName(menuEntry string) string {
	return strings.SplitN(menuEntry, " ", 2)[0]
}
