// Package dialog implements the branching questionnaire engine: a cursor
// over question nodes advanced by answer events, with answer-driven jumps,
// a declarative skip-rule table and a terminal handoff once the node
// sequence is exhausted.
package dialog

import (
	"strconv"
	"strings"
)

// Answer is one recorded (node, value) pair. Answers are keyed by node id;
// prompt text is joined back in only when the report is compiled.
type Answer struct {
	NodeID  int64
	NodeKey string
	Value   string
}

// Conversation is the per-user questionnaire state. NodeID is the cursor
// (0 before the first question), Flags the monotonic skip flags, PromptID
// the transport handle of the one live question card.
type Conversation struct {
	NodeID   int64
	Answers  []Answer
	Flags    map[string]bool
	PromptID int
}

// NewConversation returns an empty conversation positioned before the
// first question.
func NewConversation() *Conversation {
	return &Conversation{Flags: make(map[string]bool)}
}

// Record appends an answer, replacing any earlier answer for the same node
// (a node revisited via an explicit jump keeps only its latest value).
func (c *Conversation) Record(a Answer) {
	for i := range c.Answers {
		if c.Answers[i].NodeID == a.NodeID {
			c.Answers[i] = a
			return
		}
	}
	c.Answers = append(c.Answers, a)
}

// AnswersByKey returns the collected answers keyed by node key,
// the environment skip-rule expressions are evaluated against.
func (c *Conversation) AnswersByKey() map[string]any {
	env := make(map[string]any, len(c.Answers))
	for _, a := range c.Answers {
		env[a.NodeKey] = a.Value
	}
	return env
}

// Selection is a parsed incoming answer event.
type Selection struct {
	Content string
	Next    int64
	HasNext bool
}

// ParseSelection splits a callback payload of the form
// "<answer content>:<next-node-id>". A missing or non-numeric suffix means
// plain free text with no explicit jump; this never fails.
func ParseSelection(data string) Selection {
	parts := strings.Split(data, ":")
	sel := Selection{Content: parts[0]}
	if len(parts) > 1 {
		if next, err := strconv.ParseInt(parts[len(parts)-1], 10, 64); err == nil {
			sel.Next = next
			sel.HasNext = true
		}
	}
	return sel
}
