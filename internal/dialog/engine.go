package dialog

import (
	"context"
	"errors"

	"github.com/siteit/leadbot/internal/models"
	"github.com/siteit/leadbot/pkg/fault"
)

// NodeSource supplies questionnaire nodes. A fault.ErrNotFound from any
// lookup is the designed terminal signal, not an error.
type NodeSource interface {
	Node(ctx context.Context, id int64) (*models.Question, error)
	First(ctx context.Context) (*models.Question, error)
	NextAfter(ctx context.Context, id int64) (*models.Question, error)
}

// Outcome is the result of one engine step: either the next node to
// render, or Terminal once the sequence is exhausted and the conversation
// must hand off to contact collection.
type Outcome struct {
	Node     *models.Question
	Terminal bool
}

// Engine drives one question at a time over a NodeSource, applying the
// skip-rule table on every answer event. It holds no per-user state of
// its own; callers own the Conversation.
type Engine struct {
	nodes NodeSource
	rules RuleSet
}

func NewEngine(nodes NodeSource, rules RuleSet) *Engine {
	return &Engine{nodes: nodes, rules: rules}
}

// Advance consumes one user input event and moves the conversation cursor.
//
// The input is either free text (literal answer, no jump) or a selection
// payload "<content>:<next-node-id>". When the conversation has a current
// node the answer is recorded against it and the skip rules are evaluated;
// then the cursor moves to the explicit jump target if one was encoded,
// or to the next node in id order. Nodes suppressed by enabled flags are
// stepped over. A missing node is the terminal transition to the phone
// stage, never an error.
func (e *Engine) Advance(ctx context.Context, conv *Conversation, input string) (Outcome, error) {
	sel := ParseSelection(input)

	if conv.NodeID != 0 {
		key := ""
		node, err := e.nodes.Node(ctx, conv.NodeID)
		switch {
		case err == nil:
			key = node.Key
		case !errors.Is(err, fault.ErrNotFound):
			return Outcome{}, err
		}
		conv.Record(Answer{NodeID: conv.NodeID, NodeKey: key, Value: sel.Content})
		if err := e.rules.Apply(conv, key, sel.Content); err != nil {
			return Outcome{}, err
		}
	}

	var (
		cand *models.Question
		err  error
	)
	switch {
	case sel.HasNext:
		cand, err = e.nodes.Node(ctx, sel.Next)
	case conv.NodeID == 0:
		cand, err = e.nodes.First(ctx)
	default:
		cand, err = e.nodes.NextAfter(ctx, conv.NodeID)
	}

	for err == nil && e.rules.Suppressed(conv, cand.Key) {
		cand, err = e.nodes.NextAfter(ctx, cand.ID)
	}

	if errors.Is(err, fault.ErrNotFound) {
		return Outcome{Terminal: true}, nil
	}
	if err != nil {
		return Outcome{}, err
	}

	conv.NodeID = cand.ID
	return Outcome{Node: cand}, nil
}
