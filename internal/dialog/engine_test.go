package dialog

import (
	"context"
	"testing"

	"github.com/siteit/leadbot/internal/models"
	"github.com/siteit/leadbot/pkg/fault"
)

// fakeNodes serves questions from a slice ordered by ascending id.
type fakeNodes struct {
	list []*models.Question
}

func (f *fakeNodes) Node(_ context.Context, id int64) (*models.Question, error) {
	for _, q := range f.list {
		if q.ID == id {
			return q, nil
		}
	}
	return nil, fault.ErrNotFound
}

func (f *fakeNodes) First(_ context.Context) (*models.Question, error) {
	if len(f.list) == 0 {
		return nil, fault.ErrNotFound
	}
	return f.list[0], nil
}

func (f *fakeNodes) NextAfter(_ context.Context, id int64) (*models.Question, error) {
	for _, q := range f.list {
		if q.ID > id {
			return q, nil
		}
	}
	return nil, fault.ErrNotFound
}

func questionnaireNodes() *fakeNodes {
	keys := []string{
		"sphere", "type", "which_site", "example", "delivery",
		"accounting", "billing", "integration", "integration_input",
		"info", "info_no",
	}
	nodes := make([]*models.Question, 0, len(keys))
	for i, key := range keys {
		nodes = append(nodes, &models.Question{ID: int64(i + 1), Key: key})
	}
	return &fakeNodes{list: nodes}
}

func newTestEngine() *Engine {
	return NewEngine(questionnaireNodes(), DefaultRules())
}

func TestAdvanceStartsAtFirstNode(t *testing.T) {
	eng := newTestEngine()
	conv := NewConversation()

	out, err := eng.Advance(context.Background(), conv, "")
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if out.Terminal {
		t.Fatal("fresh conversation must not be terminal")
	}
	if out.Node.Key != "sphere" {
		t.Fatalf("first node = %s, expected sphere", out.Node.Key)
	}
	if len(conv.Answers) != 0 {
		t.Fatalf("start event must record no answer, got %d", len(conv.Answers))
	}
	if conv.NodeID != 1 {
		t.Fatalf("cursor = %d, expected 1", conv.NodeID)
	}
}

func TestAdvanceSequentialRecordsAnswer(t *testing.T) {
	eng := newTestEngine()
	conv := NewConversation()
	ctx := context.Background()

	if _, err := eng.Advance(ctx, conv, ""); err != nil {
		t.Fatalf("start: %v", err)
	}
	out, err := eng.Advance(ctx, conv, "🏗 Строительство")
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if out.Node.Key != "type" {
		t.Fatalf("node = %s, expected type", out.Node.Key)
	}
	if len(conv.Answers) != 1 {
		t.Fatalf("answers = %d, expected 1", len(conv.Answers))
	}
	a := conv.Answers[0]
	if a.NodeID != 1 || a.NodeKey != "sphere" || a.Value != "🏗 Строительство" {
		t.Fatalf("unexpected recorded answer: %+v", a)
	}
}

func TestAdvanceGoodsAnswerSkipsDeliveryAndAccounting(t *testing.T) {
	eng := newTestEngine()
	conv := NewConversation()
	ctx := context.Background()

	steps := []struct {
		input   string
		wantKey string
	}{
		{"", "sphere"},
		{"🏗 Строительство", "type"},
		{"🏷 Товары", "which_site"},
		{"🛒 Интернет-магазин", "example"},
		// delivery and accounting are gated behind the goods flag
		{"example.com", "billing"},
	}
	for i, step := range steps {
		out, err := eng.Advance(ctx, conv, step.input)
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if out.Terminal {
			t.Fatalf("step %d: unexpected terminal", i)
		}
		if out.Node.Key != step.wantKey {
			t.Fatalf("step %d: node = %s, expected %s", i, out.Node.Key, step.wantKey)
		}
	}
	if !conv.Flags["type"] {
		t.Fatal("goods answer must enable the type flag")
	}
}

func TestAdvanceExplicitJumpOverridesOrder(t *testing.T) {
	eng := newTestEngine()
	conv := NewConversation()
	conv.NodeID = 8 // integration

	out, err := eng.Advance(context.Background(), conv, "✅ Да:9")
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if out.Node.Key != "integration_input" {
		t.Fatalf("node = %s, expected integration_input", out.Node.Key)
	}
}

func TestAdvanceNoAnswerSkipsIntegrationInput(t *testing.T) {
	eng := newTestEngine()
	conv := NewConversation()
	conv.NodeID = 8 // integration

	out, err := eng.Advance(context.Background(), conv, "❌ Нет:10")
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if out.Node.Key != "info" {
		t.Fatalf("node = %s, expected info", out.Node.Key)
	}
	if !conv.Flags["integration"] {
		t.Fatal("negative integration answer must enable its flag")
	}
}

func TestAdvanceJumpToSuppressedNodeStepsOver(t *testing.T) {
	eng := newTestEngine()
	conv := NewConversation()
	conv.NodeID = 8
	conv.Flags["integration"] = true

	// explicit jump lands on integration_input, which the flag suppresses
	out, err := eng.Advance(context.Background(), conv, "✅ Да:9")
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if out.Node.Key != "info" {
		t.Fatalf("node = %s, expected info past the suppressed node", out.Node.Key)
	}
}

func TestAdvanceInfoYesEndsSequence(t *testing.T) {
	eng := newTestEngine()
	conv := NewConversation()
	conv.NodeID = 10 // info, last node before info_no

	out, err := eng.Advance(context.Background(), conv, "👍 Да")
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if !out.Terminal {
		t.Fatal("positive info answer suppresses info_no and must end the sequence")
	}
}

func TestAdvanceTerminalAfterLastNode(t *testing.T) {
	eng := newTestEngine()
	conv := NewConversation()
	conv.NodeID = 11

	out, err := eng.Advance(context.Background(), conv, "текст пожеланий")
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if !out.Terminal {
		t.Fatal("advance past the last node must be terminal")
	}
	if out.Node != nil {
		t.Fatal("terminal outcome must carry no node")
	}
}

func TestRecordReplacesAnswerOnRevisit(t *testing.T) {
	conv := NewConversation()
	conv.Record(Answer{NodeID: 2, NodeKey: "type", Value: "🏷 Товары"})
	conv.Record(Answer{NodeID: 3, NodeKey: "which_site", Value: "Лендинг"})
	conv.Record(Answer{NodeID: 2, NodeKey: "type", Value: "🛠 Услуги"})

	if len(conv.Answers) != 2 {
		t.Fatalf("answers = %d, expected 2", len(conv.Answers))
	}
	if conv.Answers[0].Value != "🛠 Услуги" {
		t.Fatalf("revisited answer = %s, expected the latest value", conv.Answers[0].Value)
	}
}

func TestParseSelection(t *testing.T) {
	cases := []struct {
		in      string
		content string
		next    int64
		hasNext bool
	}{
		{"🏷 Товары:5", "🏷 Товары", 5, true},
		{"просто текст", "просто текст", 0, false},
		{"ответ:не число", "ответ", 0, false},
		{"a:b:7", "a", 7, true},
		{"", "", 0, false},
	}
	for _, tc := range cases {
		sel := ParseSelection(tc.in)
		if sel.Content != tc.content || sel.Next != tc.next || sel.HasNext != tc.hasNext {
			t.Fatalf("ParseSelection(%q) = %+v", tc.in, sel)
		}
	}
}
