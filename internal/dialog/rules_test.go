package dialog

import "testing"

func TestApplyMatchesBySubstring(t *testing.T) {
	rs := DefaultRules()
	conv := NewConversation()

	if err := rs.Apply(conv, "type", "🏷 Товары"); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !conv.Flags["type"] {
		t.Fatal("decorated button text must still match by containment")
	}
}

func TestApplyIgnoresOtherNodes(t *testing.T) {
	rs := DefaultRules()
	conv := NewConversation()

	if err := rs.Apply(conv, "sphere", "Товары"); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if len(conv.Flags) != 0 {
		t.Fatalf("rule bound to another node fired: %v", conv.Flags)
	}
}

func TestApplyFlagsAreMonotonic(t *testing.T) {
	rs := DefaultRules()
	conv := NewConversation()

	if err := rs.Apply(conv, "type", "🏷 Товары"); err != nil {
		t.Fatalf("apply: %v", err)
	}
	// answering again with a non-matching value must not clear the flag
	if err := rs.Apply(conv, "type", "🛠 Услуги"); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !conv.Flags["type"] {
		t.Fatal("an enabled flag must never be cleared")
	}
}

func TestApplyWhenCondition(t *testing.T) {
	rs := RuleSet{
		Rules: []Rule{
			{NodeKey: "type", Match: "Товары", When: `sphere == "Строительство"`, Flag: "type"},
		},
	}

	conv := NewConversation()
	conv.Record(Answer{NodeID: 1, NodeKey: "sphere", Value: "Медицина"})
	if err := rs.Apply(conv, "type", "Товары"); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if conv.Flags["type"] {
		t.Fatal("condition is false, flag must stay off")
	}

	conv = NewConversation()
	conv.Record(Answer{NodeID: 1, NodeKey: "sphere", Value: "Строительство"})
	if err := rs.Apply(conv, "type", "Товары"); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !conv.Flags["type"] {
		t.Fatal("condition is true, flag must be enabled")
	}
}

func TestSuppressed(t *testing.T) {
	rs := DefaultRules()
	conv := NewConversation()

	if rs.Suppressed(conv, "delivery") {
		t.Fatal("no flags enabled, nothing is suppressed")
	}
	conv.Flags["type"] = true
	for _, key := range []string{"delivery", "accounting"} {
		if !rs.Suppressed(conv, key) {
			t.Fatalf("%s must be suppressed by the type flag", key)
		}
	}
	if rs.Suppressed(conv, "billing") {
		t.Fatal("billing is not in the suppression table for type")
	}
}
