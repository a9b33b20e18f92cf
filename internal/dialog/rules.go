package dialog

import (
	"errors"
	"strings"

	"github.com/expr-lang/expr"
)

// Rule enables a flag when the answer given on NodeKey contains Match.
// When, if set, is an extra boolean expression evaluated against the
// collected answers keyed by node key; the flag is enabled only when it
// holds too.
type Rule struct {
	NodeKey string
	Match   string
	When    string
	Flag    string
}

// RuleSet is the declarative skip table: trigger rules plus a mapping from
// enabled flag to the node keys it suppresses. The indirection lets the
// question ordering change without touching conditional logic inline.
type RuleSet struct {
	Rules        []Rule
	Suppressions map[string][]string
}

// DefaultRules is the skip table of the site questionnaire.
func DefaultRules() RuleSet {
	return RuleSet{
		Rules: []Rule{
			{NodeKey: "type", Match: "Товары", Flag: "type"},
			{NodeKey: "integration", Match: "Нет", Flag: "integration"},
			{NodeKey: "info", Match: "Да", Flag: "info"},
		},
		Suppressions: map[string][]string{
			"type":        {"delivery", "accounting"},
			"integration": {"integration_input"},
			"info":        {"info_no"},
		},
	}
}

// Apply evaluates the trigger rules for one answer event and enables the
// matching flags on the conversation. Flags are monotonic: nothing here
// ever clears one.
func (rs RuleSet) Apply(conv *Conversation, nodeKey, answer string) error {
	if conv.Flags == nil {
		conv.Flags = make(map[string]bool)
	}
	for _, r := range rs.Rules {
		if r.NodeKey != nodeKey || !strings.Contains(answer, r.Match) {
			continue
		}
		if r.When != "" {
			ok, err := evalCondition(r.When, conv.AnswersByKey())
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
		}
		conv.Flags[r.Flag] = true
	}
	return nil
}

// Suppressed reports whether a node key is skipped given the enabled flags.
func (rs RuleSet) Suppressed(conv *Conversation, nodeKey string) bool {
	for flag, keys := range rs.Suppressions {
		if !conv.Flags[flag] {
			continue
		}
		for _, k := range keys {
			if k == nodeKey {
				return true
			}
		}
	}
	return false
}

func evalCondition(expression string, env map[string]any) (bool, error) {
	program, err := expr.Compile(expression, expr.Env(env), expr.AsBool())
	if err != nil {
		return false, err
	}
	out, err := expr.Run(program, env)
	if err != nil {
		return false, err
	}
	result, ok := out.(bool)
	if !ok {
		return false, errors.New("condition did not return a boolean")
	}
	return result, nil
}
