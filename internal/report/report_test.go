package report

import (
	"strings"
	"testing"
)

func TestCompileFullLead(t *testing.T) {
	lead := Lead{
		Username: "ivan_dev",
		Name:     "Иван",
		Entries: []Entry{
			{Prompt: "🧭 В какой сфере Вы работаете?", Value: "🏗 Строительство"},
			{Prompt: "🏷 Вы продаёте товары или услуги?", Value: "🏷 Товары"},
		},
		Phone: "+79991234567",
	}

	got := Compile(lead)

	if !strings.HasPrefix(got, "#заявка\n") {
		t.Fatalf("report must open with the lead hashtag, got %q", got)
	}
	if !strings.Contains(got, "Пользователь: @ivan_dev Иван\n") {
		t.Fatalf("user line missing: %q", got)
	}
	if !strings.Contains(got, "<b>🧭 В какой сфере Вы работаете?</b>\n - 🏗 Строительство\n") {
		t.Fatalf("first entry missing: %q", got)
	}
	if !strings.Contains(got, `<b>Телефон</b>`+"\n"+` - <a href="tel:+79991234567">+79991234567</a>`) {
		t.Fatalf("phone link missing: %q", got)
	}
}

func TestCompileWithoutUsername(t *testing.T) {
	got := Compile(Lead{Name: "Мария", Phone: "+70000000000"})
	if !strings.Contains(got, "Пользователь: Мария\n") {
		t.Fatalf("user line must carry the name alone: %q", got)
	}
	if strings.Contains(got, "@") {
		t.Fatalf("no handle means no @ marker: %q", got)
	}
}

func TestCompileEscapesUserText(t *testing.T) {
	got := Compile(Lead{
		Name: "Вася <3",
		Entries: []Entry{
			{Prompt: "🧭 В какой сфере Вы работаете?", Value: "стройка <и> ремонт"},
		},
		Phone: "8999<b>123",
	})

	if strings.Contains(got, "Вася <3") || !strings.Contains(got, "Вася &lt;3") {
		t.Fatalf("name must be escaped: %q", got)
	}
	if strings.Contains(got, "<и>") || !strings.Contains(got, "стройка &lt;и&gt; ремонт") {
		t.Fatalf("answer must be escaped: %q", got)
	}
	if strings.Contains(got, "tel:+8999<b>123") {
		t.Fatalf("raw markup leaked into the tel link: %q", got)
	}
	if !strings.Contains(got, `<a href="tel:+8999&lt;b&gt;123">+8999&lt;b&gt;123</a>`) {
		t.Fatalf("phone must be escaped in both link and text: %q", got)
	}
	// the report's own markup stays intact
	if !strings.Contains(got, "<b>🧭 В какой сфере Вы работаете?</b>") {
		t.Fatalf("prompt markup must survive: %q", got)
	}
}

func TestCompileKeepsFreeTextPhoneVerbatim(t *testing.T) {
	// typed numbers are accepted as-is, only the plus prefix is normalized
	got := Compile(Lead{Name: "Пётр", Phone: "89991234567"})
	if !strings.Contains(got, `<a href="tel:+89991234567">+89991234567</a>`) {
		t.Fatalf("free text phone must pass through unvalidated: %q", got)
	}
}
