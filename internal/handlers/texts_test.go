package handlers

import (
	"strings"
	"testing"
)

func TestGreetingEscapesName(t *testing.T) {
	got := helloText("Вася <3")
	if !strings.Contains(got, "Вася &lt;3") {
		t.Fatalf("name must be escaped for HTML mode: %q", got)
	}
	if strings.Contains(got, "Вася <3") {
		t.Fatalf("raw angle bracket leaked into the greeting: %q", got)
	}
	// the message's own markup stays intact
	if !strings.Contains(got, "<b>") {
		t.Fatalf("template markup must survive escaping: %q", got)
	}
}

func TestNiceToMeetEscapesName(t *testing.T) {
	got := niceToMeetText("<script>x</script>")
	if strings.Contains(got, "<script>") {
		t.Fatalf("raw tag leaked into the reply: %q", got)
	}
	if !strings.Contains(got, "&lt;script&gt;x&lt;/script&gt;") {
		t.Fatalf("name must be escaped: %q", got)
	}
}
