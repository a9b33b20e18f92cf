// Package report compiles the collected questionnaire answers into the
// lead text delivered to the sales groups.
package report

import (
	"fmt"
	"html"
	"strings"
)

// Entry is one (question prompt, answer) pair in presentation order.
type Entry struct {
	Prompt string
	Value  string
}

// Lead is everything the compiled report carries.
type Lead struct {
	Username string // telegram handle, may be empty
	Name     string // name collected at the greeting stage
	Entries  []Entry
	Phone    string // accepted verbatim, no validation
}

// Compile renders the lead report in HTML parse mode. All user-supplied
// text is escaped so a stray angle bracket cannot break message parsing.
// The phone number is emitted as a tel: link so managers can dial it in
// one tap.
func Compile(lead Lead) string {
	var b strings.Builder
	b.WriteString("#заявка\nПользователь: ")
	if lead.Username != "" {
		b.WriteString("@" + html.EscapeString(lead.Username) + " ")
	}
	b.WriteString(html.EscapeString(lead.Name))
	b.WriteString("\n\n")
	for _, e := range lead.Entries {
		fmt.Fprintf(&b, "<b>%s</b>\n - %s\n\n",
			html.EscapeString(e.Prompt), html.EscapeString(e.Value))
	}
	phone := html.EscapeString(strings.TrimPrefix(lead.Phone, "+"))
	fmt.Fprintf(&b, "<b>Телефон</b>\n - <a href=\"tel:+%s\">+%s</a>\n", phone, phone)
	return b.String()
}
