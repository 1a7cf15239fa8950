package contact

import (
	"net/url"
	"strings"
)

// NamePlaceholder stands in for an empty name in the mail subject.
const NamePlaceholder = "（お名前未入力）"

// Mailto builds the fallback mailto link mirroring the current field values.
func Mailto(to, name, email, message string) string {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	message = strings.TrimSpace(message)

	subjectName := name
	if subjectName == "" {
		subjectName = NamePlaceholder
	}
	subject := "【ポートフォリオ】連絡：" + subjectName
	body := strings.Join([]string{
		"お名前：" + name,
		"メール：" + email,
		"",
		message,
	}, "\n")

	return "mailto:" + escapeComponent(to) +
		"?subject=" + escapeComponent(subject) +
		"&body=" + escapeComponent(body)
}

// escapeComponent percent-encodes s for a mailto header value. Spaces become
// %20 since mail clients do not decode "+".
func escapeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
