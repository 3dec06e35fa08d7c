// redact маскирует персональные данные перед записью в лог.
package redact

import "strings"

// Email оставляет первые два символа локальной части и домен.
func Email(s string) string {
	parts := strings.Split(s, "@")
	if len(parts) != 2 {
		return "***"
	}

	local, domain := []rune(parts[0]), parts[1]
	if len(local) > 2 {
		return string(local[:2]) + "***@" + domain
	}

	return "***@" + domain
}

// Phone оставляет только последние две цифры.
func Phone(s string) string {
	r := []rune(s)
	if len(r) <= 4 {
		return "***"
	}

	return "***" + string(r[len(r)-2:])
}

// Identifier маскирует логин, который может быть как e-mail, так и телефоном.
func Identifier(s string) string {
	if strings.Contains(s, "@") {
		return Email(s)
	}

	return Phone(s)
}

func Token() string    { return "[REDACTED_TOKEN]" }
func Password() string { return "[REDACTED_PASSWORD]" }
