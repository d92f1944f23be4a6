package parser

import (
	"regexp"
	"strings"
)

var identRe = regexp.MustCompile(`^#?[A-Za-z_$][\w$]*$`)

// isIdentifier reports whether name is a valid identifier, allowing a leading # for private names
func isIdentifier(name string) bool {
	return identRe.MatchString(name)
}

// splitTopLevel splits s on sep where sep is not nested inside (), {}, [], <> or a quoted string
func splitTopLevel(s string, sep byte) []string {
	var parts []string
	depth := 0
	start := 0
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"', '`':
			quote = c
		case '(', '{', '[', '<':
			depth++
		case ')', '}', ']':
			depth--
		case '>':
			// arrow tokens are not closers
			if i > 0 && s[i-1] == '=' {
				continue
			}
			depth--
		case sep:
			if sep == '=' && isOperatorEquals(s, i) {
				continue
			}
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, s[start:])
	return parts
}

// isOperatorEquals reports whether the = at i belongs to =>, ==, != or a comparison
func isOperatorEquals(s string, i int) bool {
	if i+1 < len(s) && (s[i+1] == '>' || s[i+1] == '=') {
		return true
	}
	if i > 0 && strings.IndexByte("=!<>", s[i-1]) >= 0 {
		return true
	}
	return false
}

// indexTopLevel returns the index of the first top-level occurrence of c in s, or -1
func indexTopLevel(s string, c byte) int {
	parts := splitTopLevel(s, c)
	if len(parts) < 2 {
		return -1
	}
	return len(parts[0])
}

// parseParameters parses the text between a parameter list's parentheses
func parseParameters(text string, typed bool) []Parameter {
	params := []Parameter{}
	if strings.TrimSpace(text) == "" {
		return params
	}
	for _, raw := range splitTopLevel(text, ',') {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		params = append(params, parseParameter(raw, typed))
	}
	return params
}

func parseParameter(raw string, typed bool) Parameter {
	var p Parameter

	if typed {
		raw = stripParamModifiers(raw)
	}
	if i := indexTopLevel(raw, '='); i >= 0 {
		p.DefaultValue = strings.TrimSpace(raw[i+1:])
		p.Optional = true
		raw = strings.TrimSpace(raw[:i])
	}
	if strings.HasPrefix(raw, "...") {
		p.Rest = true
		raw = strings.TrimSpace(raw[3:])
	}
	if strings.HasPrefix(raw, "{") || strings.HasPrefix(raw, "[") {
		p.Destructured = true
	}

	name := raw
	if i := indexTopLevel(raw, ':'); i >= 0 {
		name = strings.TrimSpace(raw[:i])
		if typed {
			p.Type = strings.TrimSpace(raw[i+1:])
		}
	}
	if strings.HasSuffix(name, "?") {
		p.Optional = true
		name = strings.TrimSpace(strings.TrimSuffix(name, "?"))
	}
	p.Name = name
	return p
}

// stripParamModifiers removes constructor parameter-property modifiers
func stripParamModifiers(raw string) string {
	for {
		fields := strings.Fields(raw)
		if len(fields) < 2 {
			return raw
		}
		switch fields[0] {
		case "public", "private", "protected", "readonly", "override":
			raw = strings.TrimSpace(strings.TrimPrefix(raw, fields[0]))
		default:
			return raw
		}
	}
}

// matchingParen returns the index of the paren closing the one at open, or -1
func matchingParen(s string, open int) int {
	depth := 0
	var quote byte
	for i := open; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"', '`':
			quote = c
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// splitReturnType reads an optional `: Type` annotation at the start of rest and
// returns the type text and what follows it (`{`, `=>` or `;`)
func splitReturnType(rest string) (string, string) {
	rest = strings.TrimSpace(rest)
	if !strings.HasPrefix(rest, ":") {
		return "", rest
	}
	rest = rest[1:]
	depth := 0
	for i := 0; i < len(rest); i++ {
		switch rest[i] {
		case '(', '[', '<':
			depth++
		case ')', ']':
			depth--
		case '>':
			arrow := i > 0 && rest[i-1] == '='
			if arrow && depth == 0 {
				return strings.TrimSpace(rest[:i-1]), strings.TrimSpace(rest[i-1:])
			}
			if !arrow {
				depth--
			}
		case '{':
			if depth == 0 && strings.TrimSpace(rest[:i]) != "" {
				return strings.TrimSpace(rest[:i]), strings.TrimSpace(rest[i:])
			}
			depth++
		case '}':
			depth--
		case ';':
			if depth == 0 {
				return strings.TrimSpace(rest[:i]), strings.TrimSpace(rest[i:])
			}
		}
	}
	return strings.TrimSpace(rest), ""
}
