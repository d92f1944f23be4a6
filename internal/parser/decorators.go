package parser

import "strings"

// decorators lists every decorator application with the element it decorates
func (t *toolkit) decorators() []DecoratorInfo {
	out := []DecoratorInfo{}
	for i := 0; i < t.lines.Len(); i++ {
		if !strings.HasPrefix(t.lines.Trimmed(i), "@") {
			continue
		}
		d, rest, ok := t.parseDecoratorAt(i)
		if !ok {
			continue
		}
		info := DecoratorInfo{Name: d.name, Args: d.args, Line: i + 1}
		target := rest
		if target == "" {
			target = t.decoratedLine(d.end)
		}
		info.TargetKind, info.TargetName = classifyDecoratorTarget(target)
		out = append(out, info)
		i = d.end
	}
	return out
}

// decoratedLine returns the first line after `after` that is not itself a decorator
func (t *toolkit) decoratedLine(after int) string {
	j := after
	for {
		next := t.lines.NextNonBlank(j)
		if next < 0 {
			return ""
		}
		if !strings.HasPrefix(t.lines.Trimmed(next), "@") {
			return t.lines.At(next)
		}
		d, rest, ok := t.parseDecoratorAt(next)
		if !ok {
			return ""
		}
		if rest != "" {
			return rest
		}
		j = d.end
	}
}

func classifyDecoratorTarget(text string) (string, string) {
	if m := classHeaderRe.FindStringSubmatch(text); m != nil {
		return "class", m[2]
	}
	if m := methodMemberRe.FindStringSubmatch(text); m != nil && !ReservedWords[m[3]] {
		if m[3] == "constructor" {
			return FunctionConstructor, m[3]
		}
		return FunctionMethod, m[3]
	}
	if m := propertyRe.FindStringSubmatch(text); m != nil {
		return "property", m[2]
	}
	return "", ""
}
