package mail

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// maxConditionalPasses bounds the inside-out resolution of nested {{#if}}
// blocks so malformed templates with unbalanced tags cannot loop forever.
const maxConditionalPasses = 10

var (
	ifElseRe   = regexp.MustCompile(`(?s)\{\{#if ([A-Za-z_][A-Za-z0-9_]*)\}\}(.*?)\{\{else\}\}(.*?)\{\{/if\}\}`)
	strayIfRe  = regexp.MustCompile(`\{\{#if [A-Za-z_][A-Za-z0-9_]*\}\}`)
	strayEndRe = regexp.MustCompile(`\{\{/if\}\}`)
	strayElsRe = regexp.MustCompile(`\{\{else\}\}`)
)

// Render substitutes {{var}} placeholders and resolves {{#if var}} blocks in
// template. It is pure and never fails: unknown {{x}} tokens survive pass 1
// untouched, missing conditional variables read as falsy, and any stray
// conditional tags are stripped at the end.
func Render(template string, vars map[string]any) string {
	out := template

	// Pass 1: literal substitution of known variables.
	for k, v := range vars {
		out = strings.ReplaceAll(out, "{{"+k+"}}", Stringify(v))
	}

	// Pass 2: {{#if v}}A{{else}}B{{/if}}, non-greedy up to the nearest tags.
	out = ifElseRe.ReplaceAllStringFunc(out, func(m string) string {
		sub := ifElseRe.FindStringSubmatch(m)
		if truthy(vars[sub[1]]) {
			return sub[2]
		}
		return sub[3]
	})

	// Pass 3: plain {{#if v}}C{{/if}}, innermost blocks first so nesting
	// resolves from the inside out.
	for pass := 0; pass < maxConditionalPasses; pass++ {
		next, changed := resolveInnermostConditionals(out, vars)
		out = next
		if !changed {
			break
		}
	}

	// Pass 4: defensive cleanup so no raw syntax leaks into output.
	out = strayIfRe.ReplaceAllString(out, "")
	out = strayEndRe.ReplaceAllString(out, "")
	out = strayElsRe.ReplaceAllString(out, "")

	return out
}

// resolveInnermostConditionals performs one left-to-right sweep. A block is
// innermost when no other {{#if opens between its opening tag and its
// {{/if}}, which is exactly the last "{{#if " preceding each "{{/if}}".
func resolveInnermostConditionals(s string, vars map[string]any) (string, bool) {
	const openTag = "{{#if "
	const closeTag = "{{/if}}"

	changed := false
	searchFrom := 0
	for {
		closeIdx := strings.Index(s[searchFrom:], closeTag)
		if closeIdx < 0 {
			break
		}
		closeIdx += searchFrom

		openIdx := strings.LastIndex(s[:closeIdx], openTag)
		if openIdx < 0 {
			// Stray {{/if}} with no opener; leave it for the cleanup pass.
			searchFrom = closeIdx + len(closeTag)
			continue
		}

		nameEnd := strings.Index(s[openIdx:closeIdx], "}}")
		if nameEnd < 0 {
			searchFrom = closeIdx + len(closeTag)
			continue
		}
		name := s[openIdx+len(openTag) : openIdx+nameEnd]
		content := s[openIdx+nameEnd+2 : closeIdx]

		replacement := ""
		if truthy(vars[name]) {
			replacement = content
		}
		s = s[:openIdx] + replacement + s[closeIdx+len(closeTag):]
		changed = true
		searchFrom = openIdx
	}
	return s, changed
}

// Stringify renders a template variable value as text. nil reads as empty,
// lists join with commas, maps pretty-print as JSON.
func Stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []string:
		return strings.Join(val, ", ")
	case []any:
		parts := make([]string, len(val))
		for i, item := range val {
			parts[i] = Stringify(item)
		}
		return strings.Join(parts, ", ")
	case map[string]any:
		b, err := json.MarshalIndent(val, "", "  ")
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(b)
	default:
		return fmt.Sprintf("%v", val)
	}
}

func truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case string:
		return val != ""
	case bool:
		return val
	case int:
		return val != 0
	case int64:
		return val != 0
	case float64:
		return val != 0
	default:
		return true
	}
}
