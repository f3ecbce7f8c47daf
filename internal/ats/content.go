package ats

import (
	"bytes"
	"encoding/json"
	"strings"
	"unicode/utf8"

	"atsscore/internal/types"
)

// contentText is the text the cross-cutting heuristics scan: the summary
// followed by the JSON form of experience, education, projects and skills.
func contentText(r types.ResumeSnapshot) string {
	var sb strings.Builder
	sb.WriteString(strings.TrimSpace(r.Summary))
	sb.WriteString(serialize(r.Experience))
	sb.WriteString(serialize(r.Education))
	sb.WriteString(serialize(r.Projects))
	sb.WriteString(serialize(r.Skills))
	return sb.String()
}

func serialize[T any](items []T) string {
	if len(items) == 0 {
		return "[]"
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(items); err != nil {
		return "[]"
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

func checkContentLength(text string) Notes {
	var n Notes
	switch length := utf8.RuneCountInString(text); {
	case length < contentMinChars:
		n.warn("Resume content is too thin (%d characters); add more detail to your sections", length)
	case length > contentMaxChars:
		n.warn("Resume content is too long (%d characters); keep only the most relevant points", length)
	default:
		n.good("Resume length is optimal for ATS parsing")
	}
	return n
}

func checkKeywordDensity(text string) Notes {
	var n Notes
	lower := strings.ToLower(text)

	total := 0
	var weak []string
	for i, group := range ATSKeywordGroups {
		matched := keywordGroupMatchers[i].countMatched(lower)
		total += matched
		if matched*2 < len(group.Terms) {
			weak = append(weak, group.Suggestion)
		}
	}

	switch {
	case total >= keywordStrongDensity:
		n.good("Strong ATS keyword density (%d keywords matched)", total)
	case total >= keywordFairDensity:
		n.suggest("Add more industry keywords to improve ATS matching (%d matched)", total)
	default:
		n.warn("Low ATS keyword density (%d matched); mirror the wording of job postings", total)
	}

	for _, s := range weak {
		n.suggest("%s", s)
	}
	return n
}
