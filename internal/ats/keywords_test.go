package ats

import (
	"strings"
	"testing"

	"atsscore/internal/types"

	"github.com/stretchr/testify/assert"
)

func TestContainsAny(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		terms    []string
		expected bool
	}{
		{"case insensitive", "BUILT a service", ActionVerbs, true},
		{"word prefix", "Designed REST APIs", []string{"api"}, true},
		{"dotted name", "Node.js and Express", []string{"node"}, true},
		{"inside word does not match", "Handled on-call rotations", []string{"led"}, false},
		{"multi word term", "Strong time management", SoftSkillTerms, true},
		{"hyphenated term", "Full-Stack developer", []string{"full-stack"}, true},
		{"empty text", "", ActionVerbs, false},
		{"empty terms", "anything", nil, false},
		{"no match", "Wrote documentation", ActionVerbs, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ContainsAny(tt.text, tt.terms))
		})
	}
}

func TestMatcherCountsDistinctTerms(t *testing.T) {
	m := newMatcher([]string{"react", "node", "api"})
	assert.Equal(t, 0, m.countMatched(""))
	assert.Equal(t, 1, m.countMatched("react react react"))
	assert.Equal(t, 3, m.countMatched("react, node and an api"))
}

func TestKeywordListsAreLowercase(t *testing.T) {
	lists := [][]string{ActionVerbs, ProjectAchievementVerbs, HardSkillTerms, SoftSkillTerms, ToolTerms}
	for _, g := range ATSKeywordGroups {
		lists = append(lists, g.Terms)
	}
	for _, list := range lists {
		for _, term := range list {
			assert.Equal(t, strings.ToLower(term), term)
		}
	}
	assert.Len(t, ActionVerbs, 20)
	assert.Len(t, ATSKeywordGroups, 3)
}

func TestCheckContentLength(t *testing.T) {
	thin := checkContentLength(textOfLength(1199))
	assert.True(t, containsMessage(thin.Warnings, "too thin"))

	optimal := checkContentLength(textOfLength(1200))
	assert.True(t, containsMessage(optimal.Feedback, "optimal"))

	upper := checkContentLength(textOfLength(4500))
	assert.Len(t, upper.Feedback, 1)

	long := checkContentLength(textOfLength(4501))
	assert.True(t, containsMessage(long.Warnings, "too long"))
}

func TestCheckKeywordDensity(t *testing.T) {
	low := checkKeywordDensity("nothing relevant here")
	assert.True(t, containsMessage(low.Warnings, "Low ATS keyword density (0 matched)"))
	assert.Len(t, low.Suggestions, len(ATSKeywordGroups))

	// 9 technical + 1 action term
	fair := checkKeywordDensity("JavaScript React Node MongoDB API HTML CSS Express database, built")
	assert.True(t, containsMessage(fair.Suggestions, "Add more industry keywords"))
	assert.False(t, containsMessage(fair.Suggestions, ATSKeywordGroups[0].Suggestion))
	assert.True(t, containsMessage(fair.Suggestions, ATSKeywordGroups[1].Suggestion))
	assert.True(t, containsMessage(fair.Suggestions, ATSKeywordGroups[2].Suggestion))

	var all []string
	for _, g := range ATSKeywordGroups {
		all = append(all, g.Terms...)
	}
	strong := checkKeywordDensity(strings.Join(all, " "))
	assert.True(t, containsMessage(strong.Feedback, "Strong ATS keyword density (23 keywords matched)"))
	assert.Empty(t, strong.Suggestions)
}

func TestContentTextSerialisesSections(t *testing.T) {
	r := strongResume()
	text := contentText(r)

	assert.True(t, strings.HasPrefix(text, r.Summary))
	assert.Contains(t, text, `"company":"Acme Corp"`)
	assert.Equal(t, text, contentText(strongResume()))

	r.Projects = []types.Project{{Description: "R&D <fast> prototype"}}
	assert.Contains(t, contentText(r), "R&D <fast> prototype")

	assert.Equal(t, "[][][][]", contentText(types.ResumeSnapshot{}))
}
