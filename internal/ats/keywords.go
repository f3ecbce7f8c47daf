package ats

import (
	"regexp"
	"strings"
)

// ActionVerbs are the verbs that mark an experience bullet as achievement oriented.
var ActionVerbs = []string{
	"built", "developed", "created", "designed", "implemented",
	"optimized", "reduced", "increased", "improved", "led",
	"managed", "achieved", "delivered", "launched", "integrated",
	"automated", "streamlined", "enhanced", "collaborated", "spearheaded",
}

// ProjectAchievementVerbs are checked against project descriptions.
var ProjectAchievementVerbs = []string{
	"built", "developed", "created", "integrated", "implemented",
	"optimized", "reduced", "increased", "designed",
}

// HardSkillTerms are technical skills expected in the skills section.
var HardSkillTerms = []string{
	"react", "node", "javascript", "python", "java", "mongodb",
	"sql", "html", "css", "express", "api",
}

// SoftSkillTerms are interpersonal skills expected in the skills section.
var SoftSkillTerms = []string{
	"communication", "teamwork", "problem", "leadership",
	"collaboration", "time management",
}

// ToolTerms are developer tools expected in the skills section.
var ToolTerms = []string{
	"git", "github", "vscode", "postman", "docker", "aws", "vercel", "render",
}

// KeywordGroup is a named keyword list used by the density heuristic.
// Suggestion is emitted when fewer than half of Terms appear.
type KeywordGroup struct {
	Name       string
	Terms      []string
	Suggestion string
}

// ATSKeywordGroups drive the keyword density check, in evaluation order.
var ATSKeywordGroups = []KeywordGroup{
	{
		Name:       "technical",
		Terms:      []string{"javascript", "react", "node", "mongodb", "api", "html", "css", "express", "database"},
		Suggestion: "Mention more technical keywords (JavaScript, React, Node, APIs, databases) from the roles you target",
	},
	{
		Name:       "action",
		Terms:      []string{"built", "developed", "created", "designed", "implemented", "optimized", "reduced", "increased"},
		Suggestion: "Use more action verbs like built, developed, implemented and optimized",
	},
	{
		Name:       "competencies",
		Terms:      []string{"full-stack", "responsive", "authentication", "deployment", "crud", "integration"},
		Suggestion: "Highlight competencies such as full-stack development, authentication and deployment",
	},
}

// matcher tests free text against a keyword list. A term matches when it
// starts at a word boundary, ignoring case, so "apis" matches "api" while
// "called" does not match "led".
type matcher struct {
	anyOf *regexp.Regexp
	terms []*regexp.Regexp
}

func newMatcher(terms []string) *matcher {
	m := &matcher{terms: make([]*regexp.Regexp, len(terms))}
	quoted := make([]string, len(terms))
	for i, term := range terms {
		quoted[i] = regexp.QuoteMeta(strings.ToLower(term))
		m.terms[i] = regexp.MustCompile(`(?i)\b` + quoted[i])
	}
	m.anyOf = regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)`)
	return m
}

// matchesAny reports whether any term occurs in text.
func (m *matcher) matchesAny(text string) bool {
	if text == "" || len(m.terms) == 0 {
		return false
	}
	return m.anyOf.MatchString(text)
}

// countMatched returns how many distinct terms occur in text.
func (m *matcher) countMatched(text string) int {
	if text == "" {
		return 0
	}
	n := 0
	for _, re := range m.terms {
		if re.MatchString(text) {
			n++
		}
	}
	return n
}

var (
	actionVerbMatcher         = newMatcher(ActionVerbs)
	projectAchievementMatcher = newMatcher(ProjectAchievementVerbs)
	hardSkillMatcher          = newMatcher(HardSkillTerms)
	softSkillMatcher          = newMatcher(SoftSkillTerms)
	toolMatcher               = newMatcher(ToolTerms)
	keywordGroupMatchers      = buildGroupMatchers(ATSKeywordGroups)
)

func buildGroupMatchers(groups []KeywordGroup) []*matcher {
	out := make([]*matcher, len(groups))
	for i, g := range groups {
		out[i] = newMatcher(g.Terms)
	}
	return out
}

// ContainsAny reports whether text contains any of terms, case-insensitively,
// with each term anchored at a word start.
func ContainsAny(text string, terms []string) bool {
	return newMatcher(terms).matchesAny(text)
}

// hasMetric reports whether text carries a number, percentage or amount.
func hasMetric(text string, symbols string) bool {
	return strings.ContainsAny(text, "0123456789"+symbols)
}
