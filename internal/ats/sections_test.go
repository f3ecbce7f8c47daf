package ats

import (
	"strings"
	"testing"

	"atsscore/internal/types"

	"github.com/stretchr/testify/assert"
)

func TestScoreContact(t *testing.T) {
	tests := []struct {
		name       string
		info       types.PersonalInfo
		points     int
		criticals  int
		warnings   int
		isComplete bool
	}{
		{"complete", fullContact(), 10, 0, 0, true},
		{"no location", types.PersonalInfo{Email: "a@b.co", Phone: "1"}, 7, 0, 1, false},
		{"email only", types.PersonalInfo{Email: "a@b.co"}, 4, 1, 1, false},
		{"blank values", types.PersonalInfo{Email: "  ", Phone: "\t", Location: ""}, 0, 2, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := scoreContact(tt.info)
			assert.Equal(t, tt.points, res.points)
			assert.Len(t, res.notes.CriticalIssues, tt.criticals)
			assert.Len(t, res.notes.Warnings, tt.warnings)
			assert.Equal(t, tt.isComplete, containsMessage(res.notes.Feedback, "complete"))
		})
	}
}

func TestScoreSummary(t *testing.T) {
	tests := []struct {
		name    string
		summary string
		points  int
		check   func(t *testing.T, n Notes)
	}{
		{"absent", "", 0, func(t *testing.T, n Notes) {
			assert.True(t, containsMessage(n.CriticalIssues, "summary"))
		}},
		{"whitespace only", "   \n ", 0, func(t *testing.T, n Notes) {
			assert.Len(t, n.CriticalIssues, 1)
		}},
		{"very short", textOfLength(10), 3, func(t *testing.T, n Notes) {
			assert.True(t, containsMessage(n.Warnings, "too short"))
		}},
		{"just below short bound", textOfLength(49), 3, nil},
		{"short bound", textOfLength(50), 6, func(t *testing.T, n Notes) {
			assert.True(t, containsMessage(n.Suggestions, "Expand"))
		}},
		{"just below optimal", textOfLength(149), 6, nil},
		{"optimal lower bound", textOfLength(150), 10, func(t *testing.T, n Notes) {
			assert.True(t, containsMessage(n.Feedback, "optimal"))
		}},
		{"optimal upper bound", textOfLength(300), 10, nil},
		{"too long", textOfLength(301), 6, func(t *testing.T, n Notes) {
			assert.True(t, containsMessage(n.Suggestions, "Condense"))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := scoreSummary(tt.summary)
			assert.Equal(t, tt.points, res.points)
			if tt.check != nil {
				tt.check(t, res.notes)
			}
		})
	}
}

func TestScoreSummaryCountsCharactersNotBytes(t *testing.T) {
	summary := strings.Repeat("é", 150)
	assert.Equal(t, 10, scoreSummary(summary).points)
}

func TestScoreExperience(t *testing.T) {
	withBullets := func(bullets ...string) types.Experience {
		return types.Experience{Company: "Acme", Description: bullets}
	}

	tests := []struct {
		name    string
		entries []types.Experience
		points  int
		check   func(t *testing.T, n Notes)
	}{
		{
			name:    "empty is a warning only",
			entries: nil,
			points:  0,
			check: func(t *testing.T, n Notes) {
				assert.Empty(t, n.CriticalIssues)
				assert.Len(t, n.Warnings, 1)
				assert.Empty(t, n.Feedback)
			},
		},
		{
			name:    "single entry without bullets",
			entries: []types.Experience{{Company: "Acme", Position: "Dev"}},
			points:  7,
			check: func(t *testing.T, n Notes) {
				assert.True(t, containsMessage(n.CriticalIssues, "bullet points"))
				assert.True(t, containsMessage(n.Warnings, "action verbs"))
				assert.True(t, containsMessage(n.Warnings, "metrics"))
			},
		},
		{
			name:    "blank bullets do not count",
			entries: []types.Experience{withBullets("", "   ")},
			points:  7,
			check: func(t *testing.T, n Notes) {
				assert.True(t, containsMessage(n.CriticalIssues, "bullet points"))
			},
		},
		{
			name:    "two entries with sparse bullets",
			entries: []types.Experience{withBullets("Built a payments API"), withBullets("Wrote docs", "Fixed bugs")},
			points:  20,
			check: func(t *testing.T, n Notes) {
				assert.True(t, containsMessage(n.Suggestions, "1.5 on average"))
				assert.True(t, containsMessage(n.Feedback, "strong action verbs"))
				assert.True(t, containsMessage(n.Warnings, "metrics"))
			},
		},
		{
			name:    "dollar sign counts as a metric",
			entries: []types.Experience{withBullets("Saved $ on hosting", "Handled support", "Owned releases")},
			points:  25,
			check: func(t *testing.T, n Notes) {
				assert.True(t, containsMessage(n.Feedback, "quantifiable"))
				assert.True(t, containsMessage(n.Warnings, "action verbs"))
			},
		},
		{
			name:    "full marks",
			entries: strongExperience(),
			points:  30,
			check: func(t *testing.T, n Notes) {
				assert.Empty(t, n.Warnings)
				assert.Empty(t, n.Suggestions)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := scoreExperience(tt.entries)
			assert.Equal(t, tt.points, res.points)
			assert.LessOrEqual(t, res.points, MaxExperiencePoints)
			if tt.check != nil {
				tt.check(t, res.notes)
			}
		})
	}
}

func TestScoreEducation(t *testing.T) {
	assert.Equal(t, 0, scoreEducation(nil).points)
	assert.Len(t, scoreEducation(nil).notes.CriticalIssues, 1)

	noGPA := scoreEducation([]types.Education{{Degree: "BSc"}})
	assert.Equal(t, 10, noGPA.points)
	assert.Empty(t, noGPA.notes.CriticalIssues)

	withGPA := scoreEducation([]types.Education{{Degree: "BSc"}, {Degree: "MSc", GPA: "3.9"}, {GPA: "4.0"}})
	assert.Equal(t, 12, withGPA.points)
	assert.True(t, containsMessage(withGPA.notes.Feedback, "GPA"))
}

func TestScoreSkills(t *testing.T) {
	group := func(category string, n int) types.SkillGroup {
		items := make([]string, n)
		for i := range items {
			items[i] = "Skill" + string(rune('A'+i))
		}
		return types.SkillGroup{Category: category, Items: items}
	}

	tests := []struct {
		name   string
		groups []types.SkillGroup
		points int
		check  func(t *testing.T, n Notes)
	}{
		{"absent", nil, 0, func(t *testing.T, n Notes) {
			assert.True(t, containsMessage(n.CriticalIssues, "skills"))
			assert.Len(t, n.Warnings, 0)
		}},
		{"groups without items", []types.SkillGroup{{Category: "Empty"}}, 0, func(t *testing.T, n Notes) {
			assert.Len(t, n.CriticalIssues, 1)
		}},
		{"four skills", []types.SkillGroup{group("A", 4)}, 4, func(t *testing.T, n Notes) {
			assert.True(t, containsMessage(n.Warnings, "Very few skills"))
		}},
		{"five skills", []types.SkillGroup{group("A", 5)}, 9, func(t *testing.T, n Notes) {
			assert.True(t, containsMessage(n.Warnings, "add 5 more"))
		}},
		{"nine skills", []types.SkillGroup{group("A", 9)}, 9, nil},
		{"ten skills", []types.SkillGroup{group("A", 5), group("B", 5)}, 14, func(t *testing.T, n Notes) {
			assert.True(t, containsMessage(n.Suggestions, "Add 5 more skills to reach 15"))
		}},
		{"fourteen skills", []types.SkillGroup{group("A", 14)}, 14, nil},
		{"fifteen skills", []types.SkillGroup{group("A", 5), group("B", 5), group("C", 5)}, 18, func(t *testing.T, n Notes) {
			assert.True(t, containsMessage(n.Feedback, "organized into 3 categories"))
		}},
		{"capped", []types.SkillGroup{group("A", 20), group("B", 20), group("C", 20)}, 18, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := scoreSkills(tt.groups)
			assert.Equal(t, tt.points, res.points)
			if tt.check != nil {
				tt.check(t, res.notes)
			}
		})
	}
}

func TestScoreSkillsTermChecks(t *testing.T) {
	generic := scoreSkills([]types.SkillGroup{{Items: []string{"Excel", "Word", "Typing"}}})
	assert.True(t, containsMessage(generic.notes.Warnings, "technical skills"))
	assert.True(t, containsMessage(generic.notes.Suggestions, "soft skills"))
	assert.True(t, containsMessage(generic.notes.Suggestions, "tools"))
	assert.True(t, containsMessage(generic.notes.Warnings, "at least 3 categories (currently 1)"))

	strong := scoreSkills(strongSkills())
	assert.Empty(t, strong.notes.Warnings)
	assert.Empty(t, strong.notes.Suggestions)
}

func TestScoreProjects(t *testing.T) {
	bare := types.Project{Name: "Todo"}

	tests := []struct {
		name      string
		projects  []types.Project
		isFresher bool
		points    int
		check     func(t *testing.T, n Notes)
	}{
		{"absent fresher", nil, true, 0, func(t *testing.T, n Notes) {
			assert.Len(t, n.CriticalIssues, 1)
		}},
		{"absent experienced", nil, false, 0, func(t *testing.T, n Notes) {
			assert.Empty(t, n.CriticalIssues)
			assert.Len(t, n.Suggestions, 1)
		}},
		{"one fresher", []types.Project{bare}, true, 5, func(t *testing.T, n Notes) {
			assert.True(t, containsMessage(n.Warnings, "Only one project"))
		}},
		{"one experienced", []types.Project{bare}, false, 5, func(t *testing.T, n Notes) {
			assert.False(t, containsMessage(n.Warnings, "Only one project"))
			assert.True(t, containsMessage(n.Suggestions, "more projects"))
		}},
		{"two fresher", []types.Project{bare, bare}, true, 10, func(t *testing.T, n Notes) {
			assert.True(t, containsMessage(n.Suggestions, "third project"))
		}},
		{"two experienced", []types.Project{bare, bare}, false, 10, func(t *testing.T, n Notes) {
			assert.False(t, containsMessage(n.Suggestions, "third project"))
		}},
		{"bare quality checks", []types.Project{bare, bare, bare}, true, 15, func(t *testing.T, n Notes) {
			assert.True(t, containsMessage(n.Warnings, "Expand project descriptions"))
			assert.True(t, containsMessage(n.Warnings, "metrics"))
			assert.True(t, containsMessage(n.Suggestions, "verbs"))
			assert.True(t, containsMessage(n.Suggestions, "technologies"))
			assert.True(t, containsMessage(n.Suggestions, "links"))
		}},
		{"detailed projects", detailedProjects(), true, 15, func(t *testing.T, n Notes) {
			assert.Empty(t, n.Warnings)
			assert.Empty(t, n.Suggestions)
			assert.Len(t, n.Feedback, 6)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := scoreProjects(tt.projects, tt.isFresher)
			assert.Equal(t, tt.points, res.points)
			if tt.check != nil {
				tt.check(t, res.notes)
			}
		})
	}
}

func TestScoreCertifications(t *testing.T) {
	none := scoreCertifications(nil)
	assert.Equal(t, 0, none.points)
	assert.Empty(t, none.notes.CriticalIssues)
	assert.Len(t, none.notes.Suggestions, 1)

	some := scoreCertifications(threeCertifications()[:2])
	assert.Equal(t, 3, some.points)
	assert.Len(t, some.notes.Feedback, 1)
	assert.Len(t, some.notes.Suggestions, 1)

	all := scoreCertifications(threeCertifications())
	assert.Equal(t, 5, all.points)
	assert.Empty(t, all.notes.Suggestions)
}
