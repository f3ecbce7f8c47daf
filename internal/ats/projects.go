package ats

import (
	"strings"
	"unicode/utf8"

	"atsscore/internal/types"
)

// scoreProjects evaluates the portfolio. Freshers get stricter messages
// because projects replace work experience for them.
func scoreProjects(projects []types.Project, isFresher bool) categoryResult {
	var res categoryResult

	switch n := len(projects); {
	case n == 0:
		if isFresher {
			res.notes.critical("No projects listed: without work experience, projects are essential")
		} else {
			res.notes.suggest("Add projects to showcase hands-on skills beyond your job duties")
		}
		return res
	case n >= projectsStrongCount:
		res.points = projectsStrongPoints
		res.notes.good("Strong project portfolio with %d projects", n)
	case n == 2:
		res.points = projectsTwoPoints
		if isFresher {
			res.notes.suggest("Add a third project to round out your portfolio")
		}
	default:
		res.points = projectsOnePoints
		if isFresher {
			res.notes.warn("Only one project listed; freshers should showcase 3-4 projects")
		} else {
			res.notes.suggest("Consider adding more projects to demonstrate practical skills")
		}
	}

	detailed, stack, linked := false, false, false
	descriptions := make([]string, 0, len(projects))
	for _, p := range projects {
		descriptions = append(descriptions, p.Description)
		if utf8.RuneCountInString(strings.TrimSpace(p.Description)) > projectDetailMinChars {
			detailed = true
		}
		if countPresent(p.Technologies) >= projectMinTechStack {
			stack = true
		}
		if present(p.LiveLink) || present(p.GithubLink) {
			linked = true
		}
	}
	combined := strings.Join(descriptions, " ")

	if detailed {
		res.notes.good("Project descriptions are detailed")
	} else {
		res.notes.warn("Expand project descriptions beyond %d characters with scope and outcome", projectDetailMinChars)
	}

	if projectAchievementMatcher.matchesAny(combined) {
		res.notes.good("Project descriptions use achievement verbs")
	} else {
		res.notes.suggest("Describe projects with verbs like built, implemented or optimized")
	}

	if hasMetric(combined, "%") {
		res.notes.good("Project descriptions include measurable results")
	} else {
		res.notes.warn("Add metrics to your projects (users, performance gains, percentages)")
	}

	if stack {
		res.notes.good("Projects list their technology stack")
	} else {
		res.notes.suggest("List at least %d technologies for your main projects", projectMinTechStack)
	}

	if linked {
		res.notes.good("Projects include live or repository links")
	} else {
		res.notes.suggest("Add live demo or GitHub links to your projects")
	}
	return res
}

func countPresent(items []string) int {
	n := 0
	for _, item := range items {
		if present(item) {
			n++
		}
	}
	return n
}
