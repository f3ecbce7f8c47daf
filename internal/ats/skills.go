package ats

import (
	"strings"

	"atsscore/internal/types"
)

func scoreSkills(groups []types.SkillGroup) categoryResult {
	var res categoryResult

	var items []string
	categories := 0
	for _, g := range groups {
		n := 0
		for _, item := range g.Items {
			if present(item) {
				items = append(items, item)
				n++
			}
		}
		if n > 0 {
			categories++
		}
	}

	total := len(items)
	switch {
	case total == 0:
		res.notes.critical("Missing skills section")
		return res
	case total >= skillsStrongCount:
		res.points = skillsStrongPoints
		res.notes.good("Comprehensive skills section with %d skills", total)
	case total >= skillsGoodCount:
		res.points = skillsGoodPoints
		res.notes.suggest("Add %d more skills to reach %d", skillsStrongCount-total, skillsStrongCount)
	case total >= skillsFairCount:
		res.points = skillsFairPoints
		res.notes.warn("Only %d skills listed; add %d more to reach at least %d", total, skillsGoodCount-total, skillsGoodCount)
	default:
		res.points = skillsFewPoints
		res.notes.warn("Very few skills listed (%d); list at least %d relevant skills", total, skillsGoodCount)
	}

	combined := strings.Join(items, " ")
	if !hardSkillMatcher.matchesAny(combined) {
		res.notes.warn("Add technical skills such as languages, frameworks and databases")
	}
	if !softSkillMatcher.matchesAny(combined) {
		res.notes.suggest("Include soft skills like communication, teamwork or leadership")
	}
	if !toolMatcher.matchesAny(combined) {
		res.notes.suggest("List the tools you work with (Git, Docker, AWS and similar)")
	}

	if categories < minSkillGroups {
		res.notes.warn("Organize your skills into at least %d categories (currently %d)", minSkillGroups, categories)
	} else {
		res.notes.good("Skills are organized into %d categories", categories)
	}
	return res
}
