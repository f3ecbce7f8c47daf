package ats

import "atsscore/internal/types"

// scoreExperience evaluates work history. An empty history is the fresher
// path: one warning, no points, no further checks.
func scoreExperience(entries []types.Experience) categoryResult {
	var res categoryResult
	if len(entries) == 0 {
		res.notes.warn("No work experience listed; projects and skills have to carry your profile")
		return res
	}

	switch n := len(entries); {
	case n >= experienceStrongCount:
		res.points += experienceStrongPoints
		res.notes.good("Solid work history with %d positions", n)
	case n == 2:
		res.points += experienceTwoPoints
		res.notes.suggest("Add another role, internship or freelance engagement to strengthen your experience")
	default:
		res.points += experienceOnePoints
		res.notes.suggest("Only one position listed; add internships, freelance or volunteer work")
	}

	var bullets []string
	for _, e := range entries {
		for _, line := range e.Description {
			if present(line) {
				bullets = append(bullets, line)
			}
		}
	}

	if len(bullets) > 0 {
		res.points += bulletPoints
		res.notes.good("Experience entries use bullet points")
		if avg := float64(len(bullets)) / float64(len(entries)); avg < minBulletsPerRole {
			res.notes.suggest("Add more bullet points: aim for at least 3 per role (currently %.1f on average)", avg)
		}
	} else {
		res.notes.critical("Use bullet points to describe your responsibilities and achievements")
	}

	verbs, metrics := false, false
	for _, b := range bullets {
		verbs = verbs || actionVerbMatcher.matchesAny(b)
		metrics = metrics || hasMetric(b, "%$")
	}

	if verbs {
		res.notes.good("Experience uses strong action verbs")
	} else {
		res.notes.warn("Start bullet points with strong action verbs such as built, led or optimized")
	}

	if metrics {
		res.points += quantifiedPoints
		res.notes.good("Experience includes quantifiable achievements")
	} else {
		res.notes.warn("Add metrics to your achievements (numbers, percentages or amounts)")
	}
	return res
}
