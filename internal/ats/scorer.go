// Package ats implements the deterministic ATS compatibility scorer.
//
// Score is a pure function: it performs no I/O, keeps no state and is safe
// for concurrent use. Missing or empty fields never cause a failure; they
// earn zero points and an explanatory message instead.
package ats

import "atsscore/internal/types"

// Score evaluates a resume snapshot. Categories run in a fixed order and
// messages keep that order within each list.
func Score(resume types.ResumeSnapshot) types.ScoreReport {
	isFresher := IsFresher(resume)

	var notes Notes
	var b types.Breakdown
	b.ContactInfo = notes.take(scoreContact(resume.PersonalInfo), MaxContactPoints)
	b.Summary = notes.take(scoreSummary(resume.Summary), MaxSummaryPoints)
	b.Experience = notes.take(scoreExperience(resume.Experience), MaxExperiencePoints)
	b.Education = notes.take(scoreEducation(resume.Education), MaxEducationPoints)
	b.Skills = notes.take(scoreSkills(resume.Skills), MaxSkillsPoints)
	b.Projects = notes.take(scoreProjects(resume.Projects, isFresher), MaxProjectsPoints)
	b.Certifications = notes.take(scoreCertifications(resume.Certifications), MaxCertificationsPoints)

	text := contentText(resume)
	notes.merge(checkContentLength(text))
	notes.merge(checkKeywordDensity(text))

	score := clamp(b.Total(), 0, MaxScore)
	rating := RateScore(score)

	return types.ScoreReport{
		Score:             score,
		Rating:            rating.Rating,
		RatingMessage:     rating.Message,
		RatingColor:       rating.Color,
		ContextualSummary: ContextualSummary(isFresher, score),
		Feedback:          nonNil(notes.Feedback),
		Suggestions:       nonNil(notes.Suggestions),
		Warnings:          nonNil(notes.Warnings),
		CriticalIssues:    nonNil(notes.CriticalIssues),
		Breakdown:         b,
	}
}

// IsFresher reports whether a resume is scored on the no-experience path.
func IsFresher(resume types.ResumeSnapshot) bool {
	return len(resume.Experience) == 0
}
