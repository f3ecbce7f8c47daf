package ats

import (
	"strings"
	"unicode/utf8"

	"atsscore/internal/types"
)

func present(s string) bool {
	return strings.TrimSpace(s) != ""
}

func scoreContact(info types.PersonalInfo) categoryResult {
	var res categoryResult

	if present(info.Email) {
		res.points += emailPoints
	} else {
		res.notes.critical("Missing email address: recruiters have no way to contact you")
	}

	if present(info.Phone) {
		res.points += phonePoints
	} else {
		res.notes.critical("Missing phone number")
	}

	if present(info.Location) {
		res.points += locationPoints
	} else {
		res.notes.warn("Add your location (city, country) so location filters can match you")
	}

	if res.points == MaxContactPoints {
		res.notes.good("Contact information is complete")
	}
	return res
}

func scoreSummary(summary string) categoryResult {
	var res categoryResult
	length := utf8.RuneCountInString(strings.TrimSpace(summary))

	switch {
	case length == 0:
		res.notes.critical("Missing professional summary")
	case length >= summaryOptimalMin && length <= summaryOptimalMax:
		res.points = summaryOptimalPoints
		res.notes.good("Professional summary length is optimal")
	case length > summaryOptimalMax:
		res.points = summaryResizePoints
		res.notes.suggest("Condense your summary to %d-%d characters (currently %d)", summaryOptimalMin, summaryOptimalMax, length)
	case length >= summaryShortMin:
		res.points = summaryResizePoints
		res.notes.suggest("Expand your summary to %d-%d characters (currently %d)", summaryOptimalMin, summaryOptimalMax, length)
	default:
		res.points = summaryShortPoints
		res.notes.warn("Professional summary is too short (%d characters); aim for %d-%d", length, summaryOptimalMin, summaryOptimalMax)
	}
	return res
}

func scoreEducation(entries []types.Education) categoryResult {
	var res categoryResult
	if len(entries) == 0 {
		res.notes.critical("Missing education section")
		return res
	}

	res.points = educationPoints
	res.notes.good("Education section is present")

	for _, e := range entries {
		if present(e.GPA) {
			res.points += gpaPoints
			res.notes.good("GPA is listed")
			break
		}
	}
	return res
}

func scoreCertifications(certs []types.Certification) categoryResult {
	var res categoryResult
	switch n := len(certs); {
	case n >= certificationsStrongCount:
		res.points = certificationsStrongPoints
		res.notes.good("Strong certification list (%d certifications)", n)
	case n > 0:
		res.points = certificationsSomePoints
		res.notes.good("Certifications add credibility to your profile")
		res.notes.suggest("Add more relevant certifications to strengthen your profile")
	default:
		res.notes.suggest("Add relevant certifications (cloud, platform or vendor) to stand out")
	}
	return res
}
