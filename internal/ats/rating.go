package ats

import "atsscore/internal/types"

// RatingInfo is the display data attached to a rating tier.
type RatingInfo struct {
	Rating  types.Rating
	Message string
	Color   string
}

var ratingTiers = []struct {
	min  int
	info RatingInfo
}{
	{excellentThreshold, RatingInfo{types.RatingExcellent, "ATS-optimized and highly competitive", "green"}},
	{goodThreshold, RatingInfo{types.RatingGood, "Solid resume with room for improvement", "blue"}},
	{fairThreshold, RatingInfo{types.RatingFair, "Needs significant improvements", "yellow"}},
	{poorThreshold, RatingInfo{types.RatingPoor, "Multiple critical issues to address", "orange"}},
}

var veryPoor = RatingInfo{types.RatingVeryPoor, "Major sections missing — not ready for submission", "red"}

// RateScore maps a final score to its tier.
func RateScore(score int) RatingInfo {
	for _, tier := range ratingTiers {
		if score >= tier.min {
			return tier.info
		}
	}
	return veryPoor
}

const (
	summaryFresherWeak       = "As a fresher, build 3-4 solid projects, list 15+ relevant skills and quantify the impact of each project to get past ATS filters."
	summaryFresherStrong     = "Strong foundation for a fresher! Your projects and skills make a compelling case; keep adding measurable results as you grow."
	summaryExperiencedWeak   = "Strengthen your resume by quantifying achievements, expanding your skills section and adding 2-3 relevant projects."
	summaryExperiencedStrong = "Your resume is well-structured. Fine-tune it with more metrics and role-specific keywords to maximize ATS performance."
)

// ContextualSummary picks the closing advice for a profile.
func ContextualSummary(isFresher bool, score int) string {
	strong := score >= contextualThreshold
	switch {
	case isFresher && !strong:
		return summaryFresherWeak
	case isFresher:
		return summaryFresherStrong
	case !strong:
		return summaryExperiencedWeak
	default:
		return summaryExperiencedStrong
	}
}
