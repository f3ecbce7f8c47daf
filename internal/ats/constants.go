package ats

// Category maxima. They sum to MaxScore.
const (
	MaxContactPoints        = 10
	MaxSummaryPoints        = 10
	MaxExperiencePoints     = 30
	MaxEducationPoints      = 12
	MaxSkillsPoints         = 18
	MaxProjectsPoints       = 15
	MaxCertificationsPoints = 5

	MaxScore = 100
)

// Contact
const (
	emailPoints    = 4
	phonePoints    = 3
	locationPoints = 3
)

// Summary, lengths in characters
const (
	summaryOptimalMin = 150
	summaryOptimalMax = 300
	summaryShortMin   = 50

	summaryOptimalPoints = 10
	summaryResizePoints  = 6
	summaryShortPoints   = 3
)

// Experience
const (
	experienceStrongCount = 3

	experienceStrongPoints = 12
	experienceTwoPoints    = 10
	experienceOnePoints    = 7
	bulletPoints           = 10
	quantifiedPoints       = 8

	minBulletsPerRole = 3.0
)

// Education
const (
	educationPoints = 10
	gpaPoints       = 2
)

// Skills
const (
	skillsStrongCount = 15
	skillsGoodCount   = 10
	skillsFairCount   = 5
	minSkillGroups    = 3

	skillsStrongPoints = 18
	skillsGoodPoints   = 14
	skillsFairPoints   = 9
	skillsFewPoints    = 4
)

// Projects
const (
	projectsStrongCount   = 3
	projectDetailMinChars = 100
	projectMinTechStack   = 3

	projectsStrongPoints = 15
	projectsTwoPoints    = 10
	projectsOnePoints    = 5
)

// Certifications
const (
	certificationsStrongCount = 3

	certificationsStrongPoints = 5
	certificationsSomePoints   = 3
)

// Cross-cutting heuristics
const (
	contentMinChars = 1200
	contentMaxChars = 4500

	keywordStrongDensity = 15
	keywordFairDensity   = 10
)

// Rating thresholds
const (
	excellentThreshold = 85
	goodThreshold      = 70
	fairThreshold      = 55
	poorThreshold      = 40

	// contextualThreshold splits the contextual summary table.
	contextualThreshold = 70
)
