package types

import "time"

// PersonalInfo holds contact details; only presence is scored.
type PersonalInfo struct {
	FullName string `json:"fullName,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
}

// Experience is one work history entry
type Experience struct {
	Company     string   `json:"company,omitempty"`
	Position    string   `json:"position,omitempty"`
	Description []string `json:"description"` // bullet points
}

// Education is one education entry
type Education struct {
	Institution string `json:"institution,omitempty"`
	Degree      string `json:"degree,omitempty"`
	GPA         string `json:"gpa,omitempty"`
}

// SkillGroup is a named group of skills
type SkillGroup struct {
	Category string   `json:"category,omitempty"`
	Items    []string `json:"items"`
}

// Project is one portfolio project
type Project struct {
	Name         string   `json:"name,omitempty"`
	Description  string   `json:"description,omitempty"`
	Technologies []string `json:"technologies"`
	LiveLink     string   `json:"liveLink,omitempty"`
	GithubLink   string   `json:"githubLink,omitempty"`
}

// Certification is one certificate entry
type Certification struct {
	Name   string `json:"name,omitempty"`
	Issuer string `json:"issuer,omitempty"`
	Date   string `json:"date,omitempty"`
}

// ResumeSnapshot is the structured resume record consumed by the scorer
type ResumeSnapshot struct {
	PersonalInfo   PersonalInfo    `json:"personalInfo"`
	Summary        string          `json:"summary,omitempty"`
	Experience     []Experience    `json:"experience"`
	Education      []Education     `json:"education"`
	Skills         []SkillGroup    `json:"skills"`
	Projects       []Project       `json:"projects"`
	Certifications []Certification `json:"certifications"`
}

// Rating is the qualitative tier derived from a score
type Rating string

const (
	RatingExcellent Rating = "Excellent"
	RatingGood      Rating = "Good"
	RatingFair      Rating = "Fair"
	RatingPoor      Rating = "Poor"
	RatingVeryPoor  Rating = "Very Poor"
)

// Breakdown reports points awarded per category. Keys follow the UI contract.
type Breakdown struct {
	ContactInfo    int `json:"contactInfo"`
	Summary        int `json:"summary"`
	Experience     int `json:"experience"`
	Education      int `json:"education"`
	Skills         int `json:"skills"`
	Projects       int `json:"projects"`
	Certifications int `json:"certifications"`
}

// Total sums all category points
func (b Breakdown) Total() int {
	return b.ContactInfo + b.Summary + b.Experience + b.Education + b.Skills + b.Projects + b.Certifications
}

// ScoreReport is the scorer output
type ScoreReport struct {
	Score             int       `json:"score"`
	Rating            Rating    `json:"rating"`
	RatingMessage     string    `json:"ratingMessage"`
	RatingColor       string    `json:"ratingColor"`
	ContextualSummary string    `json:"contextualSummary"`
	Feedback          []string  `json:"feedback"`
	Suggestions       []string  `json:"suggestions"`
	Warnings          []string  `json:"warnings"`
	CriticalIssues    []string  `json:"criticalIssues"`
	Breakdown         Breakdown `json:"breakdown"`
}

// SchemaIssue is a non-fatal shape problem found in a raw resume document
type SchemaIssue struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

// ScoredResume wraps a report with request metadata. It is the unit the
// CLI and HTTP surfaces emit; report fields are flattened into it on the wire.
type ScoredResume struct {
	ID       string    `json:"id"`
	Source   string    `json:"source,omitempty"`
	ScoredAt time.Time `json:"scoredAt"`
	ScoreReport
	Diagnostics []SchemaIssue `json:"diagnostics,omitempty"`
}

// ScoreBatch is the result of scoring several resumes at once
type ScoreBatch struct {
	Results []ScoredResume `json:"results"`
	Failed  []BatchFailure `json:"failed,omitempty"`
}

// BatchFailure records a resume that could not be read or parsed
type BatchFailure struct {
	Source string `json:"source"`
	Error  string `json:"error"`
}

// ValidationReport lists schema issues for one document
type ValidationReport struct {
	Source string        `json:"source"`
	Valid  bool          `json:"valid"`
	Issues []SchemaIssue `json:"issues"`
}

// EnhanceSection selects which prompt the enhancer uses
type EnhanceSection string

const (
	SectionSummary EnhanceSection = "summary"
	SectionBullet  EnhanceSection = "bullet"
	SectionProject EnhanceSection = "project"
)

// EnhanceInput is the request passed to the text enhancer
type EnhanceInput struct {
	Section    EnhanceSection `json:"section" validate:"required,oneof=summary bullet project"`
	Text       string         `json:"text" validate:"required,max=5000"`
	TargetRole string         `json:"targetRole,omitempty" validate:"max=200"`
}

// EnhanceOutput is the enhancer response
type EnhanceOutput struct {
	Section      EnhanceSection `json:"section"`
	Original     string         `json:"original"`
	Enhanced     string         `json:"enhanced"`
	Alternatives []string       `json:"alternatives"`
}

// ScoreRecord is one persisted scoring result
type ScoreRecord struct {
	ID       string      `json:"id"`
	ResumeID string      `json:"resumeId"`
	Score    int         `json:"score"`
	Rating   Rating      `json:"rating"`
	Report   ScoreReport `json:"report"`
	ScoredAt time.Time   `json:"scoredAt"`
}
