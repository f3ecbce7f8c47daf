package ats

import (
	"strings"

	"atsscore/internal/types"
)

// textOfLength returns realistic filler text of exactly n characters.
func textOfLength(n int) string {
	const seed = "Full-stack engineer shipping responsive web apps with measurable impact. "
	s := []byte(strings.Repeat(seed, n/len(seed)+1)[:n])
	if n > 0 && s[n-1] == ' ' {
		s[n-1] = '.'
	}
	return string(s)
}

func containsMessage(messages []string, fragment string) bool {
	fragment = strings.ToLower(fragment)
	for _, m := range messages {
		if strings.Contains(strings.ToLower(m), fragment) {
			return true
		}
	}
	return false
}

func fullContact() types.PersonalInfo {
	return types.PersonalInfo{
		FullName: "Asha Verma",
		Email:    "asha@example.com",
		Phone:    "+91 98765 43210",
		Location: "Bengaluru, India",
	}
}

func strongSkills() []types.SkillGroup {
	return []types.SkillGroup{
		{Category: "Languages", Items: []string{"JavaScript", "TypeScript", "Python", "Java", "SQL"}},
		{Category: "Frontend", Items: []string{"React", "HTML", "CSS", "Tailwind", "Redux"}},
		{Category: "Backend", Items: []string{"Node.js", "Express", "MongoDB", "PostgreSQL", "REST API"}},
		{Category: "Tools and Soft Skills", Items: []string{"Git", "Docker", "AWS", "Communication", "Teamwork"}},
	}
}

func detailedProjects() []types.Project {
	return []types.Project{
		{
			Name:         "ShopLite",
			Description:  "Built a full-stack e-commerce platform with JWT authentication and CRUD inventory APIs, serving 2,000 monthly users with 99% uptime.",
			Technologies: []string{"React", "Node.js", "MongoDB", "Express"},
			GithubLink:   "https://github.com/asha/shoplite",
		},
		{
			Name:         "TaskFlow",
			Description:  "Developed a responsive task manager with real-time sync; optimized rendering to cut load time by 45% and integrated Stripe for payments.",
			Technologies: []string{"React", "Firebase", "Tailwind"},
			GithubLink:   "https://github.com/asha/taskflow",
			LiveLink:     "https://taskflow.example.com",
		},
		{
			Name:         "MetricsHub",
			Description:  "Designed a metrics dashboard and implemented CI deployment on AWS, reducing manual reporting effort by 10 hours per week for 3 teams.",
			Technologies: []string{"Python", "PostgreSQL", "Docker", "AWS"},
			GithubLink:   "https://github.com/asha/metricshub",
		},
	}
}

func strongExperience() []types.Experience {
	return []types.Experience{
		{
			Company:  "Acme Corp",
			Position: "Software Engineer",
			Description: []string{
				"Built a React and Node.js dashboard used by 1,200 customers",
				"Optimized MongoDB database queries, cutting API latency by 40%",
				"Implemented authentication and CRUD endpoints for 3 services",
				"Reduced cloud spend by $8,000 per quarter through caching",
			},
		},
		{
			Company:  "Globex",
			Position: "Frontend Developer",
			Description: []string{
				"Designed a responsive HTML/CSS design system adopted by 5 teams",
				"Developed an Express integration layer handling 50k requests a day",
				"Increased checkout conversion by 12% with A/B testing",
				"Led a team of 4 engineers through 2 major releases",
			},
		},
		{
			Company:  "Initech",
			Position: "Intern",
			Description: []string{
				"Created 20+ automated test suites for JavaScript services",
				"Automated deployment pipelines, saving 6 hours per week",
				"Collaborated with 3 designers on accessibility fixes",
				"Delivered 15 bug fixes within the first month",
			},
		},
	}
}

func threeCertifications() []types.Certification {
	return []types.Certification{
		{Name: "AWS Certified Cloud Practitioner", Issuer: "Amazon", Date: "2024-03"},
		{Name: "Meta Front-End Developer", Issuer: "Meta", Date: "2023-11"},
		{Name: "MongoDB Associate Developer", Issuer: "MongoDB", Date: "2023-06"},
	}
}

// strongResume has full marks in every category.
func strongResume() types.ResumeSnapshot {
	return types.ResumeSnapshot{
		PersonalInfo:   fullContact(),
		Summary:        textOfLength(200),
		Experience:     strongExperience(),
		Education:      []types.Education{{Institution: "IIT Delhi", Degree: "B.Tech Computer Science", GPA: "8.9"}},
		Skills:         strongSkills(),
		Projects:       detailedProjects(),
		Certifications: threeCertifications(),
	}
}

// fresherResume has no experience but strong projects and skills.
func fresherResume() types.ResumeSnapshot {
	skills := strongSkills()[:3]
	return types.ResumeSnapshot{
		PersonalInfo:   fullContact(),
		Summary:        textOfLength(200),
		Education:      []types.Education{{Institution: "NIT Trichy", Degree: "B.E. Electronics", GPA: "3.7"}},
		Skills:         skills,
		Projects:       detailedProjects(),
		Certifications: threeCertifications(),
	}
}
