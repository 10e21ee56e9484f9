package insights

import (
	"fmt"

	"careerquiz/backend/internal/models"
	"careerquiz/backend/internal/scoring"
)

// Fallback is the hand-written report served whenever the model cannot
// produce one. domain may be a key or a display name.
func Fallback(domain string, totalCorrect, totalQuestions int) models.InsightReport {
	name := scoring.DisplayName(domain)
	pct := wholePercent(totalCorrect, totalQuestions)

	return models.InsightReport{
		Overview: models.InsightOverview{
			Summary: fmt.Sprintf("You scored %d/%d (%d%%), showing strong potential in %s. "+
				"Your performance indicates good foundational knowledge with room for growth.",
				totalCorrect, totalQuestions, pct, name),
			KeyTakeaway: "Focus on consistent practice and targeted learning to excel in your chosen field.",
		},
		Strengths: []string{
			"Strong problem-solving mindset",
			"Good grasp of fundamental concepts",
			"Ability to work under timed conditions",
			"Diverse skill set across multiple domains",
		},
		Improvements: []string{
			"Practice more coding challenges daily",
			"Deep dive into advanced topics",
			"Work on time management strategies",
			"Build real-world projects to apply knowledge",
		},
		CareerPaths: []models.CareerPath{
			{
				Title:       "Software Developer",
				Description: "Build applications and solve complex problems with code",
				Growth:      "High demand with excellent salary growth potential",
			},
			{
				Title:       "Quality Assurance Engineer",
				Description: "Ensure software quality through testing and automation",
				Growth:      "Stable career with growing automation opportunities",
			},
			{
				Title:       "Technical Analyst",
				Description: "Bridge gap between business and technology teams",
				Growth:      "Versatile role with transition to various tech positions",
			},
		},
		ActionPlan: []models.ActionPhase{
			{
				Phase: "Immediate (0-3 months)",
				Actions: []string{
					"Solve 2-3 LeetCode problems daily",
					"Complete one online course in your domain",
					"Build a portfolio project",
				},
			},
			{
				Phase: "Short-term (3-6 months)",
				Actions: []string{
					"Contribute to open-source projects",
					"Attend tech meetups and networking events",
					"Master one programming framework deeply",
				},
			},
			{
				Phase: "Long-term (6-12 months)",
				Actions: []string{
					"Prepare for technical interviews at target companies",
					"Build 2-3 significant portfolio projects",
					"Consider relevant certifications in your field",
				},
			},
		},
		LearningResources: []models.LearningResource{
			{Type: "Course", Title: "CS50 - Introduction to Computer Science", Platform: "Harvard/edX", Focus: "Strong programming fundamentals"},
			{Type: "Practice", Title: "LeetCode Premium", Platform: "leetcode.com", Focus: "Algorithm and data structure mastery"},
			{Type: "Book", Title: "Cracking the Coding Interview", Platform: "Amazon/Library", Focus: "Interview preparation and problem-solving"},
			{Type: "Project", Title: "Build a Full-Stack Application", Platform: "GitHub", Focus: "End-to-end development skills"},
		},
	}
}
