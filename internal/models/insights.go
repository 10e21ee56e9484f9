package models

// InsightReport is the narrative career report attached to a result.
// Every field is free text from the model and may be missing.
type InsightReport struct {
	Overview          InsightOverview    `json:"overview"`
	Strengths         []string           `json:"strengths"`
	Improvements      []string           `json:"improvements"`
	CareerPaths       []CareerPath       `json:"career_paths"`
	ActionPlan        []ActionPhase      `json:"action_plan"`
	LearningResources []LearningResource `json:"learning_resources"`
}

type InsightOverview struct {
	Summary     string `json:"summary"`
	KeyTakeaway string `json:"key_takeaway"`
}

type CareerPath struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Growth      string `json:"growth"`
}

type ActionPhase struct {
	Phase   string   `json:"phase"`
	Actions []string `json:"actions"`
}

type LearningResource struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Platform string `json:"platform"`
	Focus    string `json:"focus"`
}
