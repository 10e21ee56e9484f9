package models

// question categories produced by the generator (lowercase)
const (
	CategoryOS          = "os"
	CategoryDBMS        = "dbms"
	CategoryNetworks    = "networks"
	CategoryAptitude    = "aptitude"
	CategoryVerbal      = "verbal"
	CategoryProgramming = "programming"
)

// career-track buckets used by scoring
const (
	DomainProgramming = "programming"
	DomainAnalytics   = "analytics"
	DomainTesting     = "testing"
	DomainTechnical   = "technical"
)

// quiz difficulty as accepted from clients
const (
	DifficultyEasy     = "easy"
	DifficultyModerate = "moderate"
	DifficultyHard     = "hard"
)

// quiz session lifecycle
const (
	SessionInProgress = "in_progress"
	SessionCompleted  = "completed"
)

const (
	DefaultDifficulty = DifficultyModerate
	DefaultLanguage   = "python"
	DefaultDegree     = "B.Tech"
)

// Categories in catalog order.
var Categories = []string{
	CategoryOS,
	CategoryDBMS,
	CategoryNetworks,
	CategoryAptitude,
	CategoryVerbal,
	CategoryProgramming,
}

// ValidCategories contains the fixed category tag set
var ValidCategories = map[string]bool{
	CategoryOS:          true,
	CategoryDBMS:        true,
	CategoryNetworks:    true,
	CategoryAptitude:    true,
	CategoryVerbal:      true,
	CategoryProgramming: true,
}

// ValidDifficulties contains all accepted quiz difficulties (in lowercase)
var ValidDifficulties = map[string]bool{
	DifficultyEasy:     true,
	DifficultyModerate: true,
	DifficultyHard:     true,
}

// languages for which the quiz includes OOP questions (in lowercase)
var OOPLanguages = map[string]bool{
	"python":     true,
	"java":       true,
	"cpp":        true,
	"javascript": true,
	"csharp":     true,
	"go":         true,
	"ruby":       true,
}

// Domains in tie-break order.
var Domains = []string{
	DomainProgramming,
	DomainAnalytics,
	DomainTesting,
	DomainTechnical,
}

func ValidDifficultiesList() []string {
	return []string{DifficultyEasy, DifficultyModerate, DifficultyHard}
}

// SupportsOOP reports whether language gets the OOP-flavoured programming questions.
func SupportsOOP(language string) bool {
	return OOPLanguages[language]
}
