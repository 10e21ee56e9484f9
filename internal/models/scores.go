package models

// DomainScores holds the accumulated weight per career domain.
type DomainScores struct {
	Programming float64 `json:"programming"`
	Analytics   float64 `json:"analytics"`
	Testing     float64 `json:"testing"`
	Technical   float64 `json:"technical"`
}

// Get returns the score for a domain key, or 0 for unknown keys.
func (d DomainScores) Get(domain string) float64 {
	switch domain {
	case DomainProgramming:
		return d.Programming
	case DomainAnalytics:
		return d.Analytics
	case DomainTesting:
		return d.Testing
	case DomainTechnical:
		return d.Technical
	default:
		return 0
	}
}

// CategoryTally counts answers within one question category.
type CategoryTally struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// CategoryBreakdown maps a category to its tally.
type CategoryBreakdown map[string]*CategoryTally
