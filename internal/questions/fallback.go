package questions

import (
	"fmt"
	"strings"

	"careerquiz/backend/internal/models"
)

type fallbackEntry struct {
	question string
	options  [OptionCount]string
	answer   int
}

// per-category banks; programming texts may contain a %[1]s language verb
var fallbackBank = map[string][]fallbackEntry{
	models.CategoryOS: {
		{"What is the primary purpose of an operating system?", [4]string{"Manage hardware resources", "Edit documents", "Browse internet", "Play games"}, 0},
		{"Which scheduling algorithm can cause starvation?", [4]string{"Priority Scheduling", "Round Robin", "FCFS", "SJF with aging"}, 0},
		{"What is a deadlock in OS?", [4]string{"Circular wait for resources", "Process termination", "Memory leak", "CPU idle state"}, 0},
		{"Virtual memory uses which storage?", [4]string{"Hard disk", "RAM only", "Cache only", "Registers"}, 0},
		{"What is a critical section?", [4]string{"Code accessing shared resources", "Error handling code", "Main function", "Loop structure"}, 0},
	},
	models.CategoryDBMS: {
		{"What is normalization in databases?", [4]string{"Removing redundancy", "Adding indexes", "Backing up data", "Encrypting data"}, 0},
		{"Which SQL clause filters grouped data?", [4]string{"HAVING", "WHERE", "GROUP BY", "ORDER BY"}, 0},
		{"ACID properties ensure what?", [4]string{"Transaction reliability", "Fast queries", "Data encryption", "User authentication"}, 0},
		{"What is a foreign key?", [4]string{"References primary key of another table", "Primary key", "Unique constraint", "Index"}, 0},
		{"Which JOIN returns all rows from both tables?", [4]string{"FULL OUTER JOIN", "INNER JOIN", "LEFT JOIN", "RIGHT JOIN"}, 0},
	},
	models.CategoryNetworks: {
		{"What layer is TCP in OSI model?", [4]string{"Transport Layer", "Network Layer", "Application Layer", "Data Link Layer"}, 0},
		{"Default HTTP port number is?", [4]string{"80", "443", "8080", "21"}, 0},
		{"What does DNS do?", [4]string{"Converts domain names to IP", "Encrypts data", "Routes packets", "Assigns IP addresses"}, 0},
		{"Which protocol is connectionless?", [4]string{"UDP", "TCP", "FTP", "HTTP"}, 0},
		{"What is subnet mask used for?", [4]string{"Divide network into subnets", "Encrypt traffic", "Authenticate users", "Cache data"}, 0},
	},
	models.CategoryAptitude: {
		{"If 20% of 150 is X, then X = ?", [4]string{"30", "25", "35", "40"}, 0},
		{"Next in series: 2, 6, 12, 20, ?", [4]string{"30", "28", "32", "26"}, 0},
		{"A train 100m long crosses a pole in 10 sec. Speed?", [4]string{"10 m/s", "100 m/s", "1 m/s", "50 m/s"}, 0},
		{"If A:B = 2:3 and B:C = 4:5, then A:C = ?", [4]string{"8:15", "2:5", "3:5", "4:15"}, 0},
		{"Average of 5 numbers is 20. If one number is 30, average of rest?", [4]string{"17.5", "20", "22.5", "15"}, 0},
	},
	models.CategoryVerbal: {
		{"Choose correct: He ___ to school every day.", [4]string{"goes", "go", "going", "gone"}, 0},
		{"Synonym of 'Abundant':", [4]string{"Plentiful", "Scarce", "Limited", "Rare"}, 0},
		{"Antonym of 'Ancient':", [4]string{"Modern", "Old", "Historic", "Traditional"}, 0},
		{"Identify error: 'She don't like coffee.'", [4]string{"don't should be doesn't", "No error", "like should be likes", "coffee should be coffees"}, 0},
		{"'Break the ice' means:", [4]string{"Start conversation", "Destroy something", "Cool down", "Make ice cubes"}, 0},
	},
	models.CategoryProgramming: {
		{"What is the time complexity of binary search in %[1]s?", [4]string{"O(log n)", "O(n)", "O(n²)", "O(1)"}, 0},
		{"Which data structure uses LIFO?", [4]string{"Stack", "Queue", "Array", "Tree"}, 0},
		{"What does 'return' keyword do in %[1]s?", [4]string{"Exits function with value", "Loops back", "Throws error", "Prints output"}, 0},
		{"Array indexing in %[1]s starts from?", [4]string{"0", "1", "-1", "Depends on declaration"}, 0},
		{"What is recursion in %[1]s?", [4]string{"Function calling itself", "Loop structure", "Variable declaration", "Error handling"}, 0},
	},
}

// Fallback returns the fixed 30-question catalog, five per category in
// catalog order. language only appears in programming questions.
func Fallback(language string) []models.Question {
	language = strings.TrimSpace(language)
	if language == "" {
		language = models.DefaultLanguage
	}

	out := make([]models.Question, 0, BatchSize)
	for _, category := range models.Categories {
		for i, entry := range fallbackBank[category] {
			text := entry.question
			if category == models.CategoryProgramming && strings.Contains(text, "%[1]s") {
				text = fmt.Sprintf(text, language)
			}
			out = append(out, models.Question{
				ID:            syntheticID(category, i+1),
				Question:      text,
				Options:       append([]string(nil), entry.options[:]...),
				CorrectAnswer: entry.answer,
				Category:      category,
			})
		}
	}
	return out
}

func syntheticID(category string, n int) string {
	return fmt.Sprintf("%s_%d", category, n)
}
