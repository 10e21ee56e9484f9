package models

// Question is a single multiple-choice item. ID is a synthetic
// "{category}_{n}" id until the question is persisted, then the stored id.
type Question struct {
	ID            string   `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
	Category      string   `json:"category"`
	Explanation   string   `json:"explanation"`
}
