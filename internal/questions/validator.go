package questions

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"careerquiz/backend/internal/models"
	"careerquiz/backend/internal/utils"
)

// OptionCount is the number of choices every question carries.
const OptionCount = 4

const questionSchema = `{
  "type": "object",
  "required": ["question", "options", "correct_answer", "category"],
  "properties": {
    "question": {"type": "string"},
    "options": {
      "type": "array",
      "minItems": 4,
      "maxItems": 4,
      "items": {"type": "string"}
    },
    "correct_answer": {"type": "integer", "minimum": 0, "maximum": 3},
    "category": {"type": "string"},
    "explanation": {"type": "string"}
  }
}`

var compiledSchema = mustCompileSchema(questionSchema)

func mustCompileSchema(schema string) *gojsonschema.Schema {
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schema))
	if err != nil {
		panic("questions: invalid record schema: " + err.Error())
	}
	return compiled
}

// categoryAliases maps spellings the model tends to produce onto the fixed tag set.
var categoryAliases = map[string]string{
	"python programming":  models.CategoryProgramming,
	"python":              models.CategoryProgramming,
	"python_programming":  models.CategoryProgramming,
	"network":             models.CategoryNetworks,
	"computer networks":   models.CategoryNetworks,
	"computer_networks":   models.CategoryNetworks,
	"operating systems":   models.CategoryOS,
	"operating_systems":   models.CategoryOS,
	"database management": models.CategoryDBMS,
}

// Verdict is the outcome of validating one decoded record. Exactly one of
// Question and Reason is set.
type Verdict struct {
	Question *models.Question
	Reason   string
}

func (v Verdict) Valid() bool {
	return v.Reason == "" && v.Question != nil
}

func invalid(format string, args ...interface{}) Verdict {
	return Verdict{Reason: fmt.Sprintf(format, args...)}
}

type rawQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer float64  `json:"correct_answer"` // integral, checked by the schema
	Category      string   `json:"category"`
	Explanation   string   `json:"explanation"`
}

// Validate checks a single record. It never panics and never returns an
// error; every problem is reported through Verdict.Reason.
func Validate(raw json.RawMessage) Verdict {
	result, err := compiledSchema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return invalid("not a JSON object: %v", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return invalid("schema: %s", strings.Join(msgs, "; "))
	}

	var rq rawQuestion
	if err := json.Unmarshal(raw, &rq); err != nil {
		return invalid("decode: %v", err)
	}
	return ValidateQuestion(models.Question{
		Question:      rq.Question,
		Options:       rq.Options,
		CorrectAnswer: int(rq.CorrectAnswer),
		Category:      rq.Category,
		Explanation:   rq.Explanation,
	})
}

// ValidateQuestion applies the semantic checks to an already typed question
// and returns a trimmed copy with a canonical category.
func ValidateQuestion(q models.Question) Verdict {
	text := strings.TrimSpace(q.Question)
	if text == "" {
		return invalid("question text is empty")
	}
	if len(q.Options) != OptionCount {
		return invalid("expected %d options, got %d", OptionCount, len(q.Options))
	}
	if q.CorrectAnswer < 0 || q.CorrectAnswer >= OptionCount {
		return invalid("correct_answer %d out of range", q.CorrectAnswer)
	}

	options := make([]string, OptionCount)
	seen := make(map[string]bool, OptionCount)
	for i, opt := range q.Options {
		opt = strings.TrimSpace(opt)
		if opt == "" {
			return invalid("option %d is empty", i)
		}
		key := strings.ToLower(opt)
		if seen[key] {
			return invalid("option %q is duplicated", opt)
		}
		seen[key] = true
		options[i] = opt
	}

	category, ok := CanonicalCategory(q.Category)
	if !ok {
		return invalid("unknown category %q", q.Category)
	}

	return Verdict{Question: &models.Question{
		ID:            q.ID,
		Question:      text,
		Options:       options,
		CorrectAnswer: q.CorrectAnswer,
		Category:      category,
		Explanation:   strings.TrimSpace(q.Explanation),
	}}
}

// CanonicalCategory maps a category label onto the fixed tag set.
func CanonicalCategory(category string) (string, bool) {
	c := utils.NormalizeCategory(category)
	if models.ValidCategories[c] {
		return c, true
	}
	if alias, ok := categoryAliases[c]; ok {
		return alias, true
	}
	return "", false
}
