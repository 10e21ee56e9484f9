package questions

import (
	"encoding/json"
	"strings"
	"testing"

	"careerquiz/backend/internal/models"
)

const validRecord = `{"question":"What is a process?","options":["Program in execution","A file","A socket","A thread pool"],"correct_answer":0,"category":"os","explanation":"Textbook definition"}`

func TestValidateAcceptsWellFormedRecord(t *testing.T) {
	verdict := Validate(json.RawMessage(validRecord))
	if !verdict.Valid() {
		t.Fatalf("expected valid record, got reason %q", verdict.Reason)
	}
	q := verdict.Question
	if q.Question != "What is a process?" || q.Category != models.CategoryOS || q.CorrectAnswer != 0 {
		t.Fatalf("unexpected question: %+v", q)
	}
	if len(q.Options) != OptionCount {
		t.Fatalf("expected %d options, got %d", OptionCount, len(q.Options))
	}
	if q.Explanation != "Textbook definition" {
		t.Fatalf("explanation not carried: %q", q.Explanation)
	}
}

func TestValidateAcceptsIntegralFloatAnswer(t *testing.T) {
	raw := `{"question":"Q?","options":["a","b","c","d"],"correct_answer":2.0,"category":"dbms"}`
	verdict := Validate(json.RawMessage(raw))
	if !verdict.Valid() {
		t.Fatalf("expected valid record, got reason %q", verdict.Reason)
	}
	if verdict.Question.CorrectAnswer != 2 {
		t.Fatalf("expected answer 2, got %d", verdict.Question.CorrectAnswer)
	}
}

func TestValidateRejectsIndependently(t *testing.T) {
	cases := map[string]string{
		"missing question":   `{"options":["a","b","c","d"],"correct_answer":0,"category":"os"}`,
		"missing options":    `{"question":"Q?","correct_answer":0,"category":"os"}`,
		"missing answer":     `{"question":"Q?","options":["a","b","c","d"],"category":"os"}`,
		"missing category":   `{"question":"Q?","options":["a","b","c","d"],"correct_answer":0}`,
		"three options":      `{"question":"Q?","options":["a","b","c"],"correct_answer":0,"category":"os"}`,
		"five options":       `{"question":"Q?","options":["a","b","c","d","e"],"correct_answer":0,"category":"os"}`,
		"answer too high":    `{"question":"Q?","options":["a","b","c","d"],"correct_answer":4,"category":"os"}`,
		"negative answer":    `{"question":"Q?","options":["a","b","c","d"],"correct_answer":-1,"category":"os"}`,
		"fractional answer":  `{"question":"Q?","options":["a","b","c","d"],"correct_answer":1.5,"category":"os"}`,
		"string answer":      `{"question":"Q?","options":["a","b","c","d"],"correct_answer":"0","category":"os"}`,
		"empty option":       `{"question":"Q?","options":["a"," ","c","d"],"correct_answer":0,"category":"os"}`,
		"non-string option":  `{"question":"Q?","options":["a",2,"c","d"],"correct_answer":0,"category":"os"}`,
		"empty question":     `{"question":"   ","options":["a","b","c","d"],"correct_answer":0,"category":"os"}`,
		"duplicate options":  `{"question":"Q?","options":["a","B","b","d"],"correct_answer":0,"category":"os"}`,
		"unknown category":   `{"question":"Q?","options":["a","b","c","d"],"correct_answer":0,"category":"history"}`,
		"array record":       `["a","b"]`,
		"string record":      `"question"`,
		"number explanation": `{"question":"Q?","options":["a","b","c","d"],"correct_answer":0,"category":"os","explanation":3}`,
	}

	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			verdict := Validate(json.RawMessage(raw))
			if verdict.Valid() {
				t.Fatalf("expected rejection for %s", name)
			}
			if strings.TrimSpace(verdict.Reason) == "" {
				t.Fatal("rejection carried no reason")
			}
			if verdict.Question != nil {
				t.Fatal("rejected verdict should not carry a question")
			}
		})
	}
}

func TestValidateNeverPanicsOnGarbage(t *testing.T) {
	inputs := []string{"", "{", "null", "[]", "{}", `{"question":null}`}
	for _, in := range inputs {
		if verdict := Validate(json.RawMessage(in)); verdict.Valid() {
			t.Fatalf("expected %q to be rejected", in)
		}
	}
}

func TestValidateCanonicalizesCategories(t *testing.T) {
	cases := map[string]string{
		"Python Programming": models.CategoryProgramming,
		"python":             models.CategoryProgramming,
		"python_programming": models.CategoryProgramming,
		" PROGRAMMING ":      models.CategoryProgramming,
		"network":            models.CategoryNetworks,
		"Computer Networks":  models.CategoryNetworks,
		"computer_networks":  models.CategoryNetworks,
		"Operating Systems":  models.CategoryOS,
		"DBMS":               models.CategoryDBMS,
		"Verbal":             models.CategoryVerbal,
	}

	for in, want := range cases {
		raw, _ := json.Marshal(map[string]interface{}{
			"question":       "Q?",
			"options":        []string{"a", "b", "c", "d"},
			"correct_answer": 1,
			"category":       in,
		})
		verdict := Validate(raw)
		if !verdict.Valid() {
			t.Fatalf("%q: unexpected rejection %q", in, verdict.Reason)
		}
		if verdict.Question.Category != want {
			t.Fatalf("%q: expected %q, got %q", in, want, verdict.Question.Category)
		}
	}
}

func TestValidateTrimsText(t *testing.T) {
	raw := `{"question":"  Spaced?  ","options":[" a ","b","c","d "],"correct_answer":3,"category":"aptitude"}`
	verdict := Validate(json.RawMessage(raw))
	if !verdict.Valid() {
		t.Fatalf("unexpected rejection %q", verdict.Reason)
	}
	if verdict.Question.Question != "Spaced?" {
		t.Fatalf("question not trimmed: %q", verdict.Question.Question)
	}
	if verdict.Question.Options[0] != "a" || verdict.Question.Options[3] != "d" {
		t.Fatalf("options not trimmed: %v", verdict.Question.Options)
	}
}

func TestValidateQuestionKeepsID(t *testing.T) {
	verdict := ValidateQuestion(models.Question{
		ID:            "os_3",
		Question:      "Q?",
		Options:       []string{"a", "b", "c", "d"},
		CorrectAnswer: 1,
		Category:      "os",
	})
	if !verdict.Valid() || verdict.Question.ID != "os_3" {
		t.Fatalf("unexpected verdict %+v", verdict)
	}
}
