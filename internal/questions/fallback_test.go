package questions

import (
	"strings"
	"testing"

	"careerquiz/backend/internal/models"
)

func TestFallbackShape(t *testing.T) {
	batch := Fallback("java")
	if len(batch) != BatchSize {
		t.Fatalf("expected %d questions, got %d", BatchSize, len(batch))
	}

	perCategory := map[string]int{}
	ids := map[string]bool{}
	for i, q := range batch {
		if verdict := ValidateQuestion(q); !verdict.Valid() {
			t.Fatalf("fallback question %d (%s) fails validation: %s", i, q.ID, verdict.Reason)
		}
		if ids[q.ID] {
			t.Fatalf("duplicate id %s", q.ID)
		}
		ids[q.ID] = true
		perCategory[q.Category]++
	}

	for _, category := range models.Categories {
		if perCategory[category] != PerCategory {
			t.Fatalf("expected %d %s questions, got %d", PerCategory, category, perCategory[category])
		}
	}
}

func TestFallbackOrderAndIDs(t *testing.T) {
	batch := Fallback("go")
	if batch[0].ID != "os_1" || batch[4].ID != "os_5" {
		t.Fatalf("unexpected os ids: %s, %s", batch[0].ID, batch[4].ID)
	}
	if batch[5].Category != models.CategoryDBMS || batch[5].ID != "dbms_1" {
		t.Fatalf("expected dbms_1 at index 5, got %+v", batch[5])
	}
	if batch[29].ID != "programming_5" {
		t.Fatalf("expected programming_5 last, got %s", batch[29].ID)
	}
}

func TestFallbackInterpolatesLanguage(t *testing.T) {
	batch := Fallback("rust")
	if !strings.Contains(batch[25].Question, "rust") {
		t.Fatalf("expected language in programming question, got %q", batch[25].Question)
	}
	for _, q := range batch[:25] {
		if strings.Contains(q.Question, "rust") {
			t.Fatalf("language leaked into %s question: %q", q.Category, q.Question)
		}
	}
}

func TestFallbackDefaultsLanguage(t *testing.T) {
	batch := Fallback("  ")
	if !strings.Contains(batch[25].Question, models.DefaultLanguage) {
		t.Fatalf("expected default language, got %q", batch[25].Question)
	}
}

func TestFallbackReturnsFreshSlices(t *testing.T) {
	first := Fallback("python")
	first[0].Options[0] = "mutated"
	if Fallback("python")[0].Options[0] == "mutated" {
		t.Fatal("fallback options share backing storage across calls")
	}
}
