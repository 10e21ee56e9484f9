package models

import (
	"net/mail"
	"strings"
)

const maxLanguageLength = 32

type SyncUserRequest struct {
	AuthID string `json:"auth_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Degree string `json:"degree,omitempty"`
}

// implements the Validator interface
func (r *SyncUserRequest) Validate() error {
	r.AuthID = strings.TrimSpace(r.AuthID)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Name = strings.TrimSpace(r.Name)
	r.Degree = strings.TrimSpace(r.Degree)

	var details []ValidationErrorDetail
	if r.AuthID == "" {
		details = append(details, ValidationErrorDetail{Field: "auth_id", Reason: "required"})
	}
	if r.Email == "" {
		details = append(details, ValidationErrorDetail{Field: "email", Reason: "required"})
	}
	if r.Name == "" {
		details = append(details, ValidationErrorDetail{Field: "name", Reason: "required"})
	}
	if len(details) > 0 {
		return &ErrorResponse{
			Code:    "missing_fields",
			Message: "Missing required fields: auth_id, email, name",
			Details: details,
		}
	}

	if _, err := mail.ParseAddress(r.Email); err != nil {
		return &ErrorResponse{Code: "invalid_email", Message: "email is not a valid address"}
	}
	if r.Degree == "" {
		r.Degree = DefaultDegree
	}
	return nil
}

type GenerateQuizRequest struct {
	Difficulty string `json:"difficulty"`
	Language   string `json:"language"`
}

func (r *GenerateQuizRequest) Validate() error {
	r.Difficulty = strings.ToLower(strings.TrimSpace(r.Difficulty))
	r.Language = strings.ToLower(strings.TrimSpace(r.Language))

	if r.Difficulty == "" {
		r.Difficulty = DefaultDifficulty
	}
	if r.Language == "" {
		r.Language = DefaultLanguage
	}

	if !ValidDifficulties[r.Difficulty] {
		return &ErrorResponse{
			Code:    "invalid_difficulty",
			Message: "Difficulty must be one of: " + strings.Join(ValidDifficultiesList(), ", "),
		}
	}
	if len(r.Language) > maxLanguageLength {
		return &ErrorResponse{Code: "invalid_language", Message: "language is too long"}
	}
	return nil
}

// SubmitQuizRequest carries answers keyed by stored question id.
type SubmitQuizRequest struct {
	QuizID  string         `json:"quiz_id"`
	Answers map[string]int `json:"answers"`
}

func (r *SubmitQuizRequest) Validate() error {
	r.QuizID = strings.TrimSpace(r.QuizID)
	if r.QuizID == "" {
		return &ErrorResponse{Code: "missing_quiz_id", Message: "quiz_id is required"}
	}
	if r.Answers == nil {
		r.Answers = map[string]int{}
	}
	return nil
}

type UpdateProfileRequest struct {
	Name   string `json:"name,omitempty"`
	Email  string `json:"email,omitempty"`
	Degree string `json:"degree,omitempty"`
}

func (r *UpdateProfileRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Degree = strings.TrimSpace(r.Degree)

	if r.Name == "" && r.Email == "" && r.Degree == "" {
		return &ErrorResponse{Code: "empty_update", Message: "at least one of name, email, degree is required"}
	}
	if r.Email != "" {
		if _, err := mail.ParseAddress(r.Email); err != nil {
			return &ErrorResponse{Code: "invalid_email", Message: "email is not a valid address"}
		}
	}
	return nil
}

// Updates returns only the non-empty fields, keyed by column.
func (r *UpdateProfileRequest) Updates() map[string]interface{} {
	updates := map[string]interface{}{}
	if r.Name != "" {
		updates["name"] = r.Name
	}
	if r.Email != "" {
		updates["email"] = r.Email
	}
	if r.Degree != "" {
		updates["degree"] = r.Degree
	}
	return updates
}
