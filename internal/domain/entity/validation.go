package entity

import (
	"fmt"
	"net/mail"
	"unicode/utf8"
)

// Field length limits. Bodies are capped well below the request body limit so
// a single document can never dominate a feed page response.
const (
	MaxTitleLength    = 200
	MaxSummaryLength  = 500
	MaxBodyLength     = 100_000
	MaxCommentLength  = 10_000
	MaxTagLength      = 50
	MaxTagsPerArticle = 10
	MaxUsernameLength = 30
	MinPasswordLength = 8
)

// ValidateArticleInput checks title, summary, body, and tags for a create or
// update request, collecting every failure rather than stopping at the first.
func ValidateArticleInput(title, summary, body string, tags []string) ValidationErrors {
	var errs ValidationErrors
	if title == "" {
		errs = append(errs, &ValidationError{Field: "title", Message: "is required"})
	} else if utf8.RuneCountInString(title) > MaxTitleLength {
		errs = append(errs, &ValidationError{Field: "title", Message: fmt.Sprintf("must not exceed %d characters", MaxTitleLength)})
	}
	if utf8.RuneCountInString(summary) > MaxSummaryLength {
		errs = append(errs, &ValidationError{Field: "summary", Message: fmt.Sprintf("must not exceed %d characters", MaxSummaryLength)})
	}
	if body == "" {
		errs = append(errs, &ValidationError{Field: "body", Message: "is required"})
	} else if utf8.RuneCountInString(body) > MaxBodyLength {
		errs = append(errs, &ValidationError{Field: "body", Message: fmt.Sprintf("must not exceed %d characters", MaxBodyLength)})
	}
	if len(tags) > MaxTagsPerArticle {
		errs = append(errs, &ValidationError{Field: "tags", Message: fmt.Sprintf("must not exceed %d tags", MaxTagsPerArticle)})
	}
	for _, t := range tags {
		if utf8.RuneCountInString(t) > MaxTagLength {
			errs = append(errs, &ValidationError{Field: "tags", Message: fmt.Sprintf("tag %q exceeds %d characters", t, MaxTagLength)})
		}
	}
	return errs
}

// ValidateCommentBody checks a comment or reply body.
func ValidateCommentBody(body string) error {
	if body == "" {
		return &ValidationError{Field: "body", Message: "is required"}
	}
	if utf8.RuneCountInString(body) > MaxCommentLength {
		return &ValidationError{Field: "body", Message: fmt.Sprintf("must not exceed %d characters", MaxCommentLength)}
	}
	return nil
}

// ValidateRegistration checks username, email, and password for account creation.
func ValidateRegistration(username, email, password string) ValidationErrors {
	var errs ValidationErrors
	if username == "" {
		errs = append(errs, &ValidationError{Field: "username", Message: "is required"})
	} else if utf8.RuneCountInString(username) > MaxUsernameLength {
		errs = append(errs, &ValidationError{Field: "username", Message: fmt.Sprintf("must not exceed %d characters", MaxUsernameLength)})
	}
	if email == "" {
		errs = append(errs, &ValidationError{Field: "email", Message: "is required"})
	} else if _, err := mail.ParseAddress(email); err != nil {
		errs = append(errs, &ValidationError{Field: "email", Message: "must be a valid email address"})
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		errs = append(errs, &ValidationError{Field: "password", Message: fmt.Sprintf("must be at least %d characters", MinPasswordLength)})
	}
	return errs
}
