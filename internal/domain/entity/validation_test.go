package entity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateArticleInput(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		summary  string
		body     string
		tags     []string
		wantErrs int
	}{
		{
			name:  "valid minimal input",
			title: "Understanding keyset pagination",
			body:  "Cursors beat offsets under concurrent writes.",
		},
		{
			name:  "valid with tags and summary",
			title: "Go generics",
			body:  "body",
			tags:  []string{"#go", "#generics"},
		},
		{
			name:     "missing title and body",
			wantErrs: 2,
		},
		{
			name:     "title too long",
			title:    strings.Repeat("a", MaxTitleLength+1),
			body:     "body",
			wantErrs: 1,
		},
		{
			name:     "too many tags",
			title:    "t",
			body:     "b",
			tags:     make([]string, MaxTagsPerArticle+1),
			wantErrs: 1,
		},
		{
			name:     "tag too long",
			title:    "t",
			body:     "b",
			tags:     []string{"#" + strings.Repeat("x", MaxTagLength)},
			wantErrs: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateArticleInput(tt.title, tt.summary, tt.body, tt.tags)
			assert.Len(t, errs, tt.wantErrs, "unexpected failures: %v", errs)
		})
	}
}

func TestValidateCommentBody(t *testing.T) {
	assert.NoError(t, ValidateCommentBody("nice write-up"))
	assert.Error(t, ValidateCommentBody(""), "empty body should fail")
	assert.Error(t, ValidateCommentBody(strings.Repeat("a", MaxCommentLength+1)), "oversized body should fail")
}

func TestValidateRegistration(t *testing.T) {
	tests := []struct {
		name     string
		username string
		email    string
		password string
		wantErrs int
	}{
		{name: "valid", username: "gopher", email: "gopher@example.com", password: "correct-horse"},
		{name: "all missing", wantErrs: 3},
		{name: "bad email", username: "gopher", email: "not-an-email", password: "correct-horse", wantErrs: 1},
		{name: "short password", username: "gopher", email: "gopher@example.com", password: "short", wantErrs: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateRegistration(tt.username, tt.email, tt.password)
			assert.Len(t, errs, tt.wantErrs, "unexpected failures: %v", errs)
		})
	}
}
