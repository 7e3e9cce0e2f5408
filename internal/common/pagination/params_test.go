package pagination

import (
	"net/http/httptest"
	"testing"
)

func TestParseQueryParams(t *testing.T) {
	cfg := Config{DefaultLimit: 12, MaxLimit: 50}

	tests := []struct {
		name      string
		query     string
		wantLimit int
		wantAfter *int64
		wantLikes *int64
		wantErr   bool
	}{
		{name: "defaults", query: "", wantLimit: 12},
		{name: "explicit limit", query: "limit=20", wantLimit: 20},
		{name: "cursor", query: "continueAfterId=42", wantLimit: 12, wantAfter: ptr(42)},
		{
			name:      "ranked cursor",
			query:     "continueAfterId=42&continueAfterLikeCount=7",
			wantLimit: 12, wantAfter: ptr(42), wantLikes: ptr(7),
		},
		{name: "zero like count is valid", query: "continueAfterId=1&continueAfterLikeCount=0", wantLimit: 12, wantAfter: ptr(1), wantLikes: ptr(0)},
		{name: "limit too large", query: "limit=51", wantErr: true},
		{name: "limit zero", query: "limit=0", wantErr: true},
		{name: "limit not a number", query: "limit=abc", wantErr: true},
		{name: "negative cursor", query: "continueAfterId=-5", wantErr: true},
		{name: "negative like count", query: "continueAfterId=1&continueAfterLikeCount=-1", wantErr: true},
		{name: "like count without id cursor", query: "continueAfterLikeCount=7", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/articles?"+tt.query, nil)
			got, err := ParseQueryParams(r, cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseQueryParams() err = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got.Limit != tt.wantLimit {
				t.Errorf("Limit = %d, want %d", got.Limit, tt.wantLimit)
			}
			if !int64PtrEqual(got.AfterID, tt.wantAfter) {
				t.Errorf("AfterID = %v, want %v", got.AfterID, tt.wantAfter)
			}
			if !int64PtrEqual(got.AfterLikeCount, tt.wantLikes) {
				t.Errorf("AfterLikeCount = %v, want %v", got.AfterLikeCount, tt.wantLikes)
			}
		})
	}
}

func TestParams_Validate(t *testing.T) {
	cfg := Config{DefaultLimit: 12, MaxLimit: 50}

	if err := (Params{Limit: 12}).Validate(cfg); err != nil {
		t.Errorf("valid params rejected: %v", err)
	}
	if err := (Params{Limit: 0}).Validate(cfg); err == nil {
		t.Error("limit 0 accepted")
	}
	// A secondary key without a primary cursor is meaningless.
	if err := (Params{Limit: 12, AfterLikeCount: ptr(3)}).Validate(cfg); err == nil {
		t.Error("like-count cursor without id cursor accepted")
	}
}

func ptr(v int64) *int64 { return &v }

func int64PtrEqual(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
