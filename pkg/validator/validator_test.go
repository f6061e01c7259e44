package validator

import (
	"strings"
	"testing"
)

type sample struct {
	Email string `validate:"required"`
	Date  string `validate:"isodate"`
	Type  string `validate:"omitempty,oneof=active future past"`
	Limit int    `validate:"gte=0"`
}

func TestValidateStruct(t *testing.T) {
	v := New()

	tests := []struct {
		name    string
		in      sample
		wantErr string
	}{
		{name: "valid", in: sample{Email: "a@b.c", Date: "2024-02-29", Type: "past"}},
		{name: "empty optional fields", in: sample{Email: "a@b.c"}},
		{name: "missing required", in: sample{}, wantErr: "email is required"},
		{name: "bad date", in: sample{Email: "x", Date: "2024-13-01"}, wantErr: "date must be a date in YYYY-MM-DD format"},
		{name: "bad enum", in: sample{Email: "x", Type: "bogus"}, wantErr: "type must be one of: active future past"},
		{name: "negative", in: sample{Email: "x", Limit: -1}, wantErr: "limit must be at least 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateStruct(tt.in)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("expected no error, got: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected %q, got: %v", tt.wantErr, err)
			}
		})
	}
}
