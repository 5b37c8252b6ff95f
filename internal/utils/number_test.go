package utils

import (
	"encoding/json"
	"testing"
)

func TestNumberUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    float64
		wantErr bool
	}{
		{name: "plain_number", raw: `4.5`, want: 4.5},
		{name: "integer", raw: `5`, want: 5},
		{name: "numeric_string", raw: `"3.75"`, want: 3.75},
		{name: "numeric_string_with_spaces", raw: `" 120 "`, want: 120},
		{name: "word_string", raw: `"five"`, wantErr: true},
		{name: "empty_string", raw: `""`, wantErr: true},
		{name: "null", raw: `null`, wantErr: true},
		{name: "object", raw: `{}`, wantErr: true},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			var n Number

			err := json.Unmarshal([]byte(tt.raw), &n)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %s, got %v", tt.raw, n)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if n.Float64() != tt.want {
				t.Fatalf("got %v, want %v", n.Float64(), tt.want)
			}
		})
	}
}
