package format

import "testing"

func TestTransformLine(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		want      string
		wantMatch bool
	}{
		{
			name:      "simple info line",
			input:     "2024-01-01T00:00:00.0000 - INFO - a",
			want:      "2024-01-01 00:00:00 INFO a",
			wantMatch: true,
		},
		{
			name:      "warn line with message words",
			input:     "2024-01-01T00:00:01.0000 - WARN - b",
			want:      "2024-01-01 00:00:01 WARN b",
			wantMatch: true,
		},
		{
			name:      "long fractional seconds",
			input:     "2024-03-05T12:34:56.123456789 - ERROR - disk full",
			want:      "2024-03-05 12:34:56 ERROR disk full",
			wantMatch: true,
		},
		{
			name:      "tight separators",
			input:     "2024-01-01T00:00:00.1-DEBUG-x",
			want:      "2024-01-01 00:00:00 DEBUG x",
			wantMatch: true,
		},
		{
			name:      "empty message",
			input:     "2024-01-01T00:00:00.0 - INFO - ",
			want:      "2024-01-01 00:00:00 INFO ",
			wantMatch: true,
		},
		{
			name:      "lowercase level does not match",
			input:     "2024-01-01T00:00:00.0000 - info - a",
			want:      "2024-01-01T00:00:00.0000 - info - a",
			wantMatch: false,
		},
		{
			name:      "missing fractional seconds does not match",
			input:     "2024-01-01T00:00:00 - INFO - a",
			want:      "2024-01-01T00:00:00 - INFO - a",
			wantMatch: false,
		},
		{
			name:      "garbage line passes through",
			input:     "not a log line at all",
			want:      "not a log line at all",
			wantMatch: false,
		},
		{
			name:      "empty line passes through",
			input:     "",
			want:      "",
			wantMatch: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, matched := TransformLine(tt.input)
			if matched != tt.wantMatch {
				t.Fatalf("TransformLine(%q) matched = %v, want %v", tt.input, matched, tt.wantMatch)
			}
			if got != tt.want {
				t.Errorf("TransformLine(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
