package chunk

import "testing"

func TestID(t *testing.T) {
	got := ID("pump_manual", 3, 7)
	want := "pump_manual_p3_c7"
	if got != want {
		t.Errorf("ID() = %q, want %q", got, want)
	}
}

func TestClean(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "collapses whitespace runs",
			input: "foo\n\n  bar\tbaz",
			want:  "foo bar baz",
		},
		{
			name:  "strips non-printable characters",
			input: "temp\x00erature \x07reading",
			want:  "temp erature  reading",
		},
		{
			name:  "tightens space before punctuation",
			input: "Check the valve . Then verify !",
			want:  "Check the valve. Then verify!",
		},
		{
			name:  "trims surrounding whitespace",
			input: "  normal range  ",
			want:  "normal range",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.input); got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
