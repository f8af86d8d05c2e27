package tokens

import (
	"regexp"
	"testing"
)

func TestPropertiesString(t *testing.T) {
	tests := []struct {
		name  string
		props Properties
		want  string
	}{
		{
			name:  "zero-padded integer parts",
			props: Properties{X: 60, Y: 560, Font: FontBold},
			want:  "[060.00,560.00,bold]",
		},
		{
			name:  "fractional coordinates",
			props: Properties{X: 123.45, Y: 283.1, Font: FontNormal},
			want:  "[123.45,283.10,normal]",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.props.String(); got != tt.want {
				t.Errorf("Properties.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestContentPatternExcludesMarkers(t *testing.T) {
	re := regexp.MustCompile("^(?:" + ContentPattern() + ")+$")

	if !re.MatchString("Criminal Mischief 18 § 3304") {
		t.Error("Expected content pattern to match plain document text")
	}

	for _, marker := range SpecialCharacters() {
		if re.MatchString("a" + marker + "b") {
			t.Errorf("Expected content pattern to reject marker %q", marker)
		}
	}
}

func TestStripMarkers(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text", "John Doe", "John Doe"},
		{"tab becomes space", "Smith,_Jane", "Smith, Jane"},
		{"comes-before becomes space", "second|first", "second first"},
		{"box wrap is spliced out", "Crim^inal", "Criminal"},
		{"surrounding space trimmed", " _padded_ ", "padded"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripMarkers(tt.in); got != tt.want {
				t.Errorf("StripMarkers(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
