package tokenizer

import (
	"reflect"
	"testing"

	"github.com/gcbaptista/go-ats-score/internal/stopwords"
)

func TestPreprocess(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty string", "", []string{}},
		{"simple lowercase", "python developer", []string{"python", "developer"}},
		{"uppercase", "PYTHON Developer", []string{"python", "developer"}},
		{"stopwords removed", "looking for a python developer", []string{"looking", "python", "developer"}},
		{"with punctuation", "hello, world!", []string{"hello", "world"}},
		{"digits removed", "5 years of go1 experience", []string{"years", "go", "experience"}},
		{"only digits", "12345 67890", []string{}},
		{"contraction collapses", "don't stop", []string{"dont", "stop"}},
		{"hyphen joins words", "state-of-the-art", []string{"stateoftheart"}},
		{"slash joins words", "ci/cd", []string{"cicd"}},
		{"underscore removed", "my_variable_name", []string{"myvariablename"}},
		{"duplicates kept", "go go go", []string{"go", "go", "go"}},
		{"newlines and tabs", "python\n\tdjango", []string{"python", "django"}},
		{"only symbols", "!@#$%^", []string{}},
		{"non ascii punctuation kept", "python•go", []string{"python•go"}},
		{"only stopwords", "the and of", []string{}},
		{"anything is kept", "anything", []string{"anything"}},
		{"cannot splits into stopwords", "candidates cannot relocate", []string{"candidates", "relocate"}},
		{"gonna splits", "we're gonna ship", []string{"gon", "na", "ship"}},
		{"curly quotes split off", "we're gonna ship “python”", []string{"gon", "na", "ship", "“", "python", "”"}},
		{"curly apostrophe contraction", "don’t stop", []string{"’", "stop"}},
		{"guillemets split off", "«golang»", []string{"«", "golang", "»"}},
		{"scenario resume", "python developer with five years experience", []string{"python", "developer", "five", "years", "experience"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Preprocess(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Preprocess(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestWordTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", []string{}},
		{"whitespace only", " \t\n", []string{}},
		{"plain words", "go rust", []string{"go", "rust"}},
		{"all fused forms", "cannot gimme gonna gotta lemme wanna", []string{"can", "not", "gim", "me", "gon", "na", "got", "ta", "lem", "me", "wan", "na"}},
		{"casing kept", "Cannot", []string{"Can", "not"}},
		{"fused form inside a word", "cannoteer", []string{"cannoteer"}},
		{"quotes inside a word", "‘go’lang", []string{"‘", "go", "’", "lang"}},
		{"low opening quote", "„quoted“", []string{"„", "quoted", "“"}},
		{"quote next to fused form", "“gonna”", []string{"“", "gon", "na", "”"}},
		{"em dash kept", "café—bar", []string{"café—bar"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WordTokenize(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("WordTokenize(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestStripPunctuation(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"all ascii punctuation", Punctuation, ""},
		{"mixed", "c++ & c#", "c  c"},
		{"unicode kept", "café—bar", "café—bar"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripPunctuation(tt.input); got != tt.want {
				t.Errorf("StripPunctuation(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestAnalyze(t *testing.T) {
	tests := []struct {
		name  string
		input string
		stop  stopwords.Set
		want  []string
	}{
		{"empty string", "", stopwords.TFIDF, []string{}},
		{"single letters dropped", "a b c go", nil, []string{"go"}},
		{"punctuation splits", "ci/cd, node.js", nil, []string{"ci", "cd", "node", "js"}},
		{"digits kept", "python3 2024", nil, []string{"python3", "2024"}},
		{"underscore is a word char", "snake_case", nil, []string{"snake_case"}},
		{"stopwords filtered", "looking for python developer", stopwords.TFIDF, []string{"looking", "python", "developer"}},
		{"sklearn list drops five", "five years", stopwords.TFIDF, []string{"years"}},
		{"uppercase lowered", "Go AND Rust", stopwords.TFIDF, []string{"rust"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Analyze(tt.input, tt.stop)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Analyze(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestCounts(t *testing.T) {
	got := Counts([]string{"go", "rust", "go"})
	want := map[string]int{"go": 2, "rust": 1}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Counts() = %v, want %v", got, want)
	}

	if len(Counts(nil)) != 0 {
		t.Error("Counts(nil) should be empty")
	}
}

func TestUnique(t *testing.T) {
	got := Unique([]string{"go", "rust", "go"})
	if len(got) != 2 {
		t.Errorf("Unique() returned %d entries, want 2", len(got))
	}
	if _, ok := got["rust"]; !ok {
		t.Error("Unique() missing 'rust'")
	}
}
