package rag

import (
	"strings"
	"testing"
)

func TestContainsRefusal(t *testing.T) {
	tests := []struct {
		name   string
		answer string
		want   bool
	}{
		{"exact sentence", "The context does not contain the answer.", true},
		{"upper case", "THE CONTEXT DOES NOT CONTAIN THE ANSWER.", true},
		{"embedded in prose", "Unfortunately the context does not contain the answer you need.", true},
		{"normal answer", "The warranty lasts two years.", false},
		{"empty", "", false},
		{"near miss", "The context contains the answer.", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := containsRefusal(tt.answer); got != tt.want {
				t.Errorf("containsRefusal(%q) = %v, want %v", tt.answer, got, tt.want)
			}
		})
	}
}

// The refusal marker must stay a substring of the sentence the prompt asks
// for; otherwise the self-report would never be detected.
func TestRefusalSentenceCarriesMarker(t *testing.T) {
	if !strings.Contains(strings.ToLower(refusalSentence), refusalMarker) {
		t.Fatalf("refusal sentence %q does not contain marker %q", refusalSentence, refusalMarker)
	}
	if !strings.Contains(filePromptTmpl, "%s") {
		t.Fatal("file prompt template must interpolate the refusal sentence")
	}
}
