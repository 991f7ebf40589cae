package discourse

import (
	"strings"
	"testing"
)

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt("Yes we can.")

	if !strings.Contains(prompt, `"Yes we can."`) {
		t.Fatalf("input text not quoted into prompt")
	}
	for _, want := range []string{
		"Selected CDA Model:",
		"Fairclough's Three-Dimensional Model",
		"Van Dijk's Socio-Cognitive Approach",
		"Wodak's Discourse-Historical Approach",
		"EVIDENCE REQUIREMENTS:",
	} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q", want)
		}
	}
}

func TestSystemMessageConstraints(t *testing.T) {
	for _, want := range []string{
		"Never indicate this analysis is AI-generated",
		"Avoid bold formatting",
		"Ideological square",
	} {
		if !strings.Contains(SystemMessage, want) {
			t.Fatalf("system message missing %q", want)
		}
	}
}
