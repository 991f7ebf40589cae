package discourse

import "testing"

func TestCleanMarkup(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"bold", "**Textual Analysis** of the speech", "Textual Analysis of the speech"},
		{"italics", "*hegemonic* discourse", "hegemonic discourse"},
		{"double underscore", "__emphasis__ kept bare", "emphasis kept bare"},
		{"single underscore kept", "the token in_group stays", "the token in_group stays"},
		{"heading", "## Social Practice\nPower relations", "Social Practice\nPower relations"},
		{"hash mid line", "ranked #1 in polls", "ranked #1 in polls"},
		{"hash without space", "#hashtag politics", "#hashtag politics"},
		{"plain", "no markup at all", "no markup at all"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Clean(tc.in); got != tc.want {
				t.Fatalf("Clean(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestCleanMarkupAcrossChunks(t *testing.T) {
	c := NewCleaner()
	out := c.Feed("_")
	out += c.Feed("_Bold_")
	out += c.Feed("_ text")
	out += c.Flush()
	if out != "Bold text" {
		t.Fatalf("chunked emphasis strip = %q, want %q", out, "Bold text")
	}

	c = NewCleaner()
	out = c.Feed("#")
	out += c.Feed("# Heading\nbody")
	out += c.Flush()
	if out != "Heading\nbody" {
		t.Fatalf("chunked heading strip = %q, want %q", out, "Heading\nbody")
	}
}

func TestCleanDisclaimers(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{
			"leading disclaimer",
			"As an AI, I cannot judge intent. The text foregrounds hope.",
			"The text foregrounds hope.",
		},
		{
			"mid text disclaimer",
			"The modality is strong. This analysis was generated by a model. Agency is obscured.",
			"The modality is strong. Agency is obscured.",
		},
		{
			"disclaimer line",
			"Disclaimer: automated output\nThe lexis is charged.",
			"The lexis is charged.",
		},
		{
			"near miss released",
			"As announced, the plan shifts blame.",
			"As announced, the plan shifts blame.",
		},
		{
			"this as subject released",
			"This analysis rests on transitivity.",
			"This analysis rests on transitivity.",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Clean(tc.in); got != tc.want {
				t.Fatalf("Clean(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestCleanDisclaimerTokenByToken(t *testing.T) {
	in := "As an AI language model I cannot analyze this. The speaker builds an us-them frame."
	want := "The speaker builds an us-them frame."

	c := NewCleaner()
	var out string
	for _, r := range in {
		out += c.Feed(string(r))
	}
	out += c.Flush()
	if out != want {
		t.Fatalf("token-by-token = %q, want %q", out, want)
	}
}

func TestFlushReleasesUnconfirmedHold(t *testing.T) {
	c := NewCleaner()
	if got := c.Feed("As an"); got != "" {
		t.Fatalf("expected hold, got %q", got)
	}
	if got := c.Flush(); got != "As an" {
		t.Fatalf("Flush = %q, want %q", got, "As an")
	}
}

func TestChunkingInvariant(t *testing.T) {
	in := "## Selected CDA Model\n**Fairclough** applies. As an AI I add a caveat. The _register_ is formal."
	want := Clean(in)

	for _, size := range []int{1, 2, 3, 5, 7, 16} {
		c := NewCleaner()
		var out string
		for i := 0; i < len(in); i += size {
			end := i + size
			if end > len(in) {
				end = len(in)
			}
			out += c.Feed(in[i:end])
		}
		out += c.Flush()
		if out != want {
			t.Fatalf("chunk size %d: got %q, want %q", size, out, want)
		}
	}
}
