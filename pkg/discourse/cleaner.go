package discourse

import "strings"

// disclaimerOpeners are sentence openers that mark a model disclaimer.
// A sentence is suppressed only once its opening matches one of these in
// full; until then the opening is buffered, and it is released the moment
// the match becomes impossible.
var disclaimerOpeners = []string{
	"as an ai",
	"as a language model",
	"as an artificial intelligence",
	"i am an ai",
	"i'm an ai",
	"this analysis was generated by",
	"this analysis is ai-generated",
	"disclaimer:",
	"note: this analysis was generated",
}

// Cleaner strips markdown emphasis and heading markers from a token stream
// and suppresses disclaimer sentences, tolerating arbitrary chunk
// boundaries: markers split across chunks are still removed, and no part
// of a suppressed sentence is ever emitted.
type Cleaner struct {
	// markup state
	pendingUnderscores int
	pendingHashes      int
	lineStart          bool

	// disclaimer state
	sentenceStart bool
	skipSpace     bool
	hold          []byte
	dropping      bool
}

// NewCleaner returns a Cleaner positioned at the start of a stream.
func NewCleaner() *Cleaner {
	return &Cleaner{lineStart: true, sentenceStart: true}
}

// Feed consumes the next raw chunk and returns the text safe to display.
// The returned string may be empty while input is held back.
func (c *Cleaner) Feed(chunk string) string {
	return c.gate(c.stripMarkup(chunk))
}

// Flush releases any held text at end of stream and resets the Cleaner.
// A half-seen disclaimer opening is released (it was never confirmed);
// a confirmed disclaimer sentence cut off mid-way stays suppressed.
func (c *Cleaner) Flush() string {
	out := c.gate(c.flushMarkup())
	if !c.dropping && len(c.hold) > 0 {
		out += string(c.hold)
	}
	*c = Cleaner{lineStart: true, sentenceStart: true}
	return out
}

// Clean runs a complete text through a fresh Cleaner.
func Clean(text string) string {
	c := NewCleaner()
	return c.Feed(text) + c.Flush()
}

// stripMarkup removes '*' runs, '__' runs and line-leading '#' markers.
// A single '_' is kept so quoted identifiers survive. Trailing '_' and
// '#' runs are held until the next chunk resolves them.
func (c *Cleaner) stripMarkup(chunk string) string {
	var b strings.Builder
	for i := 0; i < len(chunk); i++ {
		ch := chunk[i]

		if c.pendingHashes > 0 {
			switch {
			case ch == '#':
				c.pendingHashes++
				continue
			case ch == ' ':
				// heading marker: drop the hashes and the space
				c.pendingHashes = 0
				c.lineStart = false
				continue
			default:
				b.WriteString(strings.Repeat("#", c.pendingHashes))
				c.pendingHashes = 0
				c.lineStart = false
			}
		}

		if ch == '_' {
			c.pendingUnderscores++
			continue
		}
		if c.pendingUnderscores > 0 {
			if c.pendingUnderscores == 1 {
				b.WriteByte('_')
				c.lineStart = false
			}
			c.pendingUnderscores = 0
		}

		if ch == '*' {
			continue
		}
		if ch == '#' && c.lineStart {
			c.pendingHashes = 1
			continue
		}

		b.WriteByte(ch)
		c.lineStart = ch == '\n'
	}
	return b.String()
}

func (c *Cleaner) flushMarkup() string {
	var b strings.Builder
	if c.pendingHashes > 0 {
		b.WriteString(strings.Repeat("#", c.pendingHashes))
		c.pendingHashes = 0
	}
	if c.pendingUnderscores == 1 {
		b.WriteByte('_')
	}
	c.pendingUnderscores = 0
	return b.String()
}

type holdState int

const (
	holdMiss holdState = iota
	holdPrefix
	holdMatch
)

func classifyHold(hold []byte) holdState {
	lower := strings.ToLower(string(hold))
	state := holdMiss
	for _, opener := range disclaimerOpeners {
		if strings.HasPrefix(lower, opener) {
			return holdMatch
		}
		if strings.HasPrefix(opener, lower) {
			state = holdPrefix
		}
	}
	return state
}

// gate passes sentences through unless they open with a disclaimer marker.
func (c *Cleaner) gate(chunk string) string {
	var b strings.Builder
	for i := 0; i < len(chunk); i++ {
		ch := chunk[i]

		if c.dropping {
			if isSentenceEnd(ch) {
				c.dropping = false
				c.sentenceStart = true
				c.skipSpace = true
			}
			continue
		}

		if len(c.hold) > 0 {
			c.hold = append(c.hold, ch)
			switch classifyHold(c.hold) {
			case holdMatch:
				c.hold = c.hold[:0]
				c.dropping = true
			case holdPrefix:
			default:
				b.Write(c.hold)
				c.sentenceStart = isSentenceEnd(ch)
				c.hold = c.hold[:0]
			}
			continue
		}

		if c.sentenceStart {
			if isStreamSpace(ch) {
				if !c.skipSpace {
					b.WriteByte(ch)
				}
				continue
			}
			c.skipSpace = false
			c.hold = append(c.hold, ch)
			if classifyHold(c.hold) != holdPrefix {
				b.Write(c.hold)
				c.hold = c.hold[:0]
				c.sentenceStart = isSentenceEnd(ch)
			}
			continue
		}

		b.WriteByte(ch)
		if isSentenceEnd(ch) {
			c.sentenceStart = true
		}
	}
	return b.String()
}

func isSentenceEnd(ch byte) bool {
	return ch == '.' || ch == '!' || ch == '?' || ch == '\n'
}

func isStreamSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}
