package discourse

import "strings"

// Event is one increment of processed output: the cleaned text delta to
// append plus the current progress estimate.
type Event struct {
	Text      string    `json:"text,omitempty"`
	Stage     Stage     `json:"-"`
	StageName string    `json:"stage"`
	Framework Framework `json:"-"`
	Percent   int       `json:"percent"`
}

// Processor turns a raw token stream into display events. It composes the
// Cleaner with a StageTracker and ratchets the progress percentage.
type Processor struct {
	cleaner *Cleaner
	tracker *StageTracker
	percent int
	out     strings.Builder
}

// NewProcessor returns a Processor ready for the first delta.
func NewProcessor() *Processor {
	return &Processor{
		cleaner: NewCleaner(),
		tracker: NewStageTracker(),
		percent: StageConnecting.Percent(),
	}
}

// Feed processes the next raw delta from the model.
func (p *Processor) Feed(delta string) Event {
	text := p.cleaner.Feed(delta)
	p.tracker.Observe(text)
	p.out.WriteString(text)
	return p.event(text, p.tracker.Stage())
}

// Finish flushes held text and moves the stage to done.
func (p *Processor) Finish() Event {
	text := p.cleaner.Flush()
	p.tracker.Observe(text)
	p.out.WriteString(text)
	return p.event(text, StageDone)
}

// Text returns the full cleaned text emitted so far.
func (p *Processor) Text() string { return p.out.String() }

// Framework returns the framework the model selected, if detected yet.
func (p *Processor) Framework() Framework { return p.tracker.Framework() }

func (p *Processor) event(text string, stage Stage) Event {
	if pct := stage.Percent(); pct > p.percent {
		p.percent = pct
	}
	return Event{
		Text:      text,
		Stage:     stage,
		StageName: stage.String(),
		Framework: p.tracker.Framework(),
		Percent:   p.percent,
	}
}
