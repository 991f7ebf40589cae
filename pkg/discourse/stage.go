package discourse

import "strings"

// Framework identifies which CDA framework the model selected.
type Framework int

const (
	FrameworkUnknown Framework = iota
	FrameworkFairclough
	FrameworkVanDijk
	FrameworkWodak
)

func (f Framework) String() string {
	switch f {
	case FrameworkFairclough:
		return "Fairclough's Three-Dimensional Model"
	case FrameworkVanDijk:
		return "Van Dijk's Socio-Cognitive Approach"
	case FrameworkWodak:
		return "Wodak's Discourse-Historical Approach"
	default:
		return "Unknown"
	}
}

// Stage is the coarse phase of an analysis, inferred from heading markers
// in the accumulating response text.
type Stage int

const (
	StageConnecting Stage = iota
	StageSelectingModel
	StageDimensionOne
	StageDimensionTwo
	StageDimensionThree
	StageDone
)

func (s Stage) String() string {
	switch s {
	case StageConnecting:
		return "connecting"
	case StageSelectingModel:
		return "selecting framework"
	case StageDimensionOne:
		return "first dimension"
	case StageDimensionTwo:
		return "second dimension"
	case StageDimensionThree:
		return "third dimension"
	case StageDone:
		return "complete"
	default:
		return "unknown"
	}
}

// Percent maps a stage to the progress bar value. Values only ever grow.
func (s Stage) Percent() int {
	switch s {
	case StageSelectingModel:
		return 10
	case StageDimensionOne:
		return 35
	case StageDimensionTwo:
		return 60
	case StageDimensionThree:
		return 85
	case StageDone:
		return 100
	default:
		return 2
	}
}

type stageMarker struct {
	text      string
	stage     Stage
	framework Framework
}

// Markers follow the headings the prompt mandates for each framework.
var stageMarkers = []stageMarker{
	{"selected cda model", StageSelectingModel, FrameworkUnknown},

	{"textual analysis", StageDimensionOne, FrameworkFairclough},
	{"discursive practice", StageDimensionTwo, FrameworkFairclough},
	{"social practice", StageDimensionThree, FrameworkFairclough},

	{"cognitive schema", StageDimensionOne, FrameworkVanDijk},
	{"social cognition", StageDimensionTwo, FrameworkVanDijk},
	{"discourse-cognition-society", StageDimensionThree, FrameworkVanDijk},

	{"historical contextualization", StageDimensionOne, FrameworkWodak},
	{"social actor", StageDimensionTwo, FrameworkWodak},
	{"discursive strategies", StageDimensionThree, FrameworkWodak},
}

var frameworkNames = []stageMarker{
	{"fairclough", StageConnecting, FrameworkFairclough},
	{"van dijk", StageConnecting, FrameworkVanDijk},
	{"wodak", StageConnecting, FrameworkWodak},
}

// maxMarkerLen bounds the overlap window kept between chunks so markers
// split across chunk boundaries are still found.
var maxMarkerLen = func() int {
	max := 0
	for _, m := range stageMarkers {
		if len(m.text) > max {
			max = len(m.text)
		}
	}
	return max
}()

// StageTracker infers the analysis stage from substring markers in the
// accumulating cleaned text. The stage never moves backwards.
type StageTracker struct {
	stage     Stage
	framework Framework
	tail      string
}

// NewStageTracker starts a tracker at StageConnecting.
func NewStageTracker() *StageTracker {
	return &StageTracker{stage: StageConnecting}
}

// Observe scans the next cleaned delta and reports whether the stage or
// detected framework changed.
func (t *StageTracker) Observe(delta string) bool {
	window := t.tail + strings.ToLower(delta)
	changed := false

	if t.framework == FrameworkUnknown {
		for _, m := range frameworkNames {
			if strings.Contains(window, m.text) {
				t.framework = m.framework
				changed = true
				break
			}
		}
	}
	for _, m := range stageMarkers {
		if m.stage <= t.stage {
			continue
		}
		if m.framework != FrameworkUnknown && t.framework != FrameworkUnknown && m.framework != t.framework {
			continue
		}
		if strings.Contains(window, m.text) {
			t.stage = m.stage
			if m.framework != FrameworkUnknown && t.framework == FrameworkUnknown {
				t.framework = m.framework
			}
			changed = true
		}
	}

	if len(window) > maxMarkerLen-1 {
		window = window[len(window)-(maxMarkerLen-1):]
	}
	t.tail = window
	return changed
}

// Stage returns the current stage estimate.
func (t *StageTracker) Stage() Stage { return t.stage }

// Framework returns the detected framework, FrameworkUnknown until the
// model names one.
func (t *StageTracker) Framework() Framework { return t.framework }
