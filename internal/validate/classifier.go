package validate

import "strings"

// Classification labels a failed artifact execution.
type Classification int

const (
	// Authoring marks a defect in the generated test itself, eligible for
	// automated repair.
	Authoring Classification = iota
	// Compliance marks a failure where the production code disagrees with a
	// correctly-expressed expectation. Never auto-repaired; a human must
	// adjudicate.
	Compliance
)

// Classifier decides which class a failure belongs to from its error text.
// It is an interface so the policy can be swapped without touching the loop.
type Classifier interface {
	Classify(errText string) Classification
}

// DefaultAssertionMarker matches the failure text Python's unittest emits for
// assertion failures.
const DefaultAssertionMarker = "AssertionError"

// MarkerClassifier classifies by substring: failure text containing the
// marker is a compliance issue, anything else an authoring issue. A black-box
// test run exposes no structured exception metadata, so an assertion raised
// by the generated test's own logic bug is indistinguishable from one raised
// by wrong production output — a known limitation of this heuristic.
type MarkerClassifier struct {
	Marker string // defaults to DefaultAssertionMarker
}

func (c *MarkerClassifier) Classify(errText string) Classification {
	marker := c.Marker
	if marker == "" {
		marker = DefaultAssertionMarker
	}
	if strings.Contains(errText, marker) {
		return Compliance
	}
	return Authoring
}
