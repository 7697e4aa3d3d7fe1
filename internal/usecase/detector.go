package usecase

import (
	"context"

	"github.com/eliteGoblin/adloop/internal/domain"
)

// Detector samples the foreground and classifies it.
// Nothing is cached; every call asks the device again.
type Detector struct {
	inspector  domain.ForegroundInspector
	classifier domain.ContextClassifier
}

// NewDetector creates a detector.
func NewDetector(inspector domain.ForegroundInspector, classifier domain.ContextClassifier) *Detector {
	return &Detector{inspector: inspector, classifier: classifier}
}

// Foreground returns a fresh foreground identifier.
func (d *Detector) Foreground(ctx context.Context) string {
	return d.inspector.Current(ctx)
}

// Inspect returns a fresh foreground identifier together with its verdict.
func (d *Detector) Inspect(ctx context.Context) (string, domain.Verdict) {
	id := d.inspector.Current(ctx)
	return id, d.classifier.Classify(id)
}

// AdPlaying reports whether the screen currently shows a foreign context.
func (d *Detector) AdPlaying(ctx context.Context) bool {
	return d.classifier.IsForeign(d.inspector.Current(ctx))
}

// Classifier exposes the underlying classifier.
func (d *Detector) Classifier() domain.ContextClassifier {
	return d.classifier
}
