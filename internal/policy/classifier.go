package policy

import (
	"regexp"
	"strings"

	"github.com/eliteGoblin/adloop/internal/domain"
)

// adActivityPattern is applied only to the activity part of an identifier.
var adActivityPattern = regexp.MustCompile(`(?i)(?:AdActivity$|Fullscreen|Interstitial|Rewarded)`)

// Classifier implements domain.ContextClassifier.
// Anything that is not provably the game is foreign.
type Classifier struct {
	gamePackage string
	sig         Signatures
}

// NewClassifier creates a classifier for one game package.
func NewClassifier(gamePackage string, sig Signatures) *Classifier {
	return &Classifier{gamePackage: gamePackage, sig: sig}
}

// Classify applies the rules in order; the first match wins.
// Danger-list and activity-name checks run before the generic keyword
// checks so ambiguous names are not missed.
func (c *Classifier) Classify(id string) domain.Verdict {
	if id == "" {
		return domain.Verdict{Foreign: false, Reason: domain.ReasonUnknown}
	}

	if c.gamePackage != "" && strings.Contains(id, c.gamePackage) {
		return domain.Verdict{Foreign: false, Reason: domain.ReasonGame}
	}

	if containsAny(id, c.sig.DangerousActivities) || containsAny(id, c.sig.DangerousPackages) {
		return domain.Verdict{Foreign: true, Reason: domain.ReasonDangerous}
	}

	if adActivityPattern.MatchString(activityPart(id)) {
		return domain.Verdict{Foreign: true, Reason: domain.ReasonAdActivity}
	}

	lower := strings.ToLower(id)
	if containsAnyFold(lower, c.sig.AdPackages) || containsAnyFold(lower, c.sig.AdKeywords) {
		return domain.Verdict{Foreign: true, Reason: domain.ReasonAdSDK}
	}

	if _, ok := c.BrowserIn(id); ok {
		return domain.Verdict{Foreign: true, Reason: domain.ReasonBrowser}
	}

	return domain.Verdict{Foreign: true, Reason: domain.ReasonUnrecognized}
}

// IsForeign reports whether id is anything other than the game.
func (c *Classifier) IsForeign(id string) bool {
	return c.Classify(id).Foreign
}

// BrowserIn returns the first browser package contained in id.
func (c *Classifier) BrowserIn(id string) (string, bool) {
	if id == "" {
		return "", false
	}
	for _, b := range c.sig.Browsers {
		if strings.Contains(id, b) {
			return b, true
		}
	}
	return "", false
}

// activityPart returns the text after "package/", or the whole id.
func activityPart(id string) string {
	if i := strings.Index(id, "/"); i >= 0 {
		return id[i+1:]
	}
	return id
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// containsAnyFold expects lower already lower-cased.
func containsAnyFold(lower string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(lower, strings.ToLower(sub)) {
			return true
		}
	}
	return false
}

// Ensure Classifier implements domain.ContextClassifier.
var _ domain.ContextClassifier = (*Classifier)(nil)
