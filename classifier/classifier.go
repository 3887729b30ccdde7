// Package classifier tags incoming messages so the dispatcher can hand them
// to the right component. Classification is a pure function of the message
// text and whether it arrived in the configured source channel; anything
// that matches nothing falls through as not applicable, it never errors.
package classifier

import (
	"net/url"
	"strings"

	"community-bot/models"
)

var coinKeywords = []string{"coin", "faucet", "airdrop", "balance"}

var helpKeywords = []string{"help", "how do i", "stuck", "question"}

// Classify assigns a tag to a message given its text and channel. In the
// source channel a post without a URL is a link violation and everything
// else is a route candidate; outside it, keyword matching picks coin and
// help requests, case-insensitively. The channel identity is part of the
// contract so per-channel keyword sets can be added without touching
// callers; the current sets key on text alone.
func Classify(text, channelID string, isSourceChannel bool) models.Classification {
	lower := strings.ToLower(text)

	if isSourceChannel {
		if !containsURL(lower) {
			return models.ClassLinkViolation
		}
		return models.ClassRouteCandidate
	}

	for _, kw := range coinKeywords {
		if strings.Contains(lower, kw) {
			return models.ClassCoinRequest
		}
	}
	for _, kw := range helpKeywords {
		if strings.Contains(lower, kw) {
			return models.ClassHelpRequest
		}
	}
	return models.ClassNotApplicable
}

func containsURL(lower string) bool {
	return strings.Contains(lower, "http://") || strings.Contains(lower, "https://")
}

// FirstURLHost extracts the host of the first URL in text, lowercased, or ""
// if there is none. Used to derive thread names. The scheme is matched
// case-insensitively, like Classify.
func FirstURLHost(text string) string {
	lower := strings.ToLower(text)
	idx := strings.Index(lower, "http://")
	if i := strings.Index(lower, "https://"); i != -1 && (idx == -1 || i < idx) {
		idx = i
	}
	if idx == -1 {
		return ""
	}

	raw := text[idx:]
	if end := strings.IndexAny(raw, " \t\n\r"); end != -1 {
		raw = raw[:end]
	}

	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}
