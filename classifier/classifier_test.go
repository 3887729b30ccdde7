package classifier

import (
	"testing"

	"community-bot/models"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		isSource bool
		want     models.Classification
	}{
		{"source post with url", "my new build https://example.com/post", true, models.ClassRouteCandidate},
		{"source post with uppercase url", "HTTPS://EXAMPLE.COM", true, models.ClassRouteCandidate},
		{"source post without url", "hello everyone, look at this", true, models.ClassLinkViolation},
		{"empty source post", "", true, models.ClassLinkViolation},
		{"coin request", "how do I get COINS here?", false, models.ClassCoinRequest},
		{"faucet request", "is the faucet still running", false, models.ClassCoinRequest},
		{"balance request", "what's my balance", false, models.ClassCoinRequest},
		{"help request", "can someone help me with this", false, models.ClassHelpRequest},
		{"help phrasing", "How do I set this up?", false, models.ClassHelpRequest},
		{"routine chat", "good morning all", false, models.ClassNotApplicable},
		{"url outside source channel", "see https://example.com", false, models.ClassNotApplicable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.text, "chan-1", tt.isSource))
		})
	}
}

func TestFirstURLHost(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"https url", "check https://blog.example.com/post/1 out", "blog.example.com"},
		{"http url", "old one http://example.org", "example.org"},
		{"first of two", "http://first.example https://second.example", "first.example"},
		{"https before http in text", "https://a.example then http://b.example", "a.example"},
		{"url with port", "https://example.com:8080/x", "example.com"},
		{"uppercase scheme and host", "HTTPS://EXAMPLE.COM/post", "example.com"},
		{"mixed case scheme", "see Https://Blog.Example.com here", "blog.example.com"},
		{"no url", "nothing to see here", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FirstURLHost(tt.text))
		})
	}
}
