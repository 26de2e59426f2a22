package scanner

import (
	"context"
	"strings"
)

// Classifier flags unsafe page content. The production deployment backs this
// with pretrained model inference on the browser side; the built-in keyword
// classifier is the host-independent fallback.
type Classifier interface {
	// ClassifyText returns the matched category and true when the text is
	// unsafe for one of the enabled categories.
	ClassifyText(ctx context.Context, text string, categories map[string]bool) (string, bool)
	// ClassifyImage does the same for an image reference (URL or alt text).
	ClassifyImage(ctx context.Context, ref string, categories map[string]bool) (string, bool)
}

// KeywordClassifier matches category keyword lists against lowercased
// content.
type KeywordClassifier struct {
	patterns map[string][]string
}

func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{
		patterns: map[string][]string{
			"adult": {
				"porn", "xxx", "nsfw", "explicit content",
			},
			"violence": {
				"gore", "graphic violence", "beheading",
			},
			"drugs": {
				"buy drugs", "narcotics for sale", "illegal drugs",
			},
			"gambling": {
				"online casino", "sports betting", "poker real money",
			},
		},
	}
}

func (c *KeywordClassifier) match(content string, categories map[string]bool) (string, bool) {
	lower := strings.ToLower(content)
	for category, patterns := range c.patterns {
		if !categories[category] {
			continue
		}
		for _, p := range patterns {
			if strings.Contains(lower, p) {
				return category, true
			}
		}
	}
	return "", false
}

func (c *KeywordClassifier) ClassifyText(_ context.Context, text string, categories map[string]bool) (string, bool) {
	return c.match(text, categories)
}

func (c *KeywordClassifier) ClassifyImage(_ context.Context, ref string, categories map[string]bool) (string, bool) {
	return c.match(ref, categories)
}
