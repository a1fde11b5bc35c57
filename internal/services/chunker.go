package services

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// TextChunker splits a question bank document into individual entries.
type TextChunker interface {
	ChunkText(text string, maxChunkSize int) []string
}

type textChunker struct{}

func NewTextChunker() TextChunker {
	return &textChunker{}
}

var bulletPrefix = regexp.MustCompile(`^(?:\d+[.)]|[-*•])\s*`)

// ChunkText implements TextChunker. Every non-empty line is one entry with its
// numbering or bullet removed; lines longer than maxChunkSize are split on
// sentence boundaries.
func (tc *textChunker) ChunkText(text string, maxChunkSize int) []string {
	if maxChunkSize <= 0 {
		maxChunkSize = 1000
	}

	var chunks []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(bulletPrefix.ReplaceAllString(strings.TrimSpace(line), ""))
		if line == "" {
			continue
		}

		if utf8.RuneCountInString(line) <= maxChunkSize {
			chunks = append(chunks, line)
			continue
		}

		var current strings.Builder
		for _, sentence := range splitIntoSentences(line) {
			if current.Len() > 0 && current.Len()+len(sentence)+1 > maxChunkSize {
				chunks = append(chunks, current.String())
				current.Reset()
			}
			if current.Len() > 0 {
				current.WriteString(" ")
			}
			current.WriteString(sentence)
		}
		if current.Len() > 0 {
			chunks = append(chunks, current.String())
		}
	}

	return chunks
}

// splitIntoSentences keeps the terminating punctuation with each sentence.
func splitIntoSentences(text string) []string {
	var result []string
	start := 0
	for i, r := range text {
		if r == '.' || r == '!' || r == '?' {
			if s := strings.TrimSpace(text[start : i+1]); s != "" {
				result = append(result, s)
			}
			start = i + 1
		}
	}
	if s := strings.TrimSpace(text[start:]); s != "" {
		result = append(result, s)
	}
	return result
}
