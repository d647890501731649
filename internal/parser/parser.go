// Package parser reads question files in the separator format:
// questions split by "++++", options split by "====", correct option prefixed with "#".
package parser

import (
	"bytes"
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"quiz-trainer/internal/domain"
)

var (
	questionSeparator = regexp.MustCompile(`\+{4,}`)
	optionSeparator   = regexp.MustCompile(`={4,}`)
)

const correctMarker = "#"

// Parse extracts questions from a file, choosing the text extractor by extension.
func Parse(filename string, content []byte) ([]domain.Question, error) {
	text, err := ExtractText(filename, content)
	if err != nil {
		return nil, err
	}
	return ParseText(text), nil
}

// ExtractText returns the plain text of a .txt, .docx or .pdf file.
func ExtractText(filename string, content []byte) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt":
		return string(bytes.TrimPrefix(content, []byte("\xef\xbb\xbf"))), nil
	case ".docx":
		text, err := docxText(content)
		if err != nil {
			return "", fmt.Errorf("read docx: %w", err)
		}
		return text, nil
	case ".pdf":
		text, err := pdfText(content)
		if err != nil {
			return "", fmt.Errorf("read pdf: %w", err)
		}
		return text, nil
	default:
		return "", domain.ErrUnsupportedFormat
	}
}

// ParseText splits raw text into questions. Blocks without text or without any
// option are skipped; question ids are assigned sequentially from 1 and option
// ids are the option's position in its block.
func ParseText(text string) []domain.Question {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var questions []domain.Question
	nextID := 1
	for _, block := range questionSeparator.Split(text, -1) {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}

		parts := optionSeparator.Split(block, -1)
		prompt := strings.TrimSpace(parts[0])

		var options []domain.Option
		for i := 1; i < len(parts); i++ {
			optText := strings.TrimSpace(parts[i])
			if optText == "" {
				continue
			}
			correct := false
			if strings.HasPrefix(optText, correctMarker) {
				correct = true
				optText = strings.TrimSpace(strings.TrimPrefix(optText, correctMarker))
			}
			options = append(options, domain.Option{
				ID:      domain.ID(strconv.Itoa(i)),
				Text:    optText,
				Correct: correct,
			})
		}

		if prompt == "" || len(options) == 0 {
			continue
		}
		questions = append(questions, domain.Question{
			ID:      domain.ID(strconv.Itoa(nextID)),
			Text:    prompt,
			Options: options,
		})
		nextID++
	}
	return questions
}
