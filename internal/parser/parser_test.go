package parser

import (
	"archive/zip"
	"bytes"
	"errors"
	"testing"

	"quiz-trainer/internal/domain"
)

const sampleText = "What is 2 + 2?\r\n====\r\n3\r\n====\r\n# 4\r\n====\r\n5\r\n++++\r\n" +
	"Capital of France?\n=====\n#Paris\n====\nRome\n" +
	"++++++\n\n++++\nNo options here\n++++\n====\n#orphan option\n"

func TestParseText(t *testing.T) {
	qs := ParseText(sampleText)
	if len(qs) != 2 {
		t.Fatalf("expected 2 questions, got %d: %+v", len(qs), qs)
	}

	first := qs[0]
	if first.ID != "1" || first.Text != "What is 2 + 2?" {
		t.Fatalf("unexpected first question %+v", first)
	}
	if len(first.Options) != 3 {
		t.Fatalf("expected 3 options, got %+v", first.Options)
	}
	correct, ok := first.CorrectOption()
	if !ok || correct.Text != "4" || correct.ID != "2" {
		t.Fatalf("expected option 2 \"4\" correct, got %+v", correct)
	}

	second := qs[1]
	if second.ID != "2" || second.Text != "Capital of France?" {
		t.Fatalf("unexpected second question %+v", second)
	}
	if second.Options[0].Text != "Paris" || !second.Options[0].Correct || second.Options[0].ID != "1" {
		t.Fatalf("unexpected option %+v", second.Options[0])
	}
}

func TestParseTextSkipsEmptyOptions(t *testing.T) {
	qs := ParseText("Q\n====\n\n====\nB\n")
	if len(qs) != 1 || len(qs[0].Options) != 1 {
		t.Fatalf("expected one option, got %+v", qs)
	}
	if qs[0].Options[0].ID != "2" {
		t.Fatalf("option id must keep its position, got %s", qs[0].Options[0].ID)
	}
}

func TestParseByExtension(t *testing.T) {
	qs, err := Parse("questions.TXT", []byte("\xef\xbb\xbfQ\n====\n#A\n"))
	if err != nil {
		t.Fatalf("parse txt: %v", err)
	}
	if len(qs) != 1 || qs[0].Text != "Q" {
		t.Fatalf("unexpected questions %+v", qs)
	}

	if _, err := Parse("questions.doc", []byte("x")); !errors.Is(err, domain.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestParseDocx(t *testing.T) {
	content := buildDocx(t, []string{"Largest planet?", "====", "#Jupiter", "====", "Mars", "++++", "Smallest?", "====", "#Mercury"})

	qs, err := Parse("quiz.docx", content)
	if err != nil {
		t.Fatalf("parse docx: %v", err)
	}
	if len(qs) != 2 {
		t.Fatalf("expected 2 questions, got %+v", qs)
	}
	if qs[0].Text != "Largest planet?" || qs[0].Options[0].Text != "Jupiter" || !qs[0].Options[0].Correct {
		t.Fatalf("unexpected first question %+v", qs[0])
	}
}

func TestParseDocxRejectsGarbage(t *testing.T) {
	if _, err := Parse("quiz.docx", []byte("not a zip")); err == nil {
		t.Fatalf("expected error for invalid docx")
	}
}

func buildDocx(t *testing.T, paras []string) []byte {
	t.Helper()
	var body bytes.Buffer
	body.WriteString(`<?xml version="1.0" encoding="UTF-8"?><w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, p := range paras {
		body.WriteString(`<w:p><w:r><w:t>`)
		body.WriteString(p)
		body.WriteString(`</w:t></w:r></w:p>`)
	}
	body.WriteString(`</w:body></w:document>`)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create(docxBody)
	if err != nil {
		t.Fatalf("create entry: %v", err)
	}
	if _, err := w.Write(body.Bytes()); err != nil {
		t.Fatalf("write entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}
