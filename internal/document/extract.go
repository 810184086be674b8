// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package document extracts statements from input files for batch
// validation. Plain text is read directly; PDFs go through text extraction
// first.
package document

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// maxPDFPages caps extraction on very large documents.
const maxPDFPages = 50

// Document is the extracted content of one input file.
type Document struct {
	Filename   string
	Text       string
	Statements []string
	PageCount  int
}

// Extract reads path and splits its text into statements. Files with a .pdf
// extension are parsed as PDF; everything else is treated as plain text.
func Extract(path string) (*Document, error) {
	doc := &Document{Filename: filepath.Base(path)}

	var text string
	var err error
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		text, doc.PageCount, err = extractPDF(path)
	} else {
		text, err = extractPlain(path)
	}
	if err != nil {
		return nil, err
	}

	doc.Text = cleanText(text)
	doc.Statements = SplitStatements(doc.Text)
	return doc, nil
}

func extractPlain(path string) (string, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("reading document: %w", err)
	}
	return string(data), nil
}

func extractPDF(path string) (string, int, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", 0, fmt.Errorf("opening PDF: %w", err)
	}
	defer f.Close()

	pageCount := r.NumPage()
	if pageCount > maxPDFPages {
		pageCount = maxPDFPages
	}

	var buf bytes.Buffer
	for i := 1; i <= pageCount; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			continue
		}
		if buf.Len() > 0 {
			buf.WriteString("\n")
		}
		buf.WriteString(text)
	}
	return buf.String(), pageCount, nil
}

// SplitStatements breaks text into individual statements for validation.
// Sentence terminators and blank lines both end a statement.
func SplitStatements(text string) []string {
	var statements []string
	var current strings.Builder

	flush := func() {
		s := strings.TrimSpace(current.String())
		if s != "" {
			statements = append(statements, s)
		}
		current.Reset()
	}

	lines := strings.Split(text, "\n")
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			flush()
			continue
		}
		for _, r := range line {
			current.WriteRune(r)
			if r == '.' || r == '!' || r == '?' {
				flush()
			}
		}
		if current.Len() > 0 {
			current.WriteString(" ")
		}
	}
	flush()

	return statements
}

// cleanText normalizes whitespace while keeping line structure.
func cleanText(text string) string {
	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.ReplaceAll(line, "\t", " ")
		for strings.Contains(line, "  ") {
			line = strings.ReplaceAll(line, "  ", " ")
		}
		cleaned = append(cleaned, strings.TrimSpace(line))
	}
	return strings.Join(cleaned, "\n")
}
