package ux

import (
	"bytes"
	"strings"
	"testing"
)

type blogSummary struct {
	Title    string `json:"title" yaml:"title"`
	Comments int    `json:"comments" yaml:"comments"`
}

func TestNewFormatter(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		wantErr bool
	}{
		{"json format", "json", false},
		{"yaml format", "yaml", false},
		{"text format", "text", false},
		{"empty format defaults to text", "", false},
		{"unknown format", "xml", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFormatter(tt.format, nil)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewFormatter() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	formatter, err := NewFormatter("json", &FormatterOptions{Writer: &buf})
	if err != nil {
		t.Fatalf("NewFormatter() error = %v", err)
	}

	data := blogSummary{Title: "Go Concurrency Patterns", Comments: 7}
	if err := formatter.Format(data); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, `"title": "Go Concurrency Patterns"`) {
		t.Errorf("JSON output missing expected field: %s", output)
	}
	if !strings.Contains(output, `"comments": 7`) {
		t.Errorf("JSON output missing expected field: %s", output)
	}
}

func TestJSONFormatterCompact(t *testing.T) {
	var buf bytes.Buffer
	formatter, err := NewFormatter("json", &FormatterOptions{
		Writer:  &buf,
		Compact: true,
	})
	if err != nil {
		t.Fatalf("NewFormatter() error = %v", err)
	}

	data := blogSummary{Title: "Go Concurrency Patterns", Comments: 7}
	if err := formatter.Format(data); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	output := buf.String()
	// Compact JSON should be single line (no indentation)
	if strings.Count(output, "\n") > 1 {
		t.Errorf("Compact JSON should be single line, got: %s", output)
	}
}

func TestYAMLFormatter(t *testing.T) {
	var buf bytes.Buffer
	formatter, err := NewFormatter("yaml", &FormatterOptions{Writer: &buf})
	if err != nil {
		t.Fatalf("NewFormatter() error = %v", err)
	}

	data := blogSummary{Title: "Go Concurrency Patterns", Comments: 7}
	if err := formatter.Format(data); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "title: Go Concurrency Patterns") {
		t.Errorf("YAML output missing expected field: %s", output)
	}
	if !strings.Contains(output, "comments: 7") {
		t.Errorf("YAML output missing expected field: %s", output)
	}
}

func TestTextFormatter(t *testing.T) {
	tests := []struct {
		name    string
		data    interface{}
		want    string
		wantErr bool
	}{
		{
			name: "string data",
			data: "3 blogs",
			want: "3 blogs",
		},
		{
			name:    "struct without String method",
			data:    blogSummary{Title: "Go Concurrency Patterns", Comments: 7},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			formatter, err := NewFormatter("text", &FormatterOptions{Writer: &buf})
			if err != nil {
				t.Fatalf("NewFormatter() error = %v", err)
			}

			err = formatter.Format(tt.data)
			if (err != nil) != tt.wantErr {
				t.Errorf("Format() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if !tt.wantErr {
				output := strings.TrimSpace(buf.String())
				if output != tt.want {
					t.Errorf("Format() output = %q, want %q", output, tt.want)
				}
			}
		})
	}
}
