package utils

import (
	"errors"
	"strings"
	"testing"
)

func Test_ReadMultiline(t *testing.T) {
	testCases := []struct {
		desc    string
		given   string
		want    string
		wantErr error
	}{
		{
			desc:  "two empty lines terminate the text",
			given: "line one\nline two\n\n\nignored",
			want:  "line one\nline two",
		},
		{
			desc:  "EOF terminates the text",
			given: "only line\n",
			want:  "only line",
		},
		{
			desc:  "inner single empty lines are kept",
			given: "para one\n\npara two\n\n\n",
			want:  "para one\n\npara two",
		},
		{
			desc:    "q exits",
			given:   "q\n",
			wantErr: ErrUserInitiatedExit,
		},
		{
			desc:    "quit exits",
			given:   "quit\n",
			wantErr: ErrUserInitiatedExit,
		},
		{
			desc:    "EOF without input exits",
			given:   "",
			wantErr: ErrUserInitiatedExit,
		},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			scanner := NewMultilineScanner(strings.NewReader(tC.given))
			got, err := ReadMultiline(scanner)
			if tC.wantErr != nil {
				if !errors.Is(err, tC.wantErr) {
					t.Fatalf("expected error: %v, got: %v", tC.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("got error: %v", err)
			}
			if got != tC.want {
				t.Fatalf("expected: %q, got: %q", tC.want, got)
			}
		})
	}
}

func Test_ReadMultiline_consecutiveReads(t *testing.T) {
	scanner := NewMultilineScanner(strings.NewReader("first text\n\n\nsecond text\n\n\n"))

	first, err := ReadMultiline(scanner)
	if err != nil {
		t.Fatalf("got error: %v", err)
	}
	if first != "first text" {
		t.Fatalf("expected: 'first text', got: %q", first)
	}

	second, err := ReadMultiline(scanner)
	if err != nil {
		t.Fatalf("got error: %v", err)
	}
	if second != "second text" {
		t.Fatalf("expected: 'second text', got: %q", second)
	}

	_, err = ReadMultiline(scanner)
	if !errors.Is(err, ErrUserInitiatedExit) {
		t.Fatalf("expected user initiated exit at EOF, got: %v", err)
	}
}
