package utils

import (
	"os"
	"testing"
)

func TestPrompt(t *testing.T) {
	testCases := []struct {
		name         string
		stdinReplace string
		args         []string
		stdin        string
		want         string
		wantErr      bool
	}{
		{
			name:    "no arguments and no stdin",
			args:    []string{"study"},
			wantErr: true,
		},
		{
			name: "arguments only",
			args: []string{"study", "photosynthesis", "basics"},
			want: "photosynthesis basics",
		},
		{
			name:  "stdin only",
			args:  []string{"study"},
			stdin: "text from stdin",
			want:  "text from stdin",
		},
		{
			name:  "arguments and stdin are joined",
			args:  []string{"study", "explain this:"},
			stdin: "piped chapter",
			want:  "explain this: piped chapter",
		},
		{
			name:         "stdinReplace substitutes the token",
			stdinReplace: "TEXT",
			args:         []string{"study", "summarize", "TEXT", "briefly"},
			stdin:        "piped chapter",
			want:         "summarize piped chapter briefly",
		},
	}

	for _, tC := range testCases {
		t.Run(tC.name, func(t *testing.T) {
			if tC.stdin != "" {
				oldStdin := os.Stdin
				t.Cleanup(func() { os.Stdin = oldStdin })
				r, w, err := os.Pipe()
				if err != nil {
					t.Fatal(err)
				}
				os.Stdin = r
				if _, err := w.WriteString(tC.stdin); err != nil {
					t.Fatal(err)
				}
				w.Close()
			}

			got, err := Prompt(tC.stdinReplace, tC.args)

			if tC.wantErr {
				if err == nil {
					t.Fatal("expected error")
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
