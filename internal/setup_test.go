package internal

import (
	"testing"
)

func Test_getModeFromArgs(t *testing.T) {
	testCases := []struct {
		given   string
		want    Mode
		wantErr bool
	}{
		{given: "study", want: STUDY},
		{given: "s", want: STUDY},
		{given: "loop", want: LOOP},
		{given: "l", want: LOOP},
		{given: "serve", want: SERVE},
		{given: "url", want: URL},
		{given: "u", want: URL},
		{given: "help", want: HELP},
		{given: "h", want: HELP},
		{given: "version", want: VERSION},
		{given: "v", want: VERSION},
		{given: "bogus", wantErr: true},
	}
	for _, tC := range testCases {
		t.Run(tC.given, func(t *testing.T) {
			got, err := getModeFromArgs(tC.given)
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
				t.Fatalf("expected: %v, got: %v", tC.want, got)
			}
		})
	}
}

func Test_loadCrewDefinition(t *testing.T) {
	t.Run("it should fall back to the config dir default", func(t *testing.T) {
		confDir := t.TempDir()
		def, err := loadCrewDefinition(confDir, "")
		if err != nil {
			t.Fatalf("got error: %v", err)
		}
		if len(def.Tasks) != 3 {
			t.Errorf("expected the default three stage crew, got %v tasks", len(def.Tasks))
		}
	})

	t.Run("it should error on a missing explicit path", func(t *testing.T) {
		_, err := loadCrewDefinition(t.TempDir(), "/no/such/crew.yaml")
		if err == nil {
			t.Fatal("expected error")
		}
	})
}
