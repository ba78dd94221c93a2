package query

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRead(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []Record
		wantErr bool
	}{
		{
			name:  "two rows",
			input: "Ames,IA\nDes Moines,IA\n",
			want: []Record{
				{City: "Ames", State: "IA"},
				{City: "Des Moines", State: "IA"},
			},
		},
		{
			name:  "quoted city and extra column",
			input: "\"Winston-Salem, East\",NC,ignored\n",
			want:  []Record{{City: "Winston-Salem, East", State: "NC"}},
		},
		{
			name:  "surrounding whitespace trimmed",
			input: " Ames , IA \n",
			want:  []Record{{City: "Ames", State: "IA"}},
		},
		{
			name:  "empty input",
			input: "",
			want:  []Record{},
		},
		{
			name:    "missing state column",
			input:   "Ames,IA\nReno\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(strings.NewReader(tt.input))
			if tt.wantErr {
				if err == nil {
					t.Fatal("Read() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Read() unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Read() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "city_state.csv")
	if err := os.WriteFile(path, []byte("Ames,IA\n"), 0644); err != nil {
		t.Fatal(err)
	}

	records, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if len(records) != 1 || records[0].String() != "Ames, IA" {
		t.Errorf("LoadFile() = %v", records)
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.csv")); err == nil {
		t.Error("LoadFile() on missing file expected error")
	}
}
