package utils

import (
	"regexp"
	"testing"
	"time"
)

func TestNextSccID(t *testing.T) {
	cases := []struct {
		name   string
		lastID string
		want   string
	}{
		{"empty store starts at one", "", "SCC001"},
		{"increments last issued", "SCC001", "SCC002"},
		{"pads to three digits", "SCC009", "SCC010"},
		{"grows past three digits", "SCC999", "SCC1000"},
		{"unparseable suffix restarts", "SCCxyz", "SCC001"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NextSccID(tc.lastID); got != tc.want {
				t.Errorf("NextSccID(%q) = %q, want %q", tc.lastID, got, tc.want)
			}
		})
	}
}

func TestFallbackSccID(t *testing.T) {
	now := time.Unix(1735689600, 0)
	if got := FallbackSccID(now); got != "SCC1735689600" {
		t.Errorf("FallbackSccID = %q, want SCC1735689600", got)
	}
}

func TestGeneratePassword(t *testing.T) {
	hexUpper := regexp.MustCompile(`^[0-9A-F]+$`)

	t.Run("default length", func(t *testing.T) {
		p := GeneratePassword(0)
		if len(p) != 16 {
			t.Errorf("len = %d, want 16", len(p))
		}
	})

	t.Run("uppercase hex alphabet", func(t *testing.T) {
		for i := 0; i < 20; i++ {
			p := GeneratePassword(16)
			if len(p) != 16 || !hexUpper.MatchString(p) {
				t.Fatalf("password %q is not 16 uppercase hex chars", p)
			}
		}
	})

	t.Run("odd length", func(t *testing.T) {
		if p := GeneratePassword(7); len(p) != 7 {
			t.Errorf("len = %d, want 7", len(p))
		}
	})

	t.Run("successive passwords differ", func(t *testing.T) {
		if GeneratePassword(16) == GeneratePassword(16) {
			t.Error("two generated passwords were identical")
		}
	})
}

func TestProblemStatementIDs(t *testing.T) {
	if got := CustomPsID(1); got != "CUS_01" {
		t.Errorf("CustomPsID(1) = %q, want CUS_01", got)
	}
	if got := CustomPsID(12); got != "CUS_12" {
		t.Errorf("CustomPsID(12) = %q, want CUS_12", got)
	}
	if got := CatalogPsID(6); got != "HO2K25006" {
		t.Errorf("CatalogPsID(6) = %q, want HO2K25006", got)
	}
	if got := CatalogPsID(123); got != "HO2K25123" {
		t.Errorf("CatalogPsID(123) = %q, want HO2K25123", got)
	}
}
