package ruleset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(rs *Ruleset)
		wantSub string
	}{
		{
			name:    "category weights not summing to one",
			mutate:  func(rs *Ruleset) { rs.Categories[0].Weight = 0.5 },
			wantSub: "category weights sum",
		},
		{
			name:    "member weights not summing to one",
			mutate:  func(rs *Ruleset) { rs.Categories[0].Tests[0].Weight = 0.9 },
			wantSub: "test weights sum",
		},
		{
			name:    "interpretation bands misordered",
			mutate:  func(rs *Ruleset) { rs.Interpretation.Good = 95 },
			wantSub: "interpretation",
		},
		{
			name:    "misordered bands",
			mutate:  func(rs *Ruleset) { rs.Tables.PFI.Bands[0].Limit = 40 },
			wantSub: "misordered",
		},
		{
			name: "push-up bucket gap",
			mutate: func(rs *Ruleset) {
				// Drop the male 30-39 bucket, leaving an age gap.
				buckets := rs.Tables.PushUp.Buckets[:0]
				for _, b := range rs.Tables.PushUp.Buckets {
					if b.Gender == "male" && b.AgeMin == 30 {
						continue
					}
					buckets = append(buckets, b)
				}
				rs.Tables.PushUp.Buckets = buckets
			},
			wantSub: "uncovered",
		},
		{
			name:    "mcq weights crowd out the physical share",
			mutate:  func(rs *Ruleset) { rs.MCQ["lifestyle"] = 0.4 },
			wantSub: "physical share",
		},
		{
			name:    "wall factor above modified factor",
			mutate:  func(rs *Ruleset) { rs.PushUp.WallFactor = 0.8 },
			wantSub: "wall_factor",
		},
		{
			name:    "eyes-closed weight below eyes-open",
			mutate:  func(rs *Ruleset) { rs.Balance.OpenWeight, rs.Balance.ClosedWeight = 0.3, 0.2 },
			wantSub: "eyes-closed",
		},
		{
			name:    "unknown table direction",
			mutate:  func(rs *Ruleset) { rs.Tables.ToeTouch.Direction = "sideways" },
			wantSub: "direction",
		},
		{
			name:    "negative fee rate",
			mutate:  func(rs *Ruleset) { rs.Fees.VATRate = -0.1 },
			wantSub: "fees",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rs := Default()
			tc.mutate(rs)
			err := rs.Validate()
			if err == nil {
				t.Fatal("Validate() = nil, want config error")
			}
			cerr, ok := err.(*ConfigError)
			if !ok {
				t.Fatalf("error type %T, want *ConfigError", err)
			}
			if !strings.Contains(cerr.Error(), tc.wantSub) {
				t.Errorf("error %q does not mention %q", cerr.Error(), tc.wantSub)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	t.Run("round trips the embedded default", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "rules.yaml")
		if err := os.WriteFile(path, defaultRules, 0o644); err != nil {
			t.Fatal(err)
		}
		rs, err := Load(path)
		if err != nil {
			t.Fatalf("Load() error: %v", err)
		}
		if len(rs.Categories) != 4 {
			t.Errorf("got %d categories, want 4", len(rs.Categories))
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
			t.Fatal("Load() accepted a missing file")
		}
	})

	t.Run("corrupted ruleset is fatal", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		if err := os.WriteFile(path, []byte("version: 1\ncategory_points: 0\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); err == nil {
			t.Fatal("Load() accepted a corrupted ruleset")
		}
	})
}
