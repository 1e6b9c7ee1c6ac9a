package config

import "testing"

func TestCheckRequires(t *testing.T) {
	tests := []struct {
		name     string
		requires string
		version  string
		wantErr  bool
	}{
		{"no constraint", "", "1.0.0", false},
		{"satisfied", ">= 0.2.0", "0.3.1", false},
		{"satisfied with v prefix", ">= 0.2.0", "v0.3.1", false},
		{"too old", ">= 0.2.0", "0.1.9", true},
		{"dev build skips", ">= 9.0.0", "dev", false},
		{"bad constraint", "not a constraint", "1.0.0", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Requires = tt.requires
			err := cfg.CheckRequires(tt.version)
			if tt.wantErr && err == nil {
				t.Fatalf("CheckRequires(%q) with %q: expected error", tt.version, tt.requires)
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("CheckRequires(%q) with %q: unexpected error: %v", tt.version, tt.requires, err)
			}
		})
	}
}
