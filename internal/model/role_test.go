package model

import "testing"

func TestParseRole(t *testing.T) {
	tests := []struct {
		raw     string
		want    Role
		wantErr bool
	}{
		{"estudiante", RoleStudent, false},
		{"profesor", RoleTeacher, false},
		{"admin", RoleAdmin, false},
		{"alumno", "", true},
		{"", "", true},
		{"Estudiante", "", true}, // tags are case-sensitive on the wire
	}

	for _, tt := range tests {
		got, err := ParseRole(tt.raw)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseRole(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
		}
		if got != tt.want {
			t.Fatalf("ParseRole(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}
