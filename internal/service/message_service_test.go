package service

import (
	"testing"
	"time"
)

func TestDeleteAllowedWindow(t *testing.T) {
	sent := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		elapsed time.Duration
		want    bool
	}{
		{"just sent", 0, true},
		{"one second before the limit", 599 * time.Second, true},
		{"exactly at the limit", 600 * time.Second, true},
		{"one second past the limit", 601 * time.Second, false},
		{"an hour later", time.Hour, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeleteAllowed(sent, sent.Add(tt.elapsed)); got != tt.want {
				t.Errorf("DeleteAllowed after %v = %v, want %v", tt.elapsed, got, tt.want)
			}
		})
	}
}
