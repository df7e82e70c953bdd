package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRunReport_Duration(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	r := &RunReport{StartedAt: start, FinishedAt: start.Add(1500 * time.Millisecond)}

	assert.Equal(t, 1500*time.Millisecond, r.Duration())
}

func TestRunReport_HasErrors(t *testing.T) {
	tests := []struct {
		name   string
		report RunReport
		want   bool
	}{
		{"clean run", RunReport{}, false},
		{"skipped file", RunReport{FileErrors: []FileError{{File: "surah_1.json", Err: errors.New("boom")}}}, true},
		{"aborted index", RunReport{IndexErr: ErrIndexAborted}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.report.HasErrors())
		})
	}
}
