package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateShippedData(t *testing.T) {
	v := NewStateValidator()
	require.NoError(t, v.validateDir("../../data"))
}

func TestValidateDateCheck(t *testing.T) {
	tests := []struct {
		name      string
		dateCheck string
		wantError bool
	}{
		{"empty is skipped", "", false},
		{"whole weeks after start", "2024-02-16", false},
		{"start date itself", "2023-11-17", false},
		{"off the weekly grid", "2024-02-14", true},
		{"before the start date", "2023-11-10", true},
		{"not a date", "next friday", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewStateValidator()
			v.validateDateCheck("daily_routine", 0, tt.dateCheck)
			if tt.wantError {
				assert.NotEmpty(t, v.errors)
			} else {
				assert.Empty(t, v.errors)
			}
		})
	}
}
