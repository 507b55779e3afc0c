package common

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatPostDate(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{"single digit day", time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC), "March 5, 2024"},
		{"double digit day", time.Date(2023, 12, 31, 23, 59, 0, 0, time.UTC), "December 31, 2023"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatPostDate(tt.in))
		})
	}
}

func TestCombine(t *testing.T) {
	assert.NoError(t, Combine(nil, nil))

	e1 := errors.New("first")
	e2 := errors.New("second")
	err := Combine(e1, nil, e2)
	assert.ErrorIs(t, err, e1)
	assert.ErrorIs(t, err, e2)
}
