package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectionState(t *testing.T) {
	tests := []struct {
		state SelectionState
		name  string
		value bool
		known bool
	}{
		{NotSelected, "not-selected", false, true},
		{Selected, "selected", true, true},
		{PartiallySelected, "partial", false, false},
		{SelectionState(9), "unknown", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.state.String())

			value, known := tt.state.Bool()
			assert.Equal(t, tt.value, value)
			assert.Equal(t, tt.known, known)
		})
	}
}
