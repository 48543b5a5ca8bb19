package actions

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStateTransitions(t *testing.T) {
	tests := []struct {
		from, to State
		want     bool
	}{
		{StateParsingArgs, StateValidatingTool, true},
		{StateParsingArgs, StateFiltering, false},
		{StateValidatingTool, StateFiltering, true},
		{StateFiltering, StateDryRunExit, true},
		{StateFiltering, StateConfirming, true},
		{StateFiltering, StateInitializing, true},
		{StateFiltering, StateStaging, false},
		{StateConfirming, StateInitializing, true},
		{StateInitializing, StateStaging, true},
		{StateStaging, StateCommitting, true},
		{StateStaging, StatePushing, false},
		{StateCommitting, StatePushing, true},
		{StatePushing, StateDone, true},
		{StatePushing, StateFailed, true},
		{StateParsingArgs, StateFailed, true},
		{StateDone, StateFailed, false},
		{StateDryRunExit, StateInitializing, false},
		{StateFailed, StateFailed, false},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+"->"+tt.to.String(), func(t *testing.T) {
			require.Equal(t, tt.want, tt.from.CanTransition(tt.to))
		})
	}
}

func TestStateTerminal(t *testing.T) {
	for _, s := range []State{StateDone, StateDryRunExit, StateFailed} {
		require.True(t, s.Terminal(), s.String())
	}
	for _, s := range []State{StateParsingArgs, StateFiltering, StatePushing} {
		require.False(t, s.Terminal(), s.String())
	}
	require.Equal(t, "Unknown", State(99).String())
}
