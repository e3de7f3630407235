package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pitstop/internal/domains/booking/model"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		value   string
		want    model.Status
		wantErr bool
	}{
		{value: "pending", want: model.StatusPending},
		{value: "confirmed", want: model.StatusConfirmed},
		{value: "completed", want: model.StatusCompleted},
		{value: "cancelled", want: model.StatusCancelled},
		{value: "rejected", wantErr: true},
		{value: "", wantErr: true},
		{value: "Pending", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, err := model.ParseStatus(tt.value)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStatus_CanTransitionTo(t *testing.T) {
	allowed := map[model.Status][]model.Status{
		model.StatusPending:   {model.StatusConfirmed, model.StatusCancelled},
		model.StatusConfirmed: {model.StatusCompleted, model.StatusCancelled},
		model.StatusCompleted: {},
		model.StatusCancelled: {},
	}

	statuses := []model.Status{
		model.StatusPending,
		model.StatusConfirmed,
		model.StatusCompleted,
		model.StatusCancelled,
	}

	for from, nexts := range allowed {
		for _, to := range statuses {
			want := false

			for _, next := range nexts {
				if next == to {
					want = true
				}
			}

			assert.Equalf(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestStatus_CompletionRequiresConfirmation(t *testing.T) {
	assert.False(t, model.StatusPending.CanTransitionTo(model.StatusCompleted))
	assert.True(t, model.StatusConfirmed.CanTransitionTo(model.StatusCompleted))
}

func TestStatus_TerminalStatesAreFinal(t *testing.T) {
	for _, terminal := range []model.Status{model.StatusCompleted, model.StatusCancelled} {
		assert.True(t, terminal.IsTerminal())
		assert.False(t, terminal.HoldsSlot())

		for _, next := range []model.Status{
			model.StatusPending,
			model.StatusConfirmed,
			model.StatusCompleted,
			model.StatusCancelled,
		} {
			assert.Falsef(t, terminal.CanTransitionTo(next), "%s -> %s", terminal, next)
		}
	}
}

func TestStatus_HoldsSlot(t *testing.T) {
	assert.True(t, model.StatusPending.HoldsSlot())
	assert.True(t, model.StatusConfirmed.HoldsSlot())
	assert.False(t, model.StatusCompleted.HoldsSlot())
	assert.False(t, model.StatusCancelled.HoldsSlot())

	assert.Equal(t, []string{"pending", "confirmed"}, model.NonTerminalStatuses())
}
