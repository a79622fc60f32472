package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRole_IsValid(t *testing.T) {
	assert.True(t, RoleUser.IsValid())
	assert.True(t, RoleAdmin.IsValid())
	assert.True(t, RoleMentor.IsValid())
	assert.True(t, RoleTeamMember.IsValid())
	assert.False(t, Role("SUPERUSER").IsValid())
	assert.False(t, Role("").IsValid())
}

func TestProgressStatus_CanAdvanceTo(t *testing.T) {
	tests := []struct {
		name    string
		from    ProgressStatus
		to      ProgressStatus
		allowed bool
	}{
		{"one step forward", ProgressPaymentPending, ProgressPersonalDiscoveryPending, true},
		{"skipping stages forward", ProgressPaymentPending, ProgressEssaysPending, true},
		{"straight to completed", ProgressPaymentPending, ProgressCompleted, true},
		{"middle to completed", ProgressScholarshipMatrixPending, ProgressCompleted, true},
		{"backward", ProgressCVAlignmentPending, ProgressPersonalDiscoveryPending, false},
		{"same stage", ProgressEssaysPending, ProgressEssaysPending, false},
		{"completed is terminal", ProgressCompleted, ProgressPaymentPending, false},
		{"unknown target", ProgressPaymentPending, ProgressStatus("REVIEW_PENDING"), false},
		{"unknown source", ProgressStatus("REVIEW_PENDING"), ProgressCompleted, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanAdvanceTo(tt.to))
		})
	}
}

func TestProgressStatus_IsValid(t *testing.T) {
	assert.True(t, ProgressPaymentPending.IsValid())
	assert.True(t, ProgressCompleted.IsValid())
	assert.False(t, ProgressStatus("DONE").IsValid())
	assert.False(t, ProgressStatus("").IsValid())
}
