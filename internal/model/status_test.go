package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatusValid(t *testing.T) {
	assert.True(t, StatusSubmitted.Valid())
	assert.True(t, StatusReadyForCollection.Valid())
	assert.False(t, Status("Lost In Transit").Valid())
	assert.False(t, Status("").Valid())
}

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from    Status
		to      Status
		allowed bool
	}{
		{StatusSubmitted, StatusProbationVerified, true},
		{StatusSubmitted, StatusRenewalVerified, true},
		{StatusSubmitted, StatusRejected, true},
		{StatusSubmitted, StatusPaymentConfirmed, false},
		{StatusProbationVerified, StatusDeviceLocated, true},
		{StatusDeviceLocated, StatusLimitChecked, true},
		{StatusLimitChecked, StatusPaymentConfirmed, true},
		{StatusLimitChecked, StatusAssetCodeAssigned, false},
		{StatusPaymentConfirmed, StatusAssetCodeAssigned, true},
		{StatusAssetCodeAssigned, StatusMRCreated, true},
		{StatusMRCreated, StatusReadyForCollection, true},
		{StatusReadyForCollection, StatusCollected, true},
		{StatusCollected, StatusMRClosed, true},
		{StatusCollected, StatusSubmitted, false},
		{StatusCompleted, StatusRejected, false},
		{StatusRejected, StatusSubmitted, false},
	}

	for _, tc := range cases {
		assert.Equalf(t, tc.allowed, tc.from.CanTransition(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestStatusTransitionSameStatusIsNoOp(t *testing.T) {
	for status := range allowedNext {
		assert.Truef(t, status.CanTransition(status), "%s -> %s", status, status)
	}
}

func TestTerminalStatuses(t *testing.T) {
	assert.True(t, StatusCollected.Terminal())
	assert.True(t, StatusMRClosed.Terminal())
	assert.True(t, StatusCompleted.Terminal())
	assert.False(t, StatusRejected.Terminal())
	assert.False(t, StatusReadyForCollection.Terminal())
}

func TestRenewalDateFrom(t *testing.T) {
	collected := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2027, 3, 15, 10, 0, 0, 0, time.UTC), RenewalDateFrom(collected))
}

func TestContractEndFrom(t *testing.T) {
	start := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2027, 1, 31, 0, 0, 0, 0, time.UTC), ContractEndFrom(start, 24))
}

func TestOutstandingExcess(t *testing.T) {
	handset := Handset{ExcessAmount: 1500}
	assert.True(t, handset.OutstandingExcess())

	handset.PaymentConfirmed = true
	assert.False(t, handset.OutstandingExcess())

	covered := Handset{ExcessAmount: 0}
	assert.False(t, covered.OutstandingExcess())
}
