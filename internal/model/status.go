package model

// Status is a handset request's position in the approval/collection workflow.
type Status string

const (
	StatusSubmitted          Status = "Submitted"
	StatusProbationVerified  Status = "Probation Verified"
	StatusRenewalVerified    Status = "Renewal Verified"
	StatusDeviceLocated      Status = "Device Located"
	StatusLimitChecked       Status = "Limit Checked"
	StatusPaymentConfirmed   Status = "Payment Confirmed"
	StatusAssetCodeAssigned  Status = "Asset Code Assigned"
	StatusMRCreated          Status = "MR Created"
	StatusDeviceRetrieved    Status = "Device Retrieved"
	StatusReadyForCollection Status = "Ready for Collection"
	StatusCollected          Status = "Collected"
	StatusMRClosed           Status = "MR Closed"
	StatusCompleted          Status = "Completed"
	StatusRejected           Status = "Rejected"
)

// allowedNext is the single source of truth for forward movement through the
// workflow. Every handler validates against it before writing a new status.
var allowedNext = map[Status][]Status{
	StatusSubmitted:          {StatusProbationVerified, StatusRenewalVerified, StatusCollected, StatusRejected},
	StatusProbationVerified:  {StatusRenewalVerified, StatusDeviceLocated, StatusLimitChecked, StatusPaymentConfirmed, StatusRejected},
	StatusRenewalVerified:    {StatusDeviceLocated, StatusLimitChecked, StatusPaymentConfirmed, StatusRejected},
	StatusDeviceLocated:      {StatusLimitChecked, StatusPaymentConfirmed, StatusRejected},
	StatusLimitChecked:       {StatusPaymentConfirmed, StatusRejected},
	StatusPaymentConfirmed:   {StatusAssetCodeAssigned, StatusRejected},
	StatusAssetCodeAssigned:  {StatusMRCreated, StatusRejected},
	StatusMRCreated:          {StatusDeviceRetrieved, StatusReadyForCollection, StatusCollected},
	StatusDeviceRetrieved:    {StatusReadyForCollection, StatusCollected},
	StatusReadyForCollection: {StatusCollected},
	StatusCollected:          {StatusMRClosed, StatusCompleted},
	StatusMRClosed:           {StatusCompleted},
	StatusCompleted:          {},
	StatusRejected:           {},
}

// terminalStatuses end the workflow; no control card can be issued past them.
var terminalStatuses = map[Status]bool{
	StatusCollected: true,
	StatusMRClosed:  true,
	StatusCompleted: true,
}

func (s Status) Valid() bool {
	_, ok := allowedNext[s]
	return ok
}

func (s Status) Terminal() bool { return terminalStatuses[s] }

// CanTransition reports whether the workflow allows moving from s to next.
// Setting the same status again is a no-op and always allowed.
func (s Status) CanTransition(next Status) bool {
	if s == next {
		return true
	}
	for _, candidate := range allowedNext[s] {
		if candidate == next {
			return true
		}
	}
	return false
}
