package domain

// Operation names an action guarded by the access policy.
type Operation string

const (
	OpReadProfile   Operation = "read_profile"
	OpUpdateProfile Operation = "update_profile"
	OpReadResults   Operation = "read_results"
	OpSubmitAttempt Operation = "submit_attempt"

	OpCreateAccount    Operation = "create_account"
	OpChangeRole       Operation = "change_role"
	OpManageTestPapers Operation = "manage_test_papers"
	OpManageQuestions  Operation = "manage_questions"
	OpViewAnswerKey    Operation = "view_answer_key"
	OpReviewResults    Operation = "review_results"
	OpCorrectResult    Operation = "correct_result"
	OpDeleteResult     Operation = "delete_result"
)

// selfPermitted lists what a standard account may do to resources it owns.
var selfPermitted = map[Operation]bool{
	OpReadProfile:   true,
	OpUpdateProfile: true,
	OpReadResults:   true,
	OpSubmitAttempt: true,
}

type Decision bool

const (
	Allow Decision = true
	Deny  Decision = false
)

// CanAccess decides whether a requester may perform op on a resource owned by
// resourceOwnerID. Administrators may do everything; standard accounts only
// self-permitted operations on their own resources.
func CanAccess(requesterRole Role, requesterID, resourceOwnerID string, op Operation) Decision {
	if requesterRole == RoleAdministrator {
		return Allow
	}
	if requesterRole == RoleStandard &&
		requesterID != "" &&
		requesterID == resourceOwnerID &&
		selfPermitted[op] {
		return Allow
	}
	return Deny
}

// Authorize is CanAccess for a principal, returning a FORBIDDEN error on deny.
func Authorize(p Principal, resourceOwnerID string, op Operation) error {
	if CanAccess(p.Role, p.AccountID, resourceOwnerID, op) == Allow {
		return nil
	}
	return NewForbiddenError("not permitted to perform this operation").WithContext("operation", string(op))
}
