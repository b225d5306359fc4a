package issues

import (
	"crypto/sha256"
	"fmt"
)

// Issue is one validation finding reported by the validate command. The
// IssueID is a stable hash of the offending field and value so repeated
// validation runs produce identical reports.
type Issue struct {
	IssueID   string
	IssueType IssueType
	Field     string
	Value     string
	Message   string
}

type IssueType string

const (
	IssueTypeNone                  IssueType = "None"
	IssueTypeInvalidRootID         IssueType = "InvalidRootID"
	IssueTypeInvalidSubscriptionID IssueType = "InvalidSubscriptionID"
	IssueTypeMissingLocation       IssueType = "MissingLocation"
	IssueTypeDuplicateLocation     IssueType = "DuplicateLocation"
	IssueTypeUnknownService        IssueType = "UnknownService"
	IssueTypeMalformedResourceID   IssueType = "MalformedResourceID"
)

func (issueType IssueType) IsValidIssueType() bool {
	switch issueType {
	case IssueTypeNone,
		IssueTypeInvalidRootID,
		IssueTypeInvalidSubscriptionID,
		IssueTypeMissingLocation,
		IssueTypeDuplicateLocation,
		IssueTypeUnknownService,
		IssueTypeMalformedResourceID:
		return true
	default:
		return false
	}
}

func NewIssue(issueType IssueType, field string, value string, message string) Issue {
	return Issue{
		IssueID:   getIdentityHash(field + "/" + value),
		IssueType: issueType,
		Field:     field,
		Value:     value,
		Message:   message,
	}
}

func getIdentityHash(id string) string {
	sha256ID := sha256.Sum256([]byte(id))
	return fmt.Sprintf("%x", sha256ID)[0:7]
}
