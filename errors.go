package htmlsanitizer

import "fmt"

// PolicyContractError reports a TagPolicy that returned a decision the
// sanitizer cannot honour, such as keeping an element the schema does not
// know. It signals a bug in the policy, not in the input.
type PolicyContractError struct {
	TagName string
	Reason  string
}

func (e *PolicyContractError) Error() string {
	return fmt.Sprintf("htmlsanitizer: tag policy contract violated for <%s>: %s", e.TagName, e.Reason)
}
