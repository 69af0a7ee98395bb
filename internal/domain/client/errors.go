package client

import "errors"

// Gate errors. Reason codes are what the access endpoint reports.
var (
	ErrEmailRequired        = errors.New("email is required")
	ErrInvalidEmail         = errors.New("email is not a valid address")
	ErrNoCustomerAccount    = errors.New("no customer account for this email")
	ErrNotEnabled           = errors.New("mypunctoo is not enabled for this client yet")
	ErrNoActiveScanTag      = errors.New("client has no active scan tag")
	ErrClientContextMissing = errors.New("client context missing from request")
)

const (
	ReasonNoCustomerAccount = "NO_CUSTOMER_ACCOUNT"
	ReasonNotEnabled        = "NOT_ENABLED_YET"
	ReasonNoActiveScanTag   = "NO_ACTIVE_SCANTAG"
)

// Reason maps a gate error to its reason code, or "" when err is not a
// gate refusal.
func Reason(err error) string {
	switch {
	case errors.Is(err, ErrNoCustomerAccount):
		return ReasonNoCustomerAccount
	case errors.Is(err, ErrNotEnabled):
		return ReasonNotEnabled
	case errors.Is(err, ErrNoActiveScanTag):
		return ReasonNoActiveScanTag
	}
	return ""
}
