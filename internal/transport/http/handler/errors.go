package handler

const (
	errInternalServer  = "Internal server error"
	errListingNotFound = "Listing not found"
	errContactNotPaid  = "Purchase contact access to see seller details"
	errNotOwner        = "You can only manage your own listings"
	errSignInInvalid   = "Sign-in link is invalid or expired"

	errVerificationInvalid = "Invalid or expired verification link"
	errVerificationExpired = "This verification link has expired. Please request a new one."
	errActivationFailed    = "Failed to activate listing. Please try again."
)
