package response

var (
	ErrInvalidRequestFormat = ErrorResponse{
		Status:  StatusError,
		Error:   "invalid_request",
		Details: "Invalid request format",
	}

	ErrAuthenticationRequired = ErrorResponse{
		Status:  StatusError,
		Error:   "authentication_required",
		Details: "Bearer token is required",
	}

	ErrAdminRequired = ErrorResponse{
		Status:  StatusError,
		Error:   "admin_required",
		Details: "Admin access required",
	}

	ErrVerificationTimeout = ErrorResponse{
		Status:  StatusError,
		Error:   "verification_timeout",
		Details: "Admin verification timed out",
	}

	ErrVerificationFailed = ErrorResponse{
		Status:  StatusError,
		Error:   "verification_failed",
		Details: "Admin verification failed",
	}

	ErrInvalidPostID = ErrorResponse{
		Status:  StatusError,
		Error:   "invalid_post_id",
		Details: "Post ID must be a UUID",
	}

	ErrPostNotFound = ErrorResponse{
		Status:  StatusError,
		Error:   "post_not_found",
		Details: "Blog post not found",
	}

	ErrPostExists = ErrorResponse{
		Status:  StatusError,
		Error:   "post_exists",
		Details: "A post with this slug already exists",
	}

	ErrInvalidAutomationID = ErrorResponse{
		Status:  StatusError,
		Error:   "invalid_automation_id",
		Details: "Automation ID must be a UUID",
	}

	ErrInternal = ErrorResponse{
		Status:  StatusError,
		Error:   "internal_error",
		Details: "Internal server error",
	}
)
