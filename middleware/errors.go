package middleware

type ClientError struct {
	MessageKey    string            `json:"messageKey"`
	MessageParams map[string]string `json:"messageParams,omitempty"`
	Message       string            `json:"message"`
}

var (
	ErrInvalidRequestBody = ClientError{
		MessageKey: "invalidRequestBody",
		Message:    "Invalid request body",
	}
	ErrUnableToParseRequestBody = ClientError{
		MessageKey: "unableToParseRequestBody",
		Message:    "Unable to parse request body",
	}
	ErrInvalidOrMissingRequestParameter = ClientError{
		MessageKey: "invalidOrMissingRequestParameter",
		Message:    "Invalid or missing request parameter: {{param}}",
	}
	ErrPageOutOfRange = ClientError{
		MessageKey: "pageOutOfRange",
		Message:    "The requested page is outside of the available pages",
	}
	ErrNavigationDisabled = ClientError{
		MessageKey: "navigationDisabled",
		Message:    "There is no page to navigate to",
	}
	ErrNoDraftOpen = ClientError{
		MessageKey: "noDraftOpen",
		Message:    "No log draft is open",
	}
	ErrSubmissionInProgress = ClientError{
		MessageKey: "submissionInProgress",
		Message:    "The previous log is still being submitted",
	}
	ErrInvalidMetadata = ClientError{
		MessageKey: "invalidMetadata",
		Message:    "Metadata must be a JSON object",
	}
	ErrDashboardUnavailable = ClientError{
		MessageKey: "dashboardUnavailable",
		Message:    "The dashboard did not respond in time",
	}
)

// WithParam returns a copy of e carrying param as its {{param}} value.
func (e ClientError) WithParam(param string) ClientError {
	e.MessageParams = map[string]string{"param": param}
	return e
}
