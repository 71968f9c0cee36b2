package response

// Envelope statuses. "partial" means the request succeeded but some parts of it did not.
const (
	StatusSuccess = "success"
	StatusPartial = "partial"
	StatusError   = "error"
)

type Response struct {
	Status  string `json:"status"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

type ErrorResponse struct {
	Status  string `json:"status"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func SuccessResponse(data any) Response {
	return Response{Status: StatusSuccess, Data: data}
}

func MessageResponse(message string) Response {
	return Response{Status: StatusSuccess, Message: message}
}

// PartialResponse wraps a result where some items failed; data should say which.
func PartialResponse(data any, message string) Response {
	return Response{Status: StatusPartial, Data: data, Message: message}
}

func ErrorResponseWithDetails(code, details string) ErrorResponse {
	return ErrorResponse{Status: StatusError, Error: code, Details: details}
}
