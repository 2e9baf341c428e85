package commons

// Response is the envelope every service operation returns. Data is a
// pointer so a failed operation carries no partial payload.
type Response[T any] struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Data    *T       `json:"data,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

func SuccessResponse[T any](message string, data T) Response[T] {
	return Response[T]{
		Success: true,
		Message: message,
		Data:    &data,
	}
}

func ErrorResponse[T any](message string, details ...string) Response[T] {
	return Response[T]{
		Success: false,
		Message: message,
		Errors:  details,
	}
}
