package response

// Response is the envelope used by middleware and a few non-fres handlers.
type Response struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func Success(code, message string, data any) Response {
	return Response{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

func Error(code, message string, data any) Response {
	return Response{
		Code:    code,
		Message: message,
		Data:    data,
	}
}
