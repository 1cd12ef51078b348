package transport

// Envelope wraps every API response, success and error alike.
type Envelope struct {
	Status string      `json:"status"`
	Code   string      `json:"code,omitempty"`
	Data   interface{} `json:"data,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// NewSuccess returns a success envelope around the given payload.
func NewSuccess(data interface{}) Envelope {
	return Envelope{Status: "success", Data: data}
}

// NewError returns an error envelope carrying a machine code and message.
func NewError(code, message string) Envelope {
	return Envelope{Status: "error", Code: code, Error: message}
}
