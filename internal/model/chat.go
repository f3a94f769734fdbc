package model

// ChatRequest is the free-text question sent to the assistant.
type ChatRequest struct {
	Message string `query:"message" json:"message" validate:"required"`
}

func (r *ChatRequest) Validate() error {
	return validate.Struct(r)
}

// ChatResponse wraps the assistant's final reply.
type ChatResponse struct {
	Info string `json:"info"`
}
