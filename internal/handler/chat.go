package handler

import (
	"github.com/deppfellow/registry/internal/model"
	"github.com/deppfellow/registry/internal/server"
	"github.com/deppfellow/registry/internal/service"
	"github.com/labstack/echo/v4"
)

// ChatHandler forwards a question to the assistant.
type ChatHandler struct {
	Handler
	assistant *service.AssistantService
}

func NewChatHandler(s *server.Server, assistant *service.AssistantService) *ChatHandler {
	return &ChatHandler{
		Handler:   NewHandler(s),
		assistant: assistant,
	}
}

// Chat answers GET /chat?message=... with {"info": reply}.
func (h *ChatHandler) Chat(c echo.Context, req *model.ChatRequest) (*model.ChatResponse, error) {
	reply, err := h.assistant.Chat(c.Request().Context(), req.Message)
	if err != nil {
		return nil, err
	}
	return &model.ChatResponse{Info: reply}, nil
}
