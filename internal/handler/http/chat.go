package http

import (
	"net/http"

	"github.com/lastnext24/lastnext24-backend-go/internal/domain/chat"
	"github.com/lastnext24/lastnext24-backend-go/internal/handler/http/response"
)

type ChatHandler interface {
	Chat(w http.ResponseWriter, r *http.Request)
}

type chatHandlerImpl struct {
	chatService chat.Service
}

func NewChatHandler(chatService chat.Service) ChatHandler {
	return &chatHandlerImpl{chatService: chatService}
}

// Chat handles POST /api/chat
func (h *chatHandlerImpl) Chat(w http.ResponseWriter, r *http.Request) {
	var req chat.ChatRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.chatService.Chat(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}
