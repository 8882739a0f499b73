package chat

import "context"

type Service interface {
	Chat(ctx context.Context, req ChatRequest) (ChatResponse, error)
}
