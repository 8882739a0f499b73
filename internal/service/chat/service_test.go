package chat

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/lastnext24/lastnext24-backend-go/internal/domain/chat"
	"github.com/lastnext24/lastnext24-backend-go/internal/domain/report"
	"github.com/lastnext24/lastnext24-backend-go/internal/fixtures"
	"github.com/lastnext24/lastnext24-backend-go/internal/pkg/cache"
	"github.com/lastnext24/lastnext24-backend-go/internal/pkg/llm"
	"github.com/lastnext24/lastnext24-backend-go/internal/service/visibility"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCompleter struct {
	answer  string
	err     error
	calls   int
	prompt  string
	options llm.CompletionOptions
}

func (f *fakeCompleter) Complete(ctx context.Context, op string, prompt string, opts llm.CompletionOptions) (string, error) {
	f.calls++
	f.prompt = prompt
	f.options = opts
	return f.answer, f.err
}

type reportsSource []report.Report

func (s reportsSource) AllReports(ctx context.Context) ([]report.Report, error) {
	return s, nil
}

func newService(completer llm.Completer, c *cache.Cache[chat.ChatResponse], reports ...report.Report) chat.Service {
	dir := fixtures.Directory()
	if reports == nil {
		reports = fixtures.DemoReports()
	}
	return NewChatService(visibility.NewResolver(dir), dir, reportsSource(reports), completer, c)
}

func intPtr(i int) *int { return &i }

func TestChatService_Chat_CTO(t *testing.T) {
	fake := &fakeCompleter{answer: "Teams are on track."}
	svc := newService(fake, nil)

	resp, err := svc.Chat(context.Background(), chat.ChatRequest{
		Query:       "authentication progress",
		UserRole:    "CTO",
		ContextDate: "2025-09-11",
	})

	require.NoError(t, err)
	assert.Equal(t, "Teams are on track.", resp.Response)
	require.Len(t, resp.Sources, chat.DefaultMaxSources)
	for i := 1; i < len(resp.Sources); i++ {
		assert.GreaterOrEqual(t, resp.Sources[i-1].RelevanceScore, resp.Sources[i].RelevanceScore)
	}
	assert.False(t, resp.Cached)
	assert.Equal(t, llm.EstimateTokens("Teams are on track."), resp.TokenCount)

	assert.Contains(t, fake.prompt, "helping a CTO understand organizational reports")
	assert.Contains(t, fake.prompt, "User Question: authentication progress")
	assert.Contains(t, fake.prompt, "[Source 1] ")
	assert.Contains(t, fake.prompt, "[Source 5] ")
	assert.NotContains(t, fake.prompt, "[Source 6] ")
	assert.Equal(t, llm.CompletionOptions{MaxTokens: 800, Temperature: 0.4}, fake.options)
}

func TestChatService_Chat_EngineerSeesOwnReport(t *testing.T) {
	fake := &fakeCompleter{answer: "ok"}
	svc := newService(fake, nil)

	resp, err := svc.Chat(context.Background(), chat.ChatRequest{
		Query: "what did I do", UserRole: "Engineer", UserID: "eng-001", ContextDate: "2025-09-11",
	})

	require.NoError(t, err)
	require.Len(t, resp.Sources, 1)
	assert.Equal(t, "eng-001", resp.Sources[0].UserID)
	assert.Equal(t, "Alex Rivera", resp.Sources[0].UserName)
	assert.Equal(t, "Engineer", resp.Sources[0].UserRole)
	assert.LessOrEqual(t, len([]rune(resp.Sources[0].ContentSnippet)), 150)
}

func TestChatService_Chat_NoVisibleReports(t *testing.T) {
	fake := &fakeCompleter{answer: "Nothing to report."}
	svc := newService(fake, nil)

	resp, err := svc.Chat(context.Background(), chat.ChatRequest{
		Query: "status", UserRole: "Manager", UserID: "mgr-008", ContextDate: "2025-09-11",
	})

	require.NoError(t, err)
	assert.NotNil(t, resp.Sources)
	assert.Empty(t, resp.Sources)
	assert.Contains(t, fake.prompt, noReportsContext)
}

func TestChatService_Chat_UnknownAuthorAndSnippet(t *testing.T) {
	fake := &fakeCompleter{answer: "ok"}
	long := strings.Repeat("deploy ", 40)
	svc := newService(fake, nil, report.Report{ID: "r1", UserID: "ghost", Date: "2025-10-01", Content: long})

	resp, err := svc.Chat(context.Background(), chat.ChatRequest{
		Query: "deploy", UserRole: "Intern", ContextDate: "2025-10-01", MaxSources: intPtr(3),
	})

	require.NoError(t, err)
	require.Len(t, resp.Sources, 1)
	s := resp.Sources[0]
	assert.Equal(t, "Unknown User", s.UserName)
	assert.Equal(t, "Unknown Role", s.UserRole)
	assert.Equal(t, long[:147]+"...", s.ContentSnippet)
	assert.Equal(t, 1.0, s.RelevanceScore)
}

func TestChatService_Chat_EmptyCompletion(t *testing.T) {
	svc := newService(&fakeCompleter{answer: ""}, nil)

	resp, err := svc.Chat(context.Background(), chat.ChatRequest{Query: "q", UserRole: "CTO", ContextDate: "2025-09-11"})

	require.NoError(t, err)
	assert.Equal(t, "Unable to generate response", resp.Response)
}

func TestChatService_Chat_Errors(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		svc := newService(nil, nil)
		_, err := svc.Chat(context.Background(), chat.ChatRequest{Query: "q", UserRole: "CTO"})
		var opErr *llm.OperationError
		require.ErrorAs(t, err, &opErr)
		assert.Equal(t, "chat", opErr.Op)
		assert.ErrorIs(t, err, llm.ErrNotConfigured)
	})

	t.Run("validation", func(t *testing.T) {
		svc := newService(&fakeCompleter{}, nil)
		_, err := svc.Chat(context.Background(), chat.ChatRequest{Query: " ", UserRole: ""})
		assert.Error(t, err)
	})

	t.Run("upstream", func(t *testing.T) {
		boom := &llm.OperationError{Op: "chat", Err: errors.New("429")}
		svc := newService(&fakeCompleter{err: boom}, nil)
		_, err := svc.Chat(context.Background(), chat.ChatRequest{Query: "q", UserRole: "CTO"})
		assert.ErrorIs(t, err, boom)
	})
}

func TestChatService_Chat_Cached(t *testing.T) {
	c, err := cache.New[chat.ChatResponse](10, time.Minute)
	require.NoError(t, err)
	defer c.Close()
	fake := &fakeCompleter{answer: "first"}
	svc := newService(fake, c)
	req := chat.ChatRequest{Query: "status", UserRole: "CTO", ContextDate: "2025-09-11"}

	_, err = svc.Chat(context.Background(), req)
	require.NoError(t, err)
	c.Wait()
	fake.answer = "second"
	resp, err := svc.Chat(context.Background(), req)

	require.NoError(t, err)
	assert.True(t, resp.Cached)
	assert.Equal(t, "first", resp.Response)
	assert.Equal(t, 1, fake.calls)
}

func TestRelevanceScore(t *testing.T) {
	tests := []struct {
		query, content string
		want           float64
	}{
		{"blocked", "I am Blocked today", 1},
		{"auth api", "worked on auth", 0.5},
		{"deployment", "deploy", 1},
		{"xyz", "nothing here", 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, RelevanceScore(tt.query, tt.content), 1e-9, "%q vs %q", tt.query, tt.content)
	}
}
