package chat

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/lastnext24/lastnext24-backend-go/internal/domain/chat"
	"github.com/lastnext24/lastnext24-backend-go/internal/domain/report"
	"github.com/lastnext24/lastnext24-backend-go/internal/domain/user"
	"github.com/lastnext24/lastnext24-backend-go/internal/pkg/cache"
	"github.com/lastnext24/lastnext24-backend-go/internal/pkg/llm"
	"github.com/lastnext24/lastnext24-backend-go/internal/service/visibility"
	"golang.org/x/sync/errgroup"
)

const (
	noReportsContext   = "No relevant reports found for the specified time period."
	emptyCompletion    = "Unable to generate response"
	snippetLength      = 150
	scoringConcurrency = 8
)

var completionOptions = llm.CompletionOptions{MaxTokens: 800, Temperature: 0.4}

type ChatServiceImpl struct {
	resolver *visibility.Resolver
	dir      *user.Directory
	source   report.Source
	llm      llm.Completer
	cache    *cache.Cache[chat.ChatResponse]
	now      func() time.Time
}

// NewChatService wires the chat pipeline. completer may be nil when no API
// key is configured; responseCache may be nil to disable caching.
func NewChatService(resolver *visibility.Resolver, dir *user.Directory, source report.Source, completer llm.Completer, responseCache *cache.Cache[chat.ChatResponse]) chat.Service {
	return &ChatServiceImpl{
		resolver: resolver,
		dir:      dir,
		source:   source,
		llm:      completer,
		cache:    responseCache,
		now:      time.Now,
	}
}

type scored struct {
	report report.Report
	score  float64
}

func (s *ChatServiceImpl) Chat(ctx context.Context, req chat.ChatRequest) (chat.ChatResponse, error) {
	if err := req.Validate(); err != nil {
		return chat.ChatResponse{}, err
	}
	if s.llm == nil {
		return chat.ChatResponse{}, &llm.OperationError{Op: "chat", Err: llm.ErrNotConfigured}
	}

	date := req.ContextDate
	if date == "" {
		date = s.now().UTC().Format("2006-01-02")
	}
	maxSources := chat.DefaultMaxSources
	if req.MaxSources != nil {
		maxSources = *req.MaxSources
	}

	key := cache.Key("chat", req.Query, req.UserRole, req.UserID, date, strconv.Itoa(maxSources))
	if cached, ok := s.cache.Get(key); ok {
		cached.Cached = true
		return cached, nil
	}

	start := s.now()

	all, err := s.source.AllReports(ctx)
	if err != nil {
		return chat.ChatResponse{}, fmt.Errorf("failed to load reports: %w", err)
	}
	visible := s.resolver.Resolve(all, user.Role(req.UserRole), req.UserID, date)

	context, sources, err := s.buildContext(ctx, req.Query, visible, maxSources)
	if err != nil {
		return chat.ChatResponse{}, err
	}

	answer, err := s.llm.Complete(ctx, "chat", chatPrompt(req.Query, req.UserRole, context), completionOptions)
	if err != nil {
		return chat.ChatResponse{}, err
	}
	if answer == "" {
		answer = emptyCompletion
	}

	resp := chat.ChatResponse{
		Response:       answer,
		Sources:        sources,
		ProcessingTime: s.now().Sub(start).Milliseconds(),
		TokenCount:     llm.EstimateTokens(answer),
	}
	s.cache.Set(key, resp)

	slog.Info("chat answered", "role", req.UserRole, "date", date, "visible_reports", len(visible), "sources", len(sources))
	return resp, nil
}

// buildContext ranks reports against query and renders the top maxSources as
// numbered sources
func (s *ChatServiceImpl) buildContext(ctx context.Context, query string, reports []report.Report, maxSources int) (string, []chat.Source, error) {
	if len(reports) == 0 {
		return noReportsContext, []chat.Source{}, nil
	}

	results := make([]scored, len(reports))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(scoringConcurrency)
	for i, r := range reports {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = scored{report: r, score: RelevanceScore(query, r.Content)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", nil, fmt.Errorf("failed to score reports: %w", err)
	}

	// Completion order of the fan-out is irrelevant, ties keep input order
	sort.SliceStable(results, func(i, j int) bool { return results[i].score > results[j].score })
	if maxSources < len(results) {
		results = results[:maxSources]
	}

	sources := make([]chat.Source, 0, len(results))
	blocks := make([]string, 0, len(results))
	for i, r := range results {
		name, role := "Unknown User", "Unknown Role"
		if u, ok := s.dir.GetByID(r.report.UserID); ok {
			name, role = u.Name, string(u.Role)
		}
		sources = append(sources, chat.Source{
			UserID:         r.report.UserID,
			UserName:       name,
			UserRole:       role,
			Date:           r.report.Date,
			ContentSnippet: truncate(r.report.Content, snippetLength),
			RelevanceScore: r.score,
		})
		blocks = append(blocks, fmt.Sprintf("[Source %d] %s (%s): %s", i+1, name, role, r.report.Content))
	}
	return strings.Join(blocks, "\n\n"), sources, nil
}

// RelevanceScore is the share of query words that overlap some content word,
// where overlap means either word contains the other. Words are split on
// single spaces after lower-casing.
func RelevanceScore(query, content string) float64 {
	queryWords := strings.Split(strings.ToLower(query), " ")
	contentWords := strings.Split(strings.ToLower(content), " ")

	matches := 0
	for _, w := range queryWords {
		for _, c := range contentWords {
			if strings.Contains(c, w) || strings.Contains(w, c) {
				matches++
				break
			}
		}
	}
	return min(float64(matches)/float64(len(queryWords)), 1.0)
}

func truncate(content string, maxLength int) string {
	runes := []rune(content)
	if len(runes) <= maxLength {
		return content
	}
	return string(runes[:maxLength-3]) + "..."
}

func chatPrompt(query, role, context string) string {
	return fmt.Sprintf(`You are an AI assistant helping a %[2]s understand organizational reports and insights. Based on the provided context from team reports, answer the user's question in a helpful, professional manner.

Context from recent reports:
%[3]s

User Question: %[1]s

Please provide a comprehensive response that:
1. Directly answers the question based on the available information
2. References specific team members and their reports when relevant
3. Identifies any patterns or trends across reports
4. Highlights any blockers or issues that need attention
5. Provides actionable insights appropriate for a %[2]s role

If the context doesn't contain enough information to fully answer the question, acknowledge this limitation and suggest what additional information might be helpful.

Response:`, query, role, context)
}
