package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"reflect"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/googleapis/gax-go/v2/apierror"
	"github.com/mihaimoje/aihack-2025-NeuroCore/config"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
)

// ErrOracleExhausted means every candidate model failed or returned
// unusable output. Callers recover with the heuristic fallback.
var ErrOracleExhausted = errors.New("all candidate models exhausted")

// ErrorKind classifies a provider-call failure. Retry logic keys off the
// kind, not error strings.
type ErrorKind int

const (
	KindTransport ErrorKind = iota
	KindRateLimited
	KindInvalidResponse
)

// OracleError wraps a failed generation attempt with its classification.
type OracleError struct {
	Kind  ErrorKind
	Model string
	Err   error
}

func (e *OracleError) Error() string {
	return fmt.Sprintf("oracle %s: %v", e.Model, e.Err)
}

func (e *OracleError) Unwrap() error { return e.Err }

// Generator is the single point where the generative-AI provider is
// called. The production implementation talks to the Gemini API; tests
// substitute fakes.
type Generator interface {
	GenerateContent(ctx context.Context, model, prompt string) (string, error)
}

type geminiGenerator struct {
	client *genai.Client
}

// NewGeminiGenerator builds the provider client once; pass the result into
// New rather than constructing clients per call.
func NewGeminiGenerator(ctx context.Context, apiKey string) (Generator, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("genai client: %w", err)
	}
	return &geminiGenerator{client: client}, nil
}

func (g *geminiGenerator) GenerateContent(ctx context.Context, model, prompt string) (string, error) {
	resp, err := g.client.GenerativeModel(model).GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", &OracleError{Kind: classifyProviderError(err), Model: model, Err: err}
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", &OracleError{Kind: KindInvalidResponse, Model: model, Err: errors.New("empty candidate")}
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	if b.Len() == 0 {
		return "", &OracleError{Kind: KindInvalidResponse, Model: model, Err: errors.New("no text parts in candidate")}
	}
	return b.String(), nil
}

// classifyProviderError maps quota signals (gRPC ResourceExhausted or HTTP
// 429, depending on transport) to KindRateLimited; anything else counts as
// a transport failure.
func classifyProviderError(err error) ErrorKind {
	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) {
		if st := apiErr.GRPCStatus(); st != nil && st.Code() == codes.ResourceExhausted {
			return KindRateLimited
		}
		if apiErr.HTTPCode() == 429 {
			return KindRateLimited
		}
	}
	var gErr *googleapi.Error
	if errors.As(err, &gErr) && gErr.Code == 429 {
		return KindRateLimited
	}
	return KindTransport
}

type unavailableGenerator struct{}

func (unavailableGenerator) GenerateContent(ctx context.Context, model, prompt string) (string, error) {
	return "", &OracleError{Kind: KindTransport, Model: model, Err: errors.New("no API key configured")}
}

// UnavailableGenerator always fails, forcing the heuristic fallback. Used
// when no provider key is configured.
func UnavailableGenerator() Generator {
	return unavailableGenerator{}
}

// Oracle runs one prompt through the model fallover chain. It holds no
// persistence handles; it is a pure function of (prompt, candidates) plus
// the injected Generator.
type Oracle struct {
	gen     Generator
	models  []string
	cfg     config.ScoringConfig
	sleep   func(time.Duration)
	timeout time.Duration
}

func NewOracle(gen Generator, cfg config.ScoringConfig) *Oracle {
	return &Oracle{
		gen:     gen,
		models:  cfg.Models,
		cfg:     cfg,
		sleep:   time.Sleep,
		timeout: cfg.OracleTimeout(),
	}
}

func errorKind(err error) ErrorKind {
	var oerr *OracleError
	if errors.As(err, &oerr) {
		return oerr.Kind
	}
	return KindTransport
}

// Generate tries each candidate model in order. A rate-limited attempt is
// retried against the same model with linear backoff; any other failure,
// or unparseable output, advances to the next candidate immediately. The
// first response that parses into out wins and no further candidates are
// billed. out must be a non-nil pointer.
func (o *Oracle) Generate(ctx context.Context, prompt string, out any) (string, error) {
	if len(o.models) == 0 {
		return "", ErrOracleExhausted
	}
	for _, model := range o.models {
		text, err := o.generateWithRetry(ctx, model, prompt)
		if err != nil {
			log.Printf("oracle: model %s failed: %v", model, err)
			continue
		}
		// Decode into a fresh value so a rejected candidate's partial
		// fields cannot bleed into the next candidate's result.
		fresh := reflect.New(reflect.TypeOf(out).Elem())
		if err := json.Unmarshal([]byte(stripCodeFences(text)), fresh.Interface()); err != nil {
			log.Printf("oracle: model %s returned unparseable output: %v", model, err)
			continue
		}
		reflect.ValueOf(out).Elem().Set(fresh.Elem())
		return model, nil
	}
	return "", ErrOracleExhausted
}

func (o *Oracle) generateWithRetry(ctx context.Context, model, prompt string) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= o.cfg.QuotaRetries; attempt++ {
		callCtx, cancel := context.WithTimeout(ctx, o.timeout)
		text, err := o.gen.GenerateContent(callCtx, model, prompt)
		cancel()
		if err == nil {
			return text, nil
		}
		lastErr = err
		// Only quota pressure earns a retry on the same model.
		if errorKind(err) != KindRateLimited || attempt == o.cfg.QuotaRetries {
			break
		}
		o.sleep(o.cfg.QuotaBackoff(attempt + 1))
	}
	return "", lastErr
}

// stripCodeFences removes a Markdown ```json wrapper if the model added
// one despite being told not to.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// oracleScore is the JSON shape the scoring prompt demands.
type oracleScore struct {
	Score           int      `json:"score"`
	RiskLevel       string   `json:"riskLevel"`
	Analysis        string   `json:"analysis"`
	Recommendations []string `json:"recommendations"`
}

func buildScorePrompt(v FeatureVector, displayName string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are assessing burnout risk for developer %q based on their recent activity.\n\n", displayName)
	fmt.Fprintf(&b, "Signals:\n")
	fmt.Fprintf(&b, "- commits in the last period: %d\n", v.CommitsCount)
	fmt.Fprintf(&b, "- open pull requests: %d\n", v.PullRequestsCount)
	fmt.Fprintf(&b, "- open issues: %d\n", v.IssuesCount)
	fmt.Fprintf(&b, "- tasks in progress: %d\n", v.TasksInProgress)
	fmt.Fprintf(&b, "- completed tasks: %d\n", v.CompletedTasks)
	fmt.Fprintf(&b, "- overdue tasks: %d\n", v.OverdueTasks)
	fmt.Fprintf(&b, "- total assigned tasks: %d\n", v.TotalTasks)
	if len(v.RecentCommits) > 0 {
		fmt.Fprintf(&b, "- recent commit messages: %s\n", strings.Join(v.RecentCommits, "; "))
	}
	b.WriteString(`
Respond with ONLY a JSON object, no Markdown fences, no commentary:
{"score": <integer 0-100, higher means higher burnout risk>,
 "riskLevel": "low" | "medium" | "high",
 "analysis": "<2-3 sentences explaining the score>",
 "recommendations": ["<short actionable suggestion>", ...]}
`)
	return b.String()
}

func buildPrioritizePrompt(features []TaskFeature) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Order the following %d tasks from most to least urgent for the developer to work on.\n", len(features))
	b.WriteString("Consider overdue status, deadline proximity, current progress, priority, and estimated effort.\n\nTasks:\n")
	for i, f := range features {
		data, err := json.Marshal(f)
		if err != nil {
			continue
		}
		fmt.Fprintf(&b, "[%d] %s\n", i, data)
	}
	fmt.Fprintf(&b, "\nRespond with ONLY a JSON array of the task indices 0 to %d in recommended order, ", len(features)-1)
	b.WriteString("no Markdown fences, no commentary. Example: [2,0,1]\n")
	return b.String()
}
