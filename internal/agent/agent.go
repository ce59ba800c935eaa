package agent

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/rahul/kaam/internal/governance"
	"github.com/rahul/kaam/internal/model"
	"github.com/rahul/kaam/internal/observability"
	"github.com/rahul/kaam/internal/store"
	"github.com/rahul/kaam/internal/tools"
	"github.com/rs/zerolog/log"
)

// Decider asks a language model which tool to run for a prompt.
type Decider interface {
	Decide(ctx context.Context, systemPrompt, prompt string) (model.Decision, *model.Reply, error)
}

// Journal records the outcome of each request.
type Journal interface {
	Record(ctx context.Context, e store.Entry) error
}

// Result is what a single Work call produced.
type Result struct {
	RequestID string
	Decision  model.Decision
	// Tool is the name of the tool that matched the decision, empty when the
	// tool input was returned as a direct answer.
	Tool   string
	Output string
	// Denied is set when the policy engine refused the tool call.
	Denied bool
}

// Agent runs one think/work cycle per prompt: the model picks a tool from the
// registry and the agent executes it.
type Agent struct {
	Model    Decider
	Registry *tools.Registry
	Prompts  *PromptManager
	Policy   governance.PolicyEngine
	Journal  Journal
	Logger   *observability.Logger
}

type Option func(*Agent)

func WithPolicy(p governance.PolicyEngine) Option {
	return func(a *Agent) { a.Policy = p }
}

func WithJournal(j Journal) Option {
	return func(a *Agent) { a.Journal = j }
}

func WithLogger(l *observability.Logger) Option {
	return func(a *Agent) { a.Logger = l }
}

func New(m Decider, registry *tools.Registry, prompts *PromptManager, opts ...Option) *Agent {
	a := &Agent{
		Model:    m,
		Registry: registry,
		Prompts:  prompts,
		Policy:   governance.AllowAll{},
		Logger:   observability.NewLogger(""),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.Prompts == nil {
		a.Prompts = NewPromptManager("")
	}
	return a
}

// SystemPrompt renders the system prompt with the current tool catalog.
func (a *Agent) SystemPrompt() (string, error) {
	data := PromptData{ToolDescriptions: a.Registry.Describe()}
	for _, t := range a.Registry.List() {
		data.Tools = append(data.Tools, ToolInfo{Name: t.Name(), Description: t.Description()})
	}
	return a.Prompts.GetAgentPrompt(data)
}

// Think asks the model for a decision.
func (a *Agent) Think(ctx context.Context, prompt string) (model.Decision, error) {
	session, requestID := SessionFrom(ctx), requestIDFrom(ctx)

	systemPrompt, err := a.SystemPrompt()
	if err != nil {
		return model.Decision{}, err
	}

	decision, reply, err := a.Model.Decide(ctx, systemPrompt, prompt)
	if reply != nil {
		a.Logger.LogLLM(session, requestID, systemPrompt, prompt, reply.Text)
		if u := reply.Usage; u.PromptTokens+u.CompletionTokens > 0 {
			a.Logger.LogCost(session, requestID, u.PromptTokens, u.CompletionTokens, a.modelName())
		}
	}
	if err != nil {
		return model.Decision{}, errors.Wrap(err, "failed to get a decision")
	}

	a.Logger.LogDecision(session, requestID, decision.ToolChoice, decision.ToolInput)
	return decision, nil
}

// Work runs the decided tool and returns its output. When the decision names
// no registered tool, the tool input is returned as the answer.
func (a *Agent) Work(ctx context.Context, prompt string) (*Result, error) {
	requestID := uuid.NewString()
	ctx = withRequestID(ctx, requestID)

	res, err := a.work(ctx, prompt)
	res.RequestID = requestID
	a.record(ctx, prompt, res, err)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (a *Agent) work(ctx context.Context, prompt string) (*Result, error) {
	res := &Result{}

	decision, err := a.Think(ctx, prompt)
	if err != nil {
		return res, err
	}
	res.Decision = decision

	for _, t := range a.Registry.List() {
		if t.Name() != decision.ToolChoice {
			continue
		}
		res.Tool = t.Name()

		allowed, reason, err := a.allowed(ctx, t.Name(), decision.ToolInput)
		if err != nil {
			return res, err
		}
		if !allowed {
			res.Denied = true
			res.Output = fmt.Sprintf("Tool '%s' was blocked: %s", t.Name(), reason)
			return res, nil
		}

		out, err := a.execute(ctx, t, decision.ToolInput)
		if err != nil {
			return res, err
		}
		res.Output = out
		return res, nil
	}

	res.Output = decision.ToolInput
	return res, nil
}

func (a *Agent) allowed(ctx context.Context, tool, input string) (bool, string, error) {
	session, requestID := SessionFrom(ctx), requestIDFrom(ctx)

	verdict, err := a.Policy.Evaluate(ctx, governance.Request{Tool: tool, Input: input, Session: session})
	if err != nil {
		return false, "", errors.Wrapf(err, "policy evaluation failed for tool %s", tool)
	}
	a.Logger.LogPolicy(session, requestID, tool, string(verdict.Effect), verdict.Reason)
	return verdict.Effect != governance.EffectDeny, verdict.Reason, nil
}

func (a *Agent) execute(ctx context.Context, t tools.Tool, input string) (string, error) {
	session, requestID := SessionFrom(ctx), requestIDFrom(ctx)

	a.Logger.LogToolCall(session, requestID, t.Name(), input)
	out, err := t.Execute(ctx, input)
	a.Logger.LogToolResult(session, requestID, t.Name(), out, err)
	if err != nil {
		return "", errors.Wrapf(err, "tool %s failed", t.Name())
	}
	return out, nil
}

func (a *Agent) record(ctx context.Context, prompt string, res *Result, workErr error) {
	if a.Journal == nil {
		return
	}

	e := store.Entry{
		RequestID:  res.RequestID,
		Session:    SessionFrom(ctx),
		Prompt:     prompt,
		ToolChoice: res.Decision.ToolChoice,
		ToolInput:  res.Decision.ToolInput,
		Tool:       res.Tool,
		Output:     res.Output,
	}
	if workErr != nil {
		e.Error = workErr.Error()
	}
	// A journal failure must not lose the answer.
	if err := a.Journal.Record(context.WithoutCancel(ctx), e); err != nil {
		log.Warn().Err(err).Str("request_id", res.RequestID).Msg("failed to record decision")
	}
}

func (a *Agent) modelName() string {
	if n, ok := a.Model.(interface{ ModelName() string }); ok {
		return n.ModelName()
	}
	return ""
}
