package governance

import (
	"context"
	"fmt"
	"regexp"

	"github.com/cockroachdb/errors"
)

// Effect defines the result of a policy evaluation.
type Effect string

const (
	EffectAllow Effect = "allow"
	EffectDeny  Effect = "deny"
)

// DefaultDeniedPatterns block obviously destructive shell input. They only
// apply to CommandTools.
var DefaultDeniedPatterns = []string{
	`rm\s+-rf`,
	`mkfs`,
	`shutdown`,
	`reboot`,
}

// CommandTools are the tools whose input is run as a command.
var CommandTools = []string{"shell"}

// Request describes a tool invocation chosen by the model.
type Request struct {
	Tool    string
	Input   string
	Session string
}

// Result contains the outcome of a policy evaluation.
type Result struct {
	Effect Effect
	Reason string
}

// PolicyEngine evaluates tool calls against a set of rules.
type PolicyEngine interface {
	Evaluate(ctx context.Context, req Request) (Result, error)
}

// DefaultPolicyEngine denies listed tools and inputs matching a denied
// pattern, and allows everything else.
type DefaultPolicyEngine struct {
	DeniedTools map[string]bool
	Rules       []PatternRule
}

// PatternRule denies inputs matching Regex. An empty Tools set applies the
// rule to every tool.
type PatternRule struct {
	Regex *regexp.Regexp
	Tools map[string]bool
}

func (r PatternRule) appliesTo(tool string) bool {
	return len(r.Tools) == 0 || r.Tools[tool]
}

func NewDefaultPolicyEngine() *DefaultPolicyEngine {
	return &DefaultPolicyEngine{
		DeniedTools: make(map[string]bool),
	}
}

// NewPolicyEngine builds an engine from configured rules plus the defaults.
// Configured patterns apply to every tool, the defaults only to CommandTools.
func NewPolicyEngine(deniedTools, deniedPatterns []string) (*DefaultPolicyEngine, error) {
	e := NewDefaultPolicyEngine()
	for _, name := range deniedTools {
		e.DenyTool(name)
	}
	for _, p := range DefaultDeniedPatterns {
		if err := e.DenyArguments(p, CommandTools...); err != nil {
			return nil, err
		}
	}
	for _, p := range deniedPatterns {
		if err := e.DenyArguments(p); err != nil {
			return nil, err
		}
	}
	return e, nil
}

func (e *DefaultPolicyEngine) DenyTool(name string) {
	e.DeniedTools[name] = true
}

// DenyArguments denies inputs matching pattern for the given tools, or for
// every tool when none are given.
func (e *DefaultPolicyEngine) DenyArguments(pattern string, tools ...string) error {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return errors.Wrapf(err, "invalid deny pattern %q", pattern)
	}
	rule := PatternRule{Regex: re}
	if len(tools) > 0 {
		rule.Tools = make(map[string]bool, len(tools))
		for _, t := range tools {
			rule.Tools[t] = true
		}
	}
	e.Rules = append(e.Rules, rule)
	return nil
}

func (e *DefaultPolicyEngine) Evaluate(ctx context.Context, req Request) (Result, error) {
	if e.DeniedTools[req.Tool] {
		return Result{
			Effect: EffectDeny,
			Reason: fmt.Sprintf("tool '%s' is restricted by system policy", req.Tool),
		}, nil
	}

	for _, rule := range e.Rules {
		if rule.appliesTo(req.Tool) && rule.Regex.MatchString(req.Input) {
			return Result{
				Effect: EffectDeny,
				Reason: fmt.Sprintf("input matches restricted pattern: %s", rule.Regex.String()),
			}, nil
		}
	}

	return Result{
		Effect: EffectAllow,
		Reason: "approved by default policy",
	}, nil
}

// AllowAll is a PolicyEngine that approves every request.
type AllowAll struct{}

func (AllowAll) Evaluate(context.Context, Request) (Result, error) {
	return Result{Effect: EffectAllow, Reason: "no policy configured"}, nil
}
