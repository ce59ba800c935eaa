package main

import (
	"io"

	"github.com/cockroachdb/errors"
	"github.com/rahul/kaam/internal/agent"
	"github.com/rahul/kaam/internal/governance"
	"github.com/rahul/kaam/internal/model"
	"github.com/rahul/kaam/internal/observability"
	"github.com/rahul/kaam/internal/store"
	"github.com/rahul/kaam/internal/tools"
	"github.com/rahul/kaam/pkg/config"
	"github.com/rs/zerolog/log"
)

// app holds everything a command needs. Fields stay nil when the command did
// not ask for them.
type app struct {
	cfg      *config.Config
	registry *tools.Registry
	journal  *store.Journal
	agent    *agent.Agent

	closers []io.Closer
}

func loadApp(configPath string) (*app, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if lvl := cfg.App.LogLevel; lvl != "" {
		observability.SetLevel(lvl)
	}
	return &app{cfg: cfg}, nil
}

func (a *app) openTools() error {
	registry, closer, err := tools.Builtin(a.cfg.Tools.Enabled, tools.Options{Workspace: a.cfg.App.Workspace})
	if err != nil {
		return err
	}
	a.registry = registry
	a.closers = append(a.closers, closer)
	return nil
}

func (a *app) openJournal() error {
	switch a.cfg.Memory.Type {
	case "":
		return nil
	case "sqlite":
		j, err := store.Open(a.cfg.Memory.Path)
		if err != nil {
			return err
		}
		a.journal = j
		a.closers = append(a.closers, j)
		return nil
	default:
		return errors.Newf("memory type %q is not supported", a.cfg.Memory.Type)
	}
}

func (a *app) openAgent() error {
	if err := a.openTools(); err != nil {
		return err
	}
	if err := a.openJournal(); err != nil {
		return err
	}

	name, pCfg, err := a.cfg.GetDefaultProvider()
	if err != nil {
		return err
	}
	client, err := model.NewClientFromConfig(name, pCfg)
	if err != nil {
		return err
	}

	policy, err := governance.NewPolicyEngine(a.cfg.Policy.DeniedTools, a.cfg.Policy.DeniedPatterns)
	if err != nil {
		return err
	}

	opts := []agent.Option{
		agent.WithPolicy(policy),
		agent.WithLogger(observability.NewLogger(a.cfg.App.LogDir)),
	}
	if a.journal != nil {
		opts = append(opts, agent.WithJournal(a.journal))
	}

	a.agent = agent.New(client, a.registry, agent.NewPromptManager(a.cfg.Agent.PromptDir), opts...)
	log.Debug().Str("provider", name).Str("model", pCfg.Model).Int("tools", a.registry.Len()).Msg("agent ready")
	return nil
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			log.Warn().Err(err).Msg("failed to release resource")
		}
	}
}
