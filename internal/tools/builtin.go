package tools

import (
	"io"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog/log"
)

// Options configure the built-in tools.
type Options struct {
	Workspace string
}

var constructors = map[string]func(Options) (Tool, error){
	"basic_calculator": func(Options) (Tool, error) { return NewCalculatorTool(), nil },
	"reverse_string":   func(Options) (Tool, error) { return NewReverserTool(), nil },
	"search":           func(Options) (Tool, error) { return NewSearchTool() },
	"scraper":          func(Options) (Tool, error) { return NewScraperTool(), nil },
	"browser":          func(Options) (Tool, error) { return NewBrowserTool(), nil },
	"filesystem":       func(o Options) (Tool, error) { return NewFilesystemTool(o.Workspace), nil },
	"shell":            func(o Options) (Tool, error) { return NewShellTool(o.Workspace), nil },
}

// Builtin creates a registry holding the named built-in tools in the given
// order. A tool whose client cannot be created is skipped with a warning; an
// unknown name is an error. The returned closer releases tool resources.
func Builtin(names []string, opts Options) (*Registry, io.Closer, error) {
	registry := NewRegistry()
	var closers closerList

	for _, name := range names {
		ctor, ok := constructors[name]
		if !ok {
			return nil, nil, errors.Newf("unknown tool %q", name)
		}
		t, err := ctor(opts)
		if err != nil {
			log.Warn().Err(err).Str("tool", name).Msg("failed to initialize tool")
			continue
		}
		if c, ok := t.(io.Closer); ok {
			closers = append(closers, c)
		}
		registry.Register(t)
	}
	return registry, closers, nil
}

type closerList []io.Closer

func (cl closerList) Close() error {
	var errs error
	for _, c := range cl {
		if err := c.Close(); err != nil {
			errs = errors.CombineErrors(errs, err)
		}
	}
	return errs
}
