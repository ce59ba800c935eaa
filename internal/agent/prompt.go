package agent

import (
	"bytes"
	_ "embed"
	"os"
	"path/filepath"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/cockroachdb/errors"
)

// PromptFile is the name of the system prompt template inside the prompt
// directory.
const PromptFile = "agent.md"

//go:embed prompts/agent.md
var defaultPrompt string

// ToolInfo is a catalog row exposed to prompt templates.
type ToolInfo struct {
	Name        string
	Description string
}

// PromptData is passed to the system prompt template.
type PromptData struct {
	ToolDescriptions string
	Tools            []ToolInfo
}

// PromptManager renders the agent system prompt. A template file in
// Directory overrides the built-in one.
type PromptManager struct {
	Directory string
}

func NewPromptManager(dir string) *PromptManager {
	return &PromptManager{Directory: dir}
}

func (pm *PromptManager) source() (string, string, error) {
	if pm.Directory != "" {
		path := filepath.Join(pm.Directory, PromptFile)
		data, err := os.ReadFile(path)
		if err == nil {
			return path, string(data), nil
		}
		if !os.IsNotExist(err) {
			return "", "", errors.Wrapf(err, "failed to read prompt %s", path)
		}
	}
	return "default", defaultPrompt, nil
}

// GetAgentPrompt renders the system prompt for the given tool catalog.
func (pm *PromptManager) GetAgentPrompt(data PromptData) (string, error) {
	name, text, err := pm.source()
	if err != nil {
		return "", err
	}

	tmpl, err := template.New(name).Funcs(sprig.TxtFuncMap()).Parse(text)
	if err != nil {
		return "", errors.Wrapf(err, "failed to parse prompt template %s", name)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", errors.Wrapf(err, "failed to render prompt template %s", name)
	}
	return buf.String(), nil
}
