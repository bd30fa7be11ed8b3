// Package flow parses and runs scripted browser workflows.
//
// A flow is a YAML document naming an ordered list of steps. Each step names
// exactly one executor action plus the fields that action needs. Locator
// fields accept either raw selectors or component.name references resolved
// through a locator store.
package flow

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Step is one action invocation in a flow.
type Step struct {
	Action    string `yaml:"action"`
	Locator   string `yaml:"locator,omitempty"`
	Target    string `yaml:"target,omitempty"`
	Value     string `yaml:"value,omitempty"`
	URL       string `yaml:"url,omitempty"`
	Attribute string `yaml:"attribute,omitempty"`
	Frame     string `yaml:"frame,omitempty"`
	Script    string `yaml:"script,omitempty"`
	File      string `yaml:"file,omitempty"`
	Index     int    `yaml:"index,omitempty"`
	Checked   bool   `yaml:"checked,omitempty"`
	Accept    bool   `yaml:"accept,omitempty"`
	Prompt    string `yaml:"prompt,omitempty"`
}

// Flow is a named, taggable sequence of steps.
type Flow struct {
	Name  string   `yaml:"name"`
	Tags  []string `yaml:"tags,omitempty"`
	Steps []Step   `yaml:"steps"`
}

// fields a step action requires beyond the action name itself.
type requirements struct {
	locator   bool
	target    bool
	value     bool
	url       bool
	frame     bool
	script    bool
	file      bool
	attribute bool
}

var actionRequirements = map[string]requirements{
	"navigate":         {url: true},
	"wait_load":        {},
	"click":            {locator: true},
	"double_click":     {locator: true},
	"right_click":      {locator: true},
	"hover":            {locator: true},
	"type":             {locator: true, value: true},
	"clear":            {locator: true},
	"select_value":     {locator: true, value: true},
	"select_text":      {locator: true, value: true},
	"select_index":     {locator: true},
	"set_checkbox":     {locator: true},
	"upload":           {locator: true, file: true},
	"drag_drop":        {locator: true, target: true},
	"wait_visible":     {locator: true},
	"wait_invisible":   {locator: true},
	"scroll":           {locator: true},
	"script":           {script: true},
	"script_in_frame":  {frame: true, script: true},
	"alert":            {},
	"screenshot":       {value: true},
	"assert_visible":   {locator: true},
	"assert_text":      {locator: true, value: true},
	"assert_attribute": {locator: true, attribute: true, value: true},
}

// ParseFile reads and parses one flow file.
func ParseFile(path string) (*Flow, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- path is a caller-provided flow file
	if err != nil {
		return nil, fmt.Errorf("failed to read flow file: %w", err)
	}

	flow, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return flow, nil
}

// Parse parses and validates one flow document.
func Parse(data []byte) (*Flow, error) {
	var flow Flow
	if err := yaml.Unmarshal(data, &flow); err != nil {
		return nil, fmt.Errorf("failed to parse flow: %w", err)
	}

	if flow.Name == "" {
		return nil, fmt.Errorf("flow has no name")
	}
	if len(flow.Steps) == 0 {
		return nil, fmt.Errorf("flow %q has no steps", flow.Name)
	}

	for i, step := range flow.Steps {
		if err := validateStep(step); err != nil {
			return nil, fmt.Errorf("flow %q step %d: %w", flow.Name, i+1, err)
		}
	}
	return &flow, nil
}

func validateStep(step Step) error {
	if step.Action == "" {
		return fmt.Errorf("step has no action")
	}

	req, ok := actionRequirements[step.Action]
	if !ok {
		return fmt.Errorf("unknown action %q", step.Action)
	}

	switch {
	case req.locator && step.Locator == "":
		return fmt.Errorf("action %q requires a locator", step.Action)
	case req.target && step.Target == "":
		return fmt.Errorf("action %q requires a target", step.Action)
	case req.value && step.Value == "":
		return fmt.Errorf("action %q requires a value", step.Action)
	case req.url && step.URL == "":
		return fmt.Errorf("action %q requires a url", step.Action)
	case req.frame && step.Frame == "":
		return fmt.Errorf("action %q requires a frame", step.Action)
	case req.script && step.Script == "":
		return fmt.Errorf("action %q requires a script", step.Action)
	case req.file && step.File == "":
		return fmt.Errorf("action %q requires a file", step.Action)
	case req.attribute && step.Attribute == "":
		return fmt.Errorf("action %q requires an attribute", step.Action)
	}
	return nil
}
