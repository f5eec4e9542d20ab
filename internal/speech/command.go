package speech

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

type engine struct {
	name string
	args func(voice, text string) []string
}

// Ordered by preference.
var engines = []engine{
	{name: "espeak-ng", args: espeakArgs},
	{name: "espeak", args: espeakArgs},
	{name: "say", args: func(voice, text string) []string {
		if voice == "" {
			return []string{text}
		}
		return []string{"-v", voice, text}
	}},
	{name: "spd-say", args: func(voice, text string) []string {
		if voice == "" {
			return []string{"--wait", text}
		}
		return []string{"--wait", "-l", voice, text}
	}},
}

// Command speaks through a locally installed speech engine.
type Command struct {
	path  string
	voice string
	args  func(voice, text string) []string
}

// LookupCommand finds the first installed engine. voice is a language tag
// such as en-US; engines that cannot take it ignore it.
func LookupCommand(voice string) (*Command, error) {
	for _, candidate := range engines {
		path, err := exec.LookPath(candidate.name)
		if err != nil {
			continue
		}
		return &Command{path: path, voice: voice, args: candidate.args}, nil
	}
	return nil, ErrNoEngine
}

// Name returns the engine binary name.
func (command *Command) Name() string {
	return filepath.Base(command.path)
}

// Synthesize runs the engine and waits for it to finish speaking.
func (command *Command) Synthesize(ctx context.Context, text string) error {
	output, err := exec.CommandContext(ctx, command.path, command.args(command.voice, text)...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s: %w: %s", command.Name(), err, strings.TrimSpace(string(output)))
	}
	return nil
}

func espeakArgs(voice, text string) []string {
	if voice == "" {
		return []string{text}
	}
	return []string{"-v", strings.ToLower(voice), text}
}
