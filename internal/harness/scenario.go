package harness

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/treeclock"
)

// Scenario defines a conformance test scenario: a named sequence of stamp
// operations with optional inline expectations.
type Scenario struct {
	// Name uniquely identifies this scenario; it also names the golden
	// trace file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Steps are executed in order against a shared set of named stamps.
	Steps []Step `yaml:"steps"`
}

// Step is a single operation in a scenario flow.
type Step struct {
	// Op selects the operation: seed, event, fork, join, peek, compare
	// or serialize.
	Op string `yaml:"op"`

	// Stamp names the primary operand.
	Stamp string `yaml:"stamp,omitempty"`

	// With names the second operand for join and compare.
	With string `yaml:"with,omitempty"`

	// As names the result for seed, event, join and peek. For event it
	// defaults to Stamp, advancing the operand in place.
	As string `yaml:"as,omitempty"`

	// Left and Right name the two results of a fork.
	Left  string `yaml:"left,omitempty"`
	Right string `yaml:"right,omitempty"`

	// Expect pins the outcome: an ordering name for compare, a hex
	// string for serialize. Empty means no expectation.
	Expect string `yaml:"expect,omitempty"`
}

// Result holds the executed trace and the final stamp bindings.
type Result struct {
	// Trace has one rendered line per step, in execution order.
	Trace []string

	// Stamps maps names to their final values.
	Stamps map[string]treeclock.Stamp
}

// LoadScenario reads and parses a scenario YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if sc.Name == "" {
		return nil, fmt.Errorf("scenario %s: missing name", path)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("scenario %s: no steps", path)
	}
	return &sc, nil
}

// Run executes the scenario and returns its trace. Execution stops at the
// first failing step: an operation error, an unknown op or name, or an
// unmet expectation.
func Run(sc *Scenario) (*Result, error) {
	res := &Result{Stamps: make(map[string]treeclock.Stamp)}
	for i, step := range sc.Steps {
		line, err := runStep(step, res.Stamps)
		if err != nil {
			return nil, fmt.Errorf("scenario %s, step %d (%s): %w", sc.Name, i+1, step.Op, err)
		}
		res.Trace = append(res.Trace, line)
	}
	return res, nil
}

func runStep(step Step, stamps map[string]treeclock.Stamp) (string, error) {
	switch step.Op {
	case "seed":
		if step.As == "" {
			return "", fmt.Errorf("seed requires `as`")
		}
		s := treeclock.NewSeed()
		stamps[step.As] = s
		return fmt.Sprintf("seed %s -> %s", step.As, s), nil

	case "event":
		s, err := lookup(stamps, step.Stamp)
		if err != nil {
			return "", err
		}
		next, err := s.Event()
		if err != nil {
			return "", err
		}
		target := step.As
		if target == "" {
			target = step.Stamp
		}
		stamps[target] = next
		return fmt.Sprintf("event %s -> %s", target, next), nil

	case "fork":
		if step.Left == "" || step.Right == "" {
			return "", fmt.Errorf("fork requires `left` and `right`")
		}
		s, err := lookup(stamps, step.Stamp)
		if err != nil {
			return "", err
		}
		l, r := s.Fork()
		stamps[step.Left] = l
		stamps[step.Right] = r
		return fmt.Sprintf("fork %s -> %s %s, %s %s", step.Stamp, step.Left, l, step.Right, r), nil

	case "join":
		if step.As == "" {
			return "", fmt.Errorf("join requires `as`")
		}
		a, err := lookup(stamps, step.Stamp)
		if err != nil {
			return "", err
		}
		b, err := lookup(stamps, step.With)
		if err != nil {
			return "", err
		}
		m, err := a.Join(b)
		if err != nil {
			return "", err
		}
		stamps[step.As] = m
		return fmt.Sprintf("join %s %s -> %s %s", step.Stamp, step.With, step.As, m), nil

	case "peek":
		if step.As == "" {
			return "", fmt.Errorf("peek requires `as`")
		}
		s, err := lookup(stamps, step.Stamp)
		if err != nil {
			return "", err
		}
		p := s.Peek()
		stamps[step.As] = p
		return fmt.Sprintf("peek %s -> %s %s", step.Stamp, step.As, p), nil

	case "compare":
		a, err := lookup(stamps, step.Stamp)
		if err != nil {
			return "", err
		}
		b, err := lookup(stamps, step.With)
		if err != nil {
			return "", err
		}
		ord := a.Compare(b)
		if step.Expect != "" && step.Expect != ord.String() {
			return "", fmt.Errorf("compare %s %s: got %s, expected %s",
				step.Stamp, step.With, ord, step.Expect)
		}
		return fmt.Sprintf("compare %s %s -> %s", step.Stamp, step.With, ord), nil

	case "serialize":
		s, err := lookup(stamps, step.Stamp)
		if err != nil {
			return "", err
		}
		raw, err := s.MarshalBinary()
		if err != nil {
			return "", err
		}
		enc := hex.EncodeToString(raw)
		if step.Expect != "" && !strings.EqualFold(step.Expect, enc) {
			return "", fmt.Errorf("serialize %s: got %s, expected %s", step.Stamp, enc, step.Expect)
		}
		return fmt.Sprintf("serialize %s -> %s", step.Stamp, enc), nil

	default:
		return "", fmt.Errorf("unknown op %q", step.Op)
	}
}

func lookup(stamps map[string]treeclock.Stamp, name string) (treeclock.Stamp, error) {
	if name == "" {
		return treeclock.Stamp{}, fmt.Errorf("missing stamp name")
	}
	s, ok := stamps[name]
	if !ok {
		return treeclock.Stamp{}, fmt.Errorf("unknown stamp %q", name)
	}
	return s, nil
}
