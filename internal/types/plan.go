package types

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Query parameter defaults applied when the parameter is absent.
const (
	DefaultGoal      = "stay fit"
	DefaultEquipment = "none"
	DefaultDietary   = "general"
)

// MotivationResponse is the body returned by /motivate
type MotivationResponse struct {
	Message string `json:"message"`
}

// Exercise is a catalog record. Fields other than these are ignored.
type Exercise struct {
	Name         string       `json:"name" yaml:"name"`
	Equipment    string       `json:"equipment" yaml:"equipment"`
	Instructions Instructions `json:"instructions" yaml:"instructions"`
}

// FitnessPlanItem is a single exercise in a fitness plan.
// An item decoded from JSON encodes back to exactly that JSON, keeping
// unknown keys and null values.
type FitnessPlanItem struct {
	Name         string       `json:"name"`
	Instructions Instructions `json:"instructions"`

	raw json.RawMessage
}

type fitnessPlanItemFields FitnessPlanItem

func (f FitnessPlanItem) MarshalJSON() ([]byte, error) {
	if f.raw != nil {
		return f.raw, nil
	}
	return json.Marshal(fitnessPlanItemFields{Name: f.Name, Instructions: f.Instructions})
}

func (f *FitnessPlanItem) UnmarshalJSON(data []byte) error {
	var fields fitnessPlanItemFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	*f = FitnessPlanItem(fields)
	f.raw = append(json.RawMessage(nil), bytes.TrimSpace(data)...)
	return nil
}

// FitnessPlanResponse is the body returned by /fitness-plan
type FitnessPlanResponse struct {
	Plan []FitnessPlanItem `json:"plan"`
}

// FoodPlanItem is a single food in a food plan
type FoodPlanItem struct {
	Name     string  `json:"name"`
	Calories float64 `json:"calories"`
}

// FoodPlanResponse is the body returned by /food-plan
type FoodPlanResponse struct {
	Plan []FoodPlanItem `json:"plan"`
}

// InternalErrorMessage is the body text of unexpected server failures
const InternalErrorMessage = "Internal Server Error"

// ErrorResponse is the body returned whenever an operation fails
type ErrorResponse struct {
	Error string `json:"error"`
}

// Instructions holds either a single string or a list of steps and
// serializes back to whichever shape it was read from.
type Instructions struct {
	Text  string
	Steps []string
	list  bool
}

// TextInstructions builds Instructions in the single-string shape.
func TextInstructions(text string) Instructions {
	return Instructions{Text: text}
}

// StepInstructions builds Instructions in the list shape.
func StepInstructions(steps ...string) Instructions {
	if steps == nil {
		steps = []string{}
	}
	return Instructions{Steps: steps, list: true}
}

// IsList reports whether the instructions are a list of steps.
func (i Instructions) IsList() bool {
	return i.list
}

func (i Instructions) MarshalJSON() ([]byte, error) {
	if i.list {
		steps := i.Steps
		if steps == nil {
			steps = []string{}
		}
		return json.Marshal(steps)
	}
	return json.Marshal(i.Text)
}

func (i *Instructions) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*i = Instructions{}
		return nil
	}

	var steps []string
	if err := json.Unmarshal(trimmed, &steps); err == nil {
		*i = StepInstructions(steps...)
		return nil
	}

	var text string
	if err := json.Unmarshal(trimmed, &text); err == nil {
		*i = TextInstructions(text)
		return nil
	}

	return fmt.Errorf("invalid instructions format: expected string or array of strings")
}

func (i *Instructions) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.SequenceNode:
		var steps []string
		if err := value.Decode(&steps); err != nil {
			return fmt.Errorf("invalid instructions list: %w", err)
		}
		*i = StepInstructions(steps...)
		return nil
	case yaml.ScalarNode:
		var text string
		if err := value.Decode(&text); err != nil {
			return fmt.Errorf("invalid instructions text: %w", err)
		}
		*i = TextInstructions(text)
		return nil
	default:
		return fmt.Errorf("invalid instructions format: expected string or list of strings")
	}
}
