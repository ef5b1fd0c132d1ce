package steps

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/gwillis-inovacon/discourse-onboarding-tour/internal/models"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// Builtin returns the default step list bundled for a visitor class.
func Builtin(class models.VisitorClass) ([]models.StepDefinition, error) {
	path := fmt.Sprintf("builtin/%s.yaml", class)

	data, err := builtinFS.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read builtin steps for %s: %w", class, err)
	}

	var defs []models.StepDefinition
	if err := yaml.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("parse builtin steps for %s: %w", class, err)
	}
	if len(defs) == 0 {
		return nil, fmt.Errorf("builtin steps for %s are empty", class)
	}

	return defs, nil
}
