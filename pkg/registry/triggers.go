package registry

import (
	"github.com/arthur-debert/retemplate/pkg/errors"
	"github.com/arthur-debert/retemplate/pkg/types"
)

var triggerFactories = New[types.TriggerFactory]()

// RegisterTriggerFactory registers a factory function for creating triggers.
func RegisterTriggerFactory(name string, factory types.TriggerFactory) error {
	return triggerFactories.Register(name, factory)
}

// GetTriggerFactory retrieves a trigger factory by name.
func GetTriggerFactory(name string) (types.TriggerFactory, error) {
	return triggerFactories.Get(name)
}

// TriggerNames lists the registered trigger factories
func TriggerNames() []string {
	return triggerFactories.List()
}

// BuildTriggers creates one trigger per option set using the named factory.
func BuildTriggers(name string, optionSets []map[string]interface{}) ([]types.Trigger, error) {
	factory, err := GetTriggerFactory(name)
	if err != nil {
		return nil, err
	}

	triggers := make([]types.Trigger, 0, len(optionSets))
	for _, opts := range optionSets {
		t, err := factory(opts)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigValid, "invalid %s trigger options", name)
		}
		triggers = append(triggers, t)
	}
	return triggers, nil
}
