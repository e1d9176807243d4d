package sheet

import "github.com/go-drift/modalsheet/pkg/errors"

// SavedState is the persisted form of a State. Only the settled value is
// kept; the offset is recomputed from the anchors on the next Initialize.
type SavedState struct {
	Value Value `yaml:"value" json:"value"`
}

// Save captures the state's current value.
func (s *State) Save() SavedState {
	return SavedState{Value: s.currentValue}
}

// Restore builds a new State from saved, with cfg supplying everything that
// is not persisted. cfg.InitialValue is replaced by the saved value.
func Restore(saved SavedState, cfg Config) (*State, error) {
	if saved.Value < Hidden || saved.Value > Full {
		return nil, errors.Newf("sheet.Restore", errors.KindPersistence, "saved value %v out of range", saved.Value)
	}
	cfg.InitialValue = saved.Value
	return NewState(cfg), nil
}
