package state

import (
	"context"
	"customerwizard/wizard/internal/domain"
	"encoding/json"
	"fmt"
)

// Store keeps wizard state per session key. Keys are opaque to the store.
type Store interface {
	// Get returns nil without error when the session has no state.
	Get(ctx context.Context, key string) (*domain.WizardState, error)
	// Set replaces the state and restarts its time to live.
	Set(ctx context.Context, key string, state *domain.WizardState) error
	// Clear removes the state; clearing an unknown key is not an error.
	Clear(ctx context.Context, key string) error
}

func encodeState(key string, state *domain.WizardState) ([]byte, error) {
	data, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("failed to encode state for session %s: %w", key, err)
	}
	return data, nil
}

func decodeState(key string, data []byte) (*domain.WizardState, error) {
	var state domain.WizardState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to decode state for session %s: %w", key, err)
	}
	return &state, nil
}
