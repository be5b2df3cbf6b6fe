package mapper

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testModel struct {
	ID    string
	Value int
}

type testEntity struct {
	Value int
}

func toEntity(m *testModel) (*testEntity, error) {
	if m.Value < 0 {
		return nil, errors.New("negative value")
	}
	if m.Value == 0 {
		return nil, nil
	}
	return &testEntity{Value: m.Value}, nil
}

func modelID(m *testModel) string { return m.ID }

func TestMapSlicePtrWithID(t *testing.T) {
	tests := []struct {
		name        string
		input       []*testModel
		want        []*testEntity
		errContains string
	}{
		{
			name:  "nil input returns nil",
			input: nil,
			want:  nil,
		},
		{
			name:  "empty input returns empty slice",
			input: []*testModel{},
			want:  []*testEntity{},
		},
		{
			name:  "maps every item",
			input: []*testModel{{ID: "a", Value: 1}, {ID: "b", Value: 2}},
			want:  []*testEntity{{Value: 1}, {Value: 2}},
		},
		{
			name:  "skips nil inputs and nil outputs",
			input: []*testModel{nil, {ID: "a", Value: 0}, {ID: "b", Value: 3}},
			want:  []*testEntity{{Value: 3}},
		},
		{
			name:        "error names the failing item",
			input:       []*testModel{{ID: "a", Value: 1}, {ID: "sub_42", Value: -1}},
			errContains: "failed to map item ID sub_42: negative value",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MapSlicePtrWithID(tt.input, toEntity, modelID)
			if tt.errContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
