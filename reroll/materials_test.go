package reroll

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMaterialRow(t *testing.T) {
	tests := []struct {
		name  string
		texts []string
		want  MaterialRow
		ok    bool
	}{
		{"single line", []string{"500pt x 12"}, MaterialRow{Row: 1, Value: 500, Count: 12}, true},
		{"split lines", []string{"250", "所持 7"}, MaterialRow{Row: 1, Value: 250, Count: 7}, true},
		{"extra numbers ignored", []string{"500 3 99"}, MaterialRow{Row: 1, Value: 500, Count: 3}, true},
		{"unexpected value still parsed", []string{"300", "4"}, MaterialRow{Row: 1, Value: 300, Count: 4}, true},
		{"one number", []string{"500"}, MaterialRow{}, false},
		{"nothing", nil, MaterialRow{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseMaterialRow(1, tt.texts)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAvailableAttempts(t *testing.T) {
	rows := []MaterialRow{{Value: 500, Count: 6}, {Value: 250, Count: 6}}
	n, err := AvailableAttempts(rows, 1500)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = AvailableAttempts(rows, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	_, err = AvailableAttempts(nil, 1500)
	assert.ErrorIs(t, err, ErrNoMaterials)
}
