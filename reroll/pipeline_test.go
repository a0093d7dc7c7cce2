package reroll

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipelineDefinesRoutedNodes(t *testing.T) {
	raw, err := os.ReadFile(filepath.Join("..", "resource", "pipeline", "SkillReroller.json"))
	require.NoError(t, err)

	var nodes map[string]map[string]any
	require.NoError(t, sonic.Unmarshal(raw, &nodes))

	for _, name := range []string{
		NodeMaterialOCR, NodeSkillOCR, NodeWeaponOCR, NodePressKey, NodeCheck,
		NodeDiscard, NodeDiscardFinal, NodeStopOnMatch, NodeFinish, NodeReturnToTitle, nodeLogMXU,
	} {
		assert.Contains(t, nodes, name)
	}

	// 自定义组件名必须和 Register 一致
	registered := map[string]bool{
		"RerollInitAction":          true,
		"RerollPerformAction":       true,
		"RerollCheckAction":         true,
		"RerollDiscardAction":       true,
		"RerollFinishAction":        true,
		"RerollStopAction":          true,
		"RerollReturnToTitleAction": true,
	}
	for name, node := range nodes {
		if a, ok := node["custom_action"].(string); ok {
			assert.True(t, registered[a], "%s uses unknown action %s", name, a)
		}
		if r, ok := node["custom_recognition"].(string); ok {
			assert.Equal(t, "RerollSkillRecognition", r, name)
		}
	}
}
