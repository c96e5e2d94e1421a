package main

import (
	"testing"

	"scriptgen-workers/pkg/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_BuiltinActivities(t *testing.T) {
	for _, a := range registry.Builtin().Activities {
		a := a
		t.Run(a.ID, func(t *testing.T) {
			files, err := render(newWorkerData(&a))
			require.NoError(t, err)
			assert.Len(t, files, 4)
			assert.Contains(t, string(files["handler.go"]), `TaskType = "`+a.TaskType+`"`)
			assert.Contains(t, string(files["handler.go"]), "camunda.Process(h.runner, client, job, h.execute)")
		})
	}
}

func TestGenerateStructFields(t *testing.T) {
	props := map[string]interface{}{
		"productName": map[string]interface{}{"type": "string"},
		"isFaceless":  map[string]interface{}{"type": "boolean"},
		"scripts":     map[string]interface{}{"type": "array"},
	}

	got := generateStructFields(props)
	assert.Equal(t,
		"\tIsFaceless bool `json:\"isFaceless\"`\n"+
			"\tProductName string `json:\"productName\"`\n"+
			"\tScripts []interface{} `json:\"scripts\"`",
		got)
}
