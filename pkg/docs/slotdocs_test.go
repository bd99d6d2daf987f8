package docs

import (
	"strings"
	"testing"

	"rmod/pkg/types"

	"github.com/stretchr/testify/assert"
)

func TestRenderSortsAndFormats(t *testing.T) {
	contracts := []types.SlotContract{
		{
			Slot:         "ruzzle.slot.shell.default@2",
			Summary:      "Default interactive shell",
			Provides:     []string{"ruzzle.shell.exec", "ruzzle.shell.complete"},
			RequiresCaps: []string{"ConsoleWrite", "ProcessSpawn"},
		},
		{
			Slot:    "ruzzle.slot.display.primary@1",
			Summary: "Primary display compositor",
		},
	}

	out := Render(contracts)

	want := `# Slot Contracts

Auto-generated from ` + "`slot_contracts/*.toml`" + `.

| Slot | Summary | Provides | Requires Caps |
| --- | --- | --- | --- |
| ` + "`ruzzle.slot.display.primary@1`" + ` | Primary display compositor | - | - |
| ` + "`ruzzle.slot.shell.default@2`" + ` | Default interactive shell | ruzzle.shell.exec, ruzzle.shell.complete | ConsoleWrite, ProcessSpawn |

## Maintenance
`
	assert.True(t, strings.HasPrefix(out, want), "got:\n%s", out)
	assert.True(t, strings.HasSuffix(out, "```\n"))
}

func TestRenderEmpty(t *testing.T) {
	out := Render(nil)
	assert.Contains(t, out, "| Slot | Summary | Provides | Requires Caps |")
	assert.NotContains(t, out, "| `ruzzle")
}

func TestRenderDoesNotMutateInput(t *testing.T) {
	contracts := []types.SlotContract{
		{Slot: "ruzzle.slot.b@1", Summary: "b"},
		{Slot: "ruzzle.slot.a@1", Summary: "a"},
	}
	Render(contracts)
	assert.Equal(t, "ruzzle.slot.b@1", contracts[0].Slot)
}
