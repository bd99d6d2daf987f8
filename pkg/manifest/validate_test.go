package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, text string, schema Schema) *Manifest {
	t.Helper()
	m, err := Parse(text, schema)
	require.NoError(t, err)
	return m
}

func TestValidateModuleOK(t *testing.T) {
	m := mustParse(t, `name = "term-shell"
version = "1.2.0"
provides = ["ruzzle.shell.exec"]
slots = ["ruzzle.slot.shell.default"]
requires_caps = ["ConsoleWrite", "ProcessSpawn"]
depends = ["core-ipc"]
`, ModuleSchema)

	assert.Empty(t, ValidateModule(m))
}

func TestValidateModuleDiagnostics(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "missing required fields",
			text: `provides = []`,
			want: []string{"missing required 'name'", "missing required 'version'"},
		},
		{
			name: "bad module name",
			text: "name = \"Term_Shell\"\nversion = \"1.0.0\"",
			want: []string{"invalid module name 'Term_Shell'"},
		},
		{
			name: "bad version",
			text: "name = \"term-shell\"\nversion = \"1.2\"",
			want: []string{"invalid version '1.2'"},
		},
		{
			name: "version with build tag is fine",
			text: "name = \"term-shell\"\nversion = \"1.2.0-rc.1\"",
			want: nil,
		},
		{
			name: "bad service id",
			text: "name = \"a\"\nversion = \"1.0.0\"\nprovides = [\"shell.exec\"]",
			want: []string{"invalid service 'shell.exec'"},
		},
		{
			name: "slot without prefix",
			text: "name = \"a\"\nversion = \"1.0.0\"\nslots = [\"ruzzle.shell.default\"]",
			want: []string{"invalid slot 'ruzzle.shell.default'"},
		},
		{
			name: "revisioned slot is invalid in module context",
			text: "name = \"a\"\nversion = \"1.0.0\"\nslots = [\"ruzzle.slot.shell.default@1\"]",
			want: []string{"invalid slot 'ruzzle.slot.shell.default@1'"},
		},
		{
			name: "unknown capability",
			text: "name = \"a\"\nversion = \"1.0.0\"\nrequires_caps = [\"NetworkAccess\"]",
			want: []string{"unknown capability 'NetworkAccess'"},
		},
		{
			name: "capability is case sensitive",
			text: "name = \"a\"\nversion = \"1.0.0\"\nrequires_caps = [\"consolewrite\"]",
			want: []string{"unknown capability 'consolewrite'"},
		},
		{
			name: "bad dependency name",
			text: "name = \"a\"\nversion = \"1.0.0\"\ndepends = [\"Core.IPC\"]",
			want: []string{"invalid dependency 'Core.IPC'"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := mustParse(t, tt.text, ModuleSchema)
			assert.Equal(t, tt.want, ValidateModule(m))
		})
	}
}

// Independent rules are all reported in one pass, never just the first.
func TestValidateModuleCollectsAllViolations(t *testing.T) {
	m := mustParse(t, `name = "Bad Name"
version = "not-a-version"
provides = ["nope"]
slots = ["also.nope"]
requires_caps = ["MagicPowers"]
depends = ["UPPER"]
`, ModuleSchema)

	diags := ValidateModule(m)
	assert.Len(t, diags, 6)
	assert.Contains(t, diags, "invalid module name 'Bad Name'")
	assert.Contains(t, diags, "invalid version 'not-a-version'")
	assert.Contains(t, diags, "invalid service 'nope'")
	assert.Contains(t, diags, "invalid slot 'also.nope'")
	assert.Contains(t, diags, "unknown capability 'MagicPowers'")
	assert.Contains(t, diags, "invalid dependency 'UPPER'")
}

// A scalar where a list is expected is a diagnostic, not a crash. The grammar
// cannot produce this shape, so build the mapping by hand.
func TestValidateModuleScalarWhereListExpected(t *testing.T) {
	m := New()
	m.SetString("name", "term-shell")
	m.SetString("version", "1.0.0")
	m.SetString("provides", "ruzzle.shell.exec")

	diags := ValidateModule(m)
	assert.Equal(t, []string{"'provides' must be a list"}, diags)
}

func TestValidateSlotContract(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "valid contract",
			text: `slot = "ruzzle.slot.display.primary@1"
summary = "Primary display compositor slot"
provides = ["ruzzle.display.compose"]
requires_caps = ["WindowServer"]
`,
			want: nil,
		},
		{
			name: "slot without revision fails",
			text: "slot = \"ruzzle.slot.display.primary\"\nsummary = \"x\"",
			want: []string{"invalid slot 'ruzzle.slot.display.primary'"},
		},
		{
			name: "missing slot and summary",
			text: `provides = []`,
			want: []string{"missing required 'slot'", "missing required 'summary'"},
		},
		{
			name: "empty slot counts as missing",
			text: "slot = \"\"\nsummary = \"x\"",
			want: []string{"missing required 'slot'"},
		},
		{
			name: "bad service and capability together",
			text: `slot = "ruzzle.slot.audio.sink@2"
summary = "Audio sink"
provides = ["audio"]
requires_caps = ["Sound"]
`,
			want: []string{"invalid service 'audio'", "unknown capability 'Sound'"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := mustParse(t, tt.text, SlotContractSchema)
			assert.Equal(t, tt.want, ValidateSlotContract(m))
		})
	}
}

func TestIdentifierGrammars(t *testing.T) {
	assert.True(t, IsModuleName("term-shell"))
	assert.True(t, IsModuleName("a"))
	assert.False(t, IsModuleName(""))
	assert.False(t, IsModuleName("Term"))
	assert.False(t, IsModuleName("term_shell"))

	assert.True(t, IsVersion("0.0.1"))
	assert.True(t, IsVersion("1.2.3-beta.1"))
	assert.True(t, IsVersion("1.2.3+build_7"))
	assert.False(t, IsVersion("1.2"))
	assert.False(t, IsVersion("v1.2.3"))

	assert.True(t, IsServiceID("ruzzle.shell.exec"))
	assert.True(t, IsServiceID("ruzzle.net"))
	assert.False(t, IsServiceID("shell.exec"))
	assert.False(t, IsServiceID("ruzzle."))

	assert.True(t, IsSlotID("ruzzle.slot.display.primary"))
	assert.False(t, IsSlotID("ruzzle.display.primary"))
	assert.False(t, IsSlotID("ruzzle.slot.display.primary@1"))

	assert.True(t, IsSlotContractID("ruzzle.slot.display.primary@1"))
	assert.True(t, IsSlotContractID("ruzzle.slot.x@0"))
	assert.False(t, IsSlotContractID("ruzzle.slot.display.primary"))
	assert.False(t, IsSlotContractID("ruzzle.slot.display.primary@"))
}

func TestModuleRecordExtraction(t *testing.T) {
	m := mustParse(t, `name = "term-shell"
version = "1.2.0"
provides = ["ruzzle.shell.exec"]
`, ModuleSchema)

	rec := ModuleRecord(m)
	assert.Equal(t, "term-shell", rec.Name)
	assert.Equal(t, "1.2.0", rec.Version)
	assert.Equal(t, []string{"ruzzle.shell.exec"}, rec.Provides)
	assert.Empty(t, rec.Slots)
	assert.Empty(t, rec.Depends)
}
