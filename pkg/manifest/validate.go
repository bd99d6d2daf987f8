package manifest

import (
	"fmt"
	"regexp"

	"rmod/pkg/types"
)

// Identifier grammars. All matches are anchored full-string matches. A
// segment is one or more lowercase alphanumerics or hyphens.
const segment = `[a-z0-9-]+`

var (
	moduleNameRe = regexp.MustCompile(`^` + segment + `(?:-` + segment + `)*$`)
	versionRe    = regexp.MustCompile(`^\d+\.\d+\.\d+(?:[-+][A-Za-z0-9._-]+)?$`)
	serviceRe    = regexp.MustCompile(`^ruzzle\.(?:` + segment + `\.)*` + segment + `$`)
	slotRe       = regexp.MustCompile(`^ruzzle\.slot\.(?:` + segment + `\.)*` + segment + `$`)
	// Slot contracts additionally carry a revision suffix.
	slotRevisionRe = regexp.MustCompile(`^ruzzle\.slot\.(?:` + segment + `\.)*` + segment + `@\d+$`)
)

// IsModuleName reports whether s matches the module-name grammar.
func IsModuleName(s string) bool { return moduleNameRe.MatchString(s) }

// IsVersion reports whether s matches the semantic-version grammar.
func IsVersion(s string) bool { return versionRe.MatchString(s) }

// IsServiceID reports whether s matches the dotted service grammar.
func IsServiceID(s string) bool { return serviceRe.MatchString(s) }

// IsSlotID reports whether s matches the slot grammar without a revision,
// the form used by `slots` entries inside module manifests.
func IsSlotID(s string) bool { return slotRe.MatchString(s) }

// IsSlotContractID reports whether s matches the slot grammar with the
// mandatory @<revision> suffix required of slot contract files.
func IsSlotContractID(s string) bool { return slotRevisionRe.MatchString(s) }

// ValidateModule checks a parsed module manifest against the module schema.
// It returns one diagnostic per violated rule; the rules are independent and
// all applicable failures are collected. An empty slice means valid.
func ValidateModule(m *Manifest) []string {
	var diags []string
	diags = append(diags, requiredDiags(m, ModuleSchema)...)

	if name, ok := m.String("name"); ok && name != "" && !IsModuleName(name) {
		diags = append(diags, fmt.Sprintf("invalid module name '%s'", name))
	}
	if version, ok := m.String("version"); ok && version != "" && !IsVersion(version) {
		diags = append(diags, fmt.Sprintf("invalid version '%s'", version))
	}

	diags = append(diags, listDiags(m, "provides", func(v string) string {
		if !IsServiceID(v) {
			return fmt.Sprintf("invalid service '%s'", v)
		}
		return ""
	})...)
	diags = append(diags, listDiags(m, "slots", func(v string) string {
		if !IsSlotID(v) {
			return fmt.Sprintf("invalid slot '%s'", v)
		}
		return ""
	})...)
	diags = append(diags, listDiags(m, "requires_caps", capDiag)...)
	diags = append(diags, listDiags(m, "depends", func(v string) string {
		if !IsModuleName(v) {
			return fmt.Sprintf("invalid dependency '%s'", v)
		}
		return ""
	})...)
	return diags
}

// ValidateSlotContract checks a parsed slot contract against the
// slot-contract schema. Same collection semantics as ValidateModule.
func ValidateSlotContract(m *Manifest) []string {
	var diags []string
	diags = append(diags, requiredDiags(m, SlotContractSchema)...)

	if slot, ok := m.String("slot"); ok && slot != "" && !IsSlotContractID(slot) {
		diags = append(diags, fmt.Sprintf("invalid slot '%s'", slot))
	}

	diags = append(diags, listDiags(m, "provides", func(v string) string {
		if !IsServiceID(v) {
			return fmt.Sprintf("invalid service '%s'", v)
		}
		return ""
	})...)
	diags = append(diags, listDiags(m, "requires_caps", capDiag)...)
	return diags
}

func capDiag(v string) string {
	if !types.IsKnownCapability(v) {
		return fmt.Sprintf("unknown capability '%s'", v)
	}
	return ""
}

// requiredDiags flags required keys that are absent. A required scalar
// present as the empty string counts as missing too.
func requiredDiags(m *Manifest, schema Schema) []string {
	var diags []string
	for _, key := range schema.Required {
		if v, ok := m.String(key); ok && v == "" {
			diags = append(diags, fmt.Sprintf("missing required '%s'", key))
			continue
		}
		if !m.Has(key) {
			diags = append(diags, fmt.Sprintf("missing required '%s'", key))
		}
	}
	return diags
}

// listDiags runs check over every item of a list field. A field that is
// present but did not decode as a list is its own diagnostic, not a crash.
func listDiags(m *Manifest, key string, check func(string) string) []string {
	if !m.Has(key) {
		return nil
	}
	items, ok := m.List(key)
	if !ok {
		return []string{fmt.Sprintf("'%s' must be a list", key)}
	}
	var diags []string
	for _, item := range items {
		if d := check(item); d != "" {
			diags = append(diags, d)
		}
	}
	return diags
}

// ModuleRecord extracts the typed record from a parsed module manifest.
// Callers are expected to have run ValidateModule first; missing fields come
// back zero-valued.
func ModuleRecord(m *Manifest) types.ModuleRecord {
	name, _ := m.String("name")
	version, _ := m.String("version")
	return types.ModuleRecord{
		Name:         name,
		Version:      version,
		Provides:     listOrEmpty(m, "provides"),
		Slots:        listOrEmpty(m, "slots"),
		RequiresCaps: listOrEmpty(m, "requires_caps"),
		Depends:      listOrEmpty(m, "depends"),
	}
}

// SlotContractRecord extracts the typed record from a parsed slot contract.
func SlotContractRecord(m *Manifest) types.SlotContract {
	slot, _ := m.String("slot")
	summary, _ := m.String("summary")
	return types.SlotContract{
		Slot:         slot,
		Summary:      summary,
		Provides:     listOrEmpty(m, "provides"),
		RequiresCaps: listOrEmpty(m, "requires_caps"),
	}
}

func listOrEmpty(m *Manifest, key string) []string {
	if items, ok := m.List(key); ok {
		return items
	}
	return []string{}
}
