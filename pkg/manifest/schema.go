package manifest

// Kind is the decoded type of a manifest field.
type Kind int

const (
	KindString Kind = iota
	KindList
)

// Schema describes one manifest variant: which keys are allowed, how each
// key's value decodes, and which keys must be present after parsing. The
// parser enforces the key set and value kinds; required-field presence is the
// validator's job.
type Schema struct {
	Variant  string
	Fields   map[string]Kind
	Required []string
}

// Allows reports whether key belongs to this schema.
func (s Schema) Allows(key string) bool {
	_, ok := s.Fields[key]
	return ok
}

// ModuleSchema is the schema for module.toml manifests.
var ModuleSchema = Schema{
	Variant: "module",
	Fields: map[string]Kind{
		"name":          KindString,
		"version":       KindString,
		"provides":      KindList,
		"slots":         KindList,
		"requires_caps": KindList,
		"depends":       KindList,
	},
	Required: []string{"name", "version"},
}

// SlotContractSchema is the schema for slot_contracts/*.toml files.
var SlotContractSchema = Schema{
	Variant: "slot contract",
	Fields: map[string]Kind{
		"slot":          KindString,
		"summary":       KindString,
		"provides":      KindList,
		"requires_caps": KindList,
	},
	Required: []string{"slot", "summary"},
}
