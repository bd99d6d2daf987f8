package docs

import (
	"fmt"
	"sort"
	"strings"

	"rmod/pkg/types"
)

// Render produces the slot contract reference page: a Markdown table with one
// row per contract, sorted by slot id, plus a regeneration footer. Empty
// lists render as "-". The layout is fixed; docs readers diff regenerated
// output against the committed page.
func Render(contracts []types.SlotContract) string {
	sorted := make([]types.SlotContract, len(contracts))
	copy(sorted, contracts)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Slot < sorted[j].Slot })

	var sb strings.Builder
	sb.WriteString("# Slot Contracts\n")
	sb.WriteString("\n")
	sb.WriteString("Auto-generated from `slot_contracts/*.toml`.\n")
	sb.WriteString("\n")
	sb.WriteString("| Slot | Summary | Provides | Requires Caps |\n")
	sb.WriteString("| --- | --- | --- | --- |\n")
	for _, contract := range sorted {
		fmt.Fprintf(&sb, "| `%s` | %s | %s | %s |\n",
			contract.Slot,
			contract.Summary,
			formatCell(contract.Provides),
			formatCell(contract.RequiresCaps))
	}
	sb.WriteString("\n")
	sb.WriteString("## Maintenance\n")
	sb.WriteString("\n")
	sb.WriteString("Regenerate:\n")
	sb.WriteString("\n")
	sb.WriteString("```bash\n")
	sb.WriteString("rmod lint --slots slot_contracts\n")
	sb.WriteString("rmod docs slot_contracts\n")
	sb.WriteString("```\n")
	return sb.String()
}

func formatCell(values []string) string {
	if len(values) == 0 {
		return "-"
	}
	return strings.Join(values, ", ")
}
