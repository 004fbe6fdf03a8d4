package engine

import "strings"

// MemoryAction is one of the memory register keys.
type MemoryAction int

// MemoryAction values.
const (
	MemoryClear MemoryAction = iota
	MemoryRecall
	MemoryAdd
	MemorySubtract
)

// MemoryActions lists every memory action.
func MemoryActions() []MemoryAction {
	return []MemoryAction{MemoryClear, MemoryRecall, MemoryAdd, MemorySubtract}
}

// ParseMemoryAction looks up a memory action by its key label (MC, MR, M+, M-).
func ParseMemoryAction(name string) (MemoryAction, bool) {
	for _, a := range MemoryActions() {
		if strings.EqualFold(a.String(), name) {
			return a, true
		}
	}

	return 0, false
}

// String returns the key label.
func (a MemoryAction) String() string {
	switch a {
	case MemoryClear:
		return "MC"
	case MemoryRecall:
		return "MR"
	case MemoryAdd:
		return "M+"
	case MemorySubtract:
		return "M-"
	}

	return "unknown"
}
