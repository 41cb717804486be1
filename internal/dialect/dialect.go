// Package dialect classifies a source file as the legacy or modern dialect
// by scoring token-level evidence. The result is advisory: the pipeline
// translates either way, and callers use the classification for reporting
// and for skipping files that are already modern.
package dialect

import "fmt"

// Kind identifies the dialect a file most resembles.
type Kind uint8

const (
	Unknown Kind = iota
	Legacy
	Modern

	kindCount
)

func (k Kind) String() string {
	switch k {
	case Legacy:
		return "legacy"
	case Modern:
		return "modern"
	default:
		return "unknown"
	}
}

func (k Kind) GoString() string {
	return fmt.Sprintf("dialect.Kind(%s)", k.String())
}
