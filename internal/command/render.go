package command

import (
	"fmt"
	"strings"

	"github.com/bft-labs/i2p/internal/domain"
)

// RenderResult formats a single lookup.
func RenderResult(r domain.Result) string {
	return fmt.Sprintf("Packet ID:    %s\nPacket Name:  %s\nPacket Bound: %s", r.ID, r.Name, r.Direction)
}

// RenderListing formats both directions as text blocks, C2S first.
func RenderListing(l domain.Listing) string {
	var b strings.Builder
	for i, dir := range domain.Directions {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s:\n", dir)
		for _, e := range l.Entries(dir) {
			fmt.Fprintf(&b, "%-5s=>    %s\n", e.ID, e.Name)
		}
	}
	return b.String()
}
