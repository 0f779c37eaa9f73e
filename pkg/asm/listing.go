package asm

import (
	"fmt"
	"strings"

	"github.com/svr2kos2/sayo-asm/pkg/ast"
)

const listingColumn = 64

type lineInfo struct {
	addr     uint32
	encoding []byte
	label    bool
}

// GenerateListing annotates source with addresses and encoded bytes.
// header is nil for raw output. items holds the bytes of each program
// item, as produced during encoding.
func GenerateListing(source string, prog *ast.Program, layout *Layout, header []byte, items [][]byte) string {
	var sb strings.Builder
	if len(header) >= HeaderSize {
		writeHeaderListing(&sb, header)
	}

	info := listingLines(source, prog, layout, items)
	lines := strings.Split(strings.ReplaceAll(source, "\t", "    "), "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}

	var lastEnd uint32
	haveLast := false
	afterLabel := false
	for i, text := range lines {
		text = strings.TrimRight(text, " \r")
		li, ok := info[i+1]
		if !ok {
			sb.WriteString(text)
			sb.WriteByte('\n')
			continue
		}
		if li.label {
			afterLabel = true
		}
		jumped := !haveLast || li.addr != lastEnd
		if li.label || li.encoding != nil || afterLabel || jumped {
			annotation := fmt.Sprintf("; @ 0x%04x", li.addr)
			if li.encoding != nil {
				annotation += " -> [" + formatBytes(li.encoding) + "]"
			}
			writeAnnotated(&sb, text, annotation)
			if !li.label {
				afterLabel = false
			}
		} else {
			sb.WriteString(text)
			sb.WriteByte('\n')
		}
		lastEnd = li.addr + uint32(len(li.encoding))
		haveLast = true
	}
	return sb.String()
}

// listingLines keys the first item starting on each 1-based line.
func listingLines(source string, prog *ast.Program, layout *Layout, items [][]byte) map[int]lineInfo {
	idx := ast.NewLineIndex(source)
	info := make(map[int]lineInfo)
	for i, item := range prog.Items {
		line := idx.Line(item.Pos().Start)
		if _, seen := info[line]; seen {
			continue
		}
		li := lineInfo{addr: layout.ItemAddresses[i]}
		switch item.(type) {
		case *ast.Label:
			li.label = true
		default:
			if i < len(items) && len(items[i]) > 0 {
				li.encoding = items[i]
			}
		}
		info[line] = li
	}
	return info
}

func writeHeaderListing(sb *strings.Builder, image []byte) {
	h, _ := ParseHeader(image)
	writeAnnotated(sb, "    ; CALL main", fmt.Sprintf("; @ 0x%04x -> [%s]", callOffset, formatBytes(image[callOffset:exitOffset])))
	writeAnnotated(sb, "    ; EXIT", fmt.Sprintf("; @ 0x%04x -> [%s]", exitOffset, formatBytes(image[exitOffset:magicOffset])))
	writeAnnotated(sb, "; header:", fmt.Sprintf("; @ 0x%04x", magicOffset))
	writeAnnotated(sb, `    ; "SAYO"`, fmt.Sprintf("; @ 0x%04x -> [%s]", magicOffset, formatBytes(image[magicOffset:versionOffset])))
	writeAnnotated(sb, fmt.Sprintf("    ; version %d", h.Version), fmt.Sprintf("; @ 0x%04x -> [%s]", versionOffset, formatBytes(image[versionOffset:textSizeOffset])))
	writeAnnotated(sb, fmt.Sprintf("    ; text_size %d", h.TextSize), fmt.Sprintf("; @ 0x%04x -> [%s]", textSizeOffset, formatBytes(image[textSizeOffset:reservedOffset])))
	writeAnnotated(sb, "    ; reserved byte", fmt.Sprintf("; @ 0x%04x -> [%s]", reservedOffset, formatBytes(image[reservedOffset:HeaderSize])))
	writeAnnotated(sb, ";assembly begin", fmt.Sprintf("; @ 0x%04x", HeaderSize))
}

func writeAnnotated(sb *strings.Builder, text, annotation string) {
	if len(text) >= listingColumn {
		fmt.Fprintf(sb, "%s  %s\n", text, annotation)
		return
	}
	fmt.Fprintf(sb, "%-*s %s\n", listingColumn, text, annotation)
}

// formatBytes renders b as 0x6f,0x60,0x40.
func formatBytes(b []byte) string {
	parts := make([]string, len(b))
	for i, c := range b {
		parts[i] = fmt.Sprintf("0x%02x", c)
	}
	return strings.Join(parts, ",")
}
