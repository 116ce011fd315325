// Package scan turns cleaned C header text into registry state. Each
// declaration kind has its own pattern-based extractor behind a narrow
// Scan surface; the root driver runs them in dependency order (enums
// and bitflags, then opaques, callbacks, structs, and finally exported
// functions). The patterns cover the webgpu.h header family only, not
// arbitrary C.
package scan

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Skip markers delimit header regions hidden from binding generation.
// They are comments, so the skip pass runs on raw text before comment
// stripping.
const (
	SkipBegin = "// WGPUGEN-SKIP-BEGIN"
	SkipEnd   = "// WGPUGEN-SKIP-END"
)

// ErrUnterminatedSkip reports a skip begin marker with no matching end
// marker. This is a fatal configuration error: consuming the remainder
// of the file silently would drop declarations.
var ErrUnterminatedSkip = errors.New("skip begin marker without matching end marker")

var (
	blockCommentRe = regexp.MustCompile(`(?s)/\*.*?\*/`)
	lineCommentRe  = regexp.MustCompile(`//[^\n]*`)
	preprocRe      = regexp.MustCompile(`(?m)^[ \t]*#[^\n]*$`)
	externOpenRe   = regexp.MustCompile(`(?m)^[ \t]*extern "C" \{[ \t]*$`)
	externCloseRe  = regexp.MustCompile(`(?m)^\}[ \t]*$`)
	blankRunRe     = regexp.MustCompile(`\n[ \t]*\n([ \t]*\n)+`)
)

// Attribute macros with no semantic value once parsing is structural.
// WGPU_EXPORT and WGPU_FUNCTION_ATTRIBUTE survive cleanup because the
// function extractor anchors on them; WGPU_NULLABLE survives because
// the field parser consumes it.
var strippedAttributes = []string{
	"WGPU_OBJECT_ATTRIBUTE",
	"WGPU_ENUM_ATTRIBUTE",
	"WGPU_STRUCTURE_ATTRIBUTE",
	"WGPU_CALLBACK_INFO_STRUCT_ATTRIBUTE",
	"WGPU_OPTIONAL",
}

// Cleanup strips preprocessor noise, comments, attribute macros, and
// linkage wrappers from raw header text, leaving only the structural
// declarations the extractors scan.
func Cleanup(src string) (string, error) {
	src, err := removeSkipRegions(src)
	if err != nil {
		return "", err
	}

	src = blockCommentRe.ReplaceAllString(src, "")
	src = lineCommentRe.ReplaceAllString(src, "")
	src = preprocRe.ReplaceAllString(src, "")
	src = externOpenRe.ReplaceAllString(src, "")
	src = externCloseRe.ReplaceAllString(src, "")

	for _, attr := range strippedAttributes {
		src = strings.ReplaceAll(src, attr, "")
	}

	src = blankRunRe.ReplaceAllString(src, "\n\n")
	return strings.TrimSpace(src) + "\n", nil
}

func removeSkipRegions(src string) (string, error) {
	var b strings.Builder
	for {
		i := strings.Index(src, SkipBegin)
		if i < 0 {
			b.WriteString(src)
			return b.String(), nil
		}
		b.WriteString(src[:i])
		j := strings.Index(src[i:], SkipEnd)
		if j < 0 {
			return "", fmt.Errorf("%w (at offset %d)", ErrUnterminatedSkip, i)
		}
		src = src[i+j+len(SkipEnd):]
	}
}
