// Package rewriter turns SVG markup into the templated form written to
// .liquid files.
//
// The rewrite is a pure text transform and never fails. It is deliberately
// not an XML parser: tags are found as the shortest span from the opening
// token to the next '>', so an attribute value that itself contains '>' cuts
// the tag short. Malformed input is rewritten on a best-effort basis.
//
// The transform runs in three steps:
//
//  1. StripXMLDeclaration drops a leading <?xml ... ?> declaration.
//  2. RewriteSVGTag removes width/height from the first <svg> tag, sets or
//     inserts viewBox, and inserts class when the tag has none.
//  3. InjectPathFill adds fill to every <path> tag that lacks one.
//
// Path tags are rewritten in a single left-to-right pass that copies the
// document into a builder, so earlier insertions never shift the offsets of
// tags that are still to be visited.
package rewriter

import (
	"strings"

	"github.com/conneroisu/s2l/internal/types"
)

const (
	xmlDeclOpen  = "<?xml"
	xmlDeclClose = "?>"
	svgToken     = "<svg"
	pathToken    = "<path"
)

// Rewrite applies all three steps to src.
func Rewrite(src string, viewBox types.ViewBox, className, fill string) string {
	out := StripXMLDeclaration(src)
	out = RewriteSVGTag(out, viewBox, className)
	return InjectPathFill(out, fill)
}

// RewriteDescriptor rewrites src with the attributes carried by fd.
func RewriteDescriptor(src string, fd types.FileDescriptor) string {
	return Rewrite(src, fd.ViewBox, fd.ClassName, fd.Fill)
}

// StripXMLDeclaration removes everything up to and including the first "?>"
// when src starts with "<?xml". Otherwise src is returned unchanged.
func StripXMLDeclaration(src string) string {
	if !strings.HasPrefix(src, xmlDeclOpen) {
		return src
	}
	idx := strings.Index(src, xmlDeclClose)
	if idx < 0 {
		return src
	}
	return src[idx+len(xmlDeclClose):]
}

// RewriteSVGTag rewrites the first <svg> opening tag of src:
//   - every width and height attribute is removed
//   - an existing viewBox gets viewBox.String() as its value; otherwise one
//     is inserted right after "<svg"
//   - class is inserted after "<svg" (following an inserted viewBox) when
//     className is non-empty and the tag has no class attribute. An existing
//     class is never overwritten.
//
// src is returned unchanged when it has no complete <svg> tag.
func RewriteSVGTag(src string, viewBox types.ViewBox, className string) string {
	start, end := findTag(src, 0, svgToken)
	if start < 0 {
		return src
	}
	body := src[start+len(svgToken) : end]
	vb := viewBox.String()

	var rebuilt strings.Builder
	rebuilt.Grow(len(body) + len(vb) + len(className) + 24)

	hasViewBox, hasClass := false, false
	cursor := 0
	for _, a := range parseAttrs(body) {
		switch a.name {
		case "width", "height":
			rebuilt.WriteString(body[cursor:a.start])
			cursor = a.end
		case "viewBox":
			hasViewBox = true
			if a.hasValue() {
				rebuilt.WriteString(body[cursor:a.valStart])
				rebuilt.WriteString(vb)
				cursor = a.valEnd
			} else {
				rebuilt.WriteString(body[cursor:a.nameStart])
				rebuilt.WriteString(`viewBox="` + vb + `"`)
				cursor = a.end
			}
		case "class":
			hasClass = true
		}
	}
	rebuilt.WriteString(body[cursor:])

	var inserted []string
	if !hasViewBox {
		inserted = append(inserted, `viewBox="`+vb+`"`)
	}
	if className != "" && !hasClass {
		inserted = append(inserted, `class="`+className+`"`)
	}

	var out strings.Builder
	out.Grow(len(src) + len(vb) + len(className) + 24)
	out.WriteString(src[:start])
	out.WriteString(svgToken)
	if len(inserted) > 0 {
		out.WriteByte(' ')
		out.WriteString(strings.Join(inserted, " "))
	}
	out.WriteString(rebuilt.String())
	out.WriteString(src[end:])
	return out.String()
}

// InjectPathFill inserts fill="<fill>" right after "<path" in every path tag
// that has no fill attribute. Tags that already declare fill are untouched.
// An empty fill returns src unchanged.
func InjectPathFill(src, fill string) string {
	if fill == "" {
		return src
	}
	insert := ` fill="` + fill + `"`

	var out strings.Builder
	cursor := 0
	for {
		start, end := findTag(src, cursor, pathToken)
		if start < 0 {
			break
		}
		tokenEnd := start + len(pathToken)
		if !hasAttr(src[tokenEnd:end], "fill") {
			if out.Len() == 0 {
				out.Grow(len(src) + len(insert)*4)
			}
			out.WriteString(src[cursor:tokenEnd])
			out.WriteString(insert)
			out.WriteString(src[tokenEnd : end+1])
		} else {
			out.WriteString(src[cursor : end+1])
		}
		cursor = end + 1
	}
	if cursor == 0 {
		return src
	}
	out.WriteString(src[cursor:])
	return out.String()
}
