package renderer

import (
	"strings"
	"unicode"
)

// FileStem is the file name of an exported invoice, without extension.
// Characters of the number that are unsafe in a file name become '_', so the
// stem never contains a path separator.
func FileStem(number string) string {
	safe := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' || r == '.' {
			return r
		}
		return '_'
	}, number)
	return "Invoice-" + safe
}

// HTMLFileName is the name of the file a print export is saved to.
func HTMLFileName(number string) string { return FileStem(number) + ".html" }

// PDFFileName is the name of the file a PDF export is saved to.
func PDFFileName(number string) string { return FileStem(number) + ".pdf" }
