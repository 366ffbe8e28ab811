package shopping

import (
	"bytes"
	"strconv"
)

// Attachment metadata for the rendered document.
const (
	Header      = "Список покупок:"
	Filename    = "shopping-list.txt"
	ContentType = "text/plain; charset=utf-8"
)

// Disposition is the Content-Disposition value for the download.
func Disposition() string {
	return "attachment; filename=" + Filename
}

// Render writes the header and one "<name>: <total>, <unit>" line per item.
// Every line, the header included, ends in '\n'.
func Render(items []Item) []byte {
	var b bytes.Buffer
	b.Grow(len(Header) + 1 + len(items)*32)

	b.WriteString(Header)
	b.WriteByte('\n')
	for _, it := range items {
		b.WriteString(it.Name)
		b.WriteString(": ")
		b.WriteString(strconv.FormatInt(it.Total, 10))
		b.WriteString(", ")
		b.WriteString(it.Unit)
		b.WriteByte('\n')
	}
	return b.Bytes()
}
