package ports

import "io"

// TextExtractor flattens a structured document into its plain text content.
type TextExtractor interface {
	Extract(r io.Reader) (string, error)
}
