// Package extractor flattens corpus documents into plain text.
package extractor

import (
	"bufio"
	"bytes"
	"encoding/xml"
	"errors"
	"io"

	"golang.org/x/net/html/charset"

	"github.com/baditaflorin/go_sentence_bench/internal/pool"
	"github.com/baditaflorin/go_sentence_bench/internal/ports"
)

var (
	// errNoRoot is reported for documents without a root element.
	errNoRoot = errors.New("no element found")
	// errJunkAfterRoot is reported when content follows the root element.
	errJunkAfterRoot = errors.New("junk after document element")
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// XMLTextExtractor returns the character data of an XML document in document order.
//
// Text and tails of every element below the root are kept verbatim, entity
// references are decoded and CDATA sections are included. Comments, processing
// instructions and anything outside the root element are dropped.
type XMLTextExtractor struct {
	builders *pool.StringBuilderPool
}

// NewXMLTextExtractor creates an extractor with its own builder pool.
func NewXMLTextExtractor() *XMLTextExtractor {
	return &XMLTextExtractor{builders: pool.NewStringBuilderPool()}
}

var _ ports.TextExtractor = (*XMLTextExtractor)(nil)

// Extract parses r as well-formed XML and returns its flattened text.
// Syntax errors are returned as *xml.SyntaxError.
func (e *XMLTextExtractor) Extract(r io.Reader) (string, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	dec := xml.NewDecoder(br)
	dec.Strict = true
	dec.CharsetReader = charset.NewReaderLabel

	sb := e.builders.Get()
	defer e.builders.Put(sb)

	depth := 0
	seenRoot := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if depth == 0 && seenRoot {
				return "", e.syntaxError(dec, errJunkAfterRoot)
			}
			depth++
			seenRoot = true
		case xml.EndElement:
			depth--
		case xml.CharData:
			if depth > 0 {
				_, _ = sb.Write(t)
			} else if len(bytes.TrimSpace(t)) > 0 {
				if seenRoot {
					return "", e.syntaxError(dec, errJunkAfterRoot)
				}
				return "", e.syntaxError(dec, errors.New("text before root element"))
			}
		}
	}

	if !seenRoot {
		return "", e.syntaxError(dec, errNoRoot)
	}
	return sb.String(), nil
}

func (e *XMLTextExtractor) syntaxError(dec *xml.Decoder, err error) error {
	line, _ := dec.InputPos()
	return &xml.SyntaxError{Msg: err.Error(), Line: line}
}
