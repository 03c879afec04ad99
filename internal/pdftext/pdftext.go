// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdftext implements the built-in pure-Go PDF text extraction
// backend, used when the external pdftotext utility is not installed.
package pdftext

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/ledongthuc/pdf"
	"github.com/sirupsen/logrus"
)

// ExtractText returns the plain text of every page of the PDF. Text
// positioning operators are rendered as line breaks so field-marker lines
// keep their own line in the output.
func ExtractText(pdfPath string) (string, error) {
	f, r, err := pdf.Open(pdfPath)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", pdfPath, err)
	}
	defer f.Close()

	var buf bytes.Buffer
	fonts := make(map[string]*pdf.Font)
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.Kind() == pdf.Null {
			continue
		}
		for _, name := range p.Fonts() { // cache fonts so we don't continually parse charmaps
			if _, ok := fonts[name]; !ok {
				logrus.Debugf("font: %s %s", name, p.Font(name).BaseFont())
				pf := p.Font(name)
				fonts[name] = &pf
			}
		}

		text, err := pageText(p, fonts)
		if err != nil {
			return "", fmt.Errorf("page %d of %s: %w", i, pdfPath, err)
		}
		buf.WriteString(text)
		buf.WriteString("\n")
	}
	return buf.String(), nil
}

// pageText interprets the page content stream and accumulates shown text.
// Malformed streams make the interpreter panic; the recover turns that into
// a per-page error instead of taking the batch down.
func pageText(p pdf.Page, fonts map[string]*pdf.Font) (result string, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = ""
			err = errors.New(fmt.Sprint(r))
		}
	}()

	strm := p.V.Key("Contents")
	var enc pdf.TextEncoding = &nopEncoder{}

	var textBuilder bytes.Buffer
	showText := func(s string) {
		for _, ch := range enc.Decode(s) {
			if _, err := textBuilder.WriteRune(ch); err != nil {
				panic(err)
			}
		}
	}

	pdf.Interpret(strm, func(stk *pdf.Stack, op string) {
		n := stk.Len()
		args := make([]pdf.Value, n)
		for i := n - 1; i >= 0; i-- {
			args[i] = stk.Pop()
		}

		switch op {
		default:
			return
		case "T*", "Td", "TD": // move to start of next line
			showText("\n")
		case "Tf": // set text font and size
			if len(args) != 2 {
				panic("bad Tf")
			}
			if font, ok := fonts[args[0].Name()]; ok {
				enc = font.Encoder()
			} else {
				enc = &nopEncoder{}
			}
		case "\"": // set spacing, move to next line, and show text
			if len(args) != 3 {
				logrus.Warnf("bad \" operator")
				return
			}
			showText("\n")
			showText(args[2].RawString())
		case "'": // move to next line and show text
			if len(args) != 1 {
				logrus.Warnf("bad ' operator")
				return
			}
			showText("\n")
			showText(args[0].RawString())
		case "Tj": // show text
			if len(args) != 1 {
				logrus.Warnf("bad Tj operator")
				return
			}
			showText(args[0].RawString())
		case "TJ": // show text, allowing individual glyph positioning
			v := args[0]
			for i := 0; i < v.Len(); i++ {
				x := v.Index(i)
				if x.Kind() == pdf.String {
					showText(x.RawString())
				}
			}
		}
	})
	return textBuilder.String(), nil
}

// nopEncoder passes raw strings through when a font has no usable charmap.
type nopEncoder struct{}

func (e *nopEncoder) Decode(raw string) (text string) {
	return raw
}
