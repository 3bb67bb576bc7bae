// Package html splices the sprite document into HTML pages.
package html

import (
	"bytes"
	"io"

	"go.trai.ch/spritz/internal/core/domain"
	"go.trai.ch/spritz/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/net/html"
)

var _ ports.Injector = (*Injector)(nil)

const (
	tagBody = "body"
	tagSVG  = "svg"
)

// Injector places the sprite inside <body> using the x/net/html tokenizer, so
// markup inside comments, scripts and attribute values is never mistaken for tags.
type Injector struct{}

// NewInjector creates a new Injector.
func NewInjector() *Injector {
	return &Injector{}
}

// span is a half-open byte range of the page.
type span struct {
	start, end int
}

// layout holds the offsets found by one tokenizer pass.
type layout struct {
	bodyOpenEnd    int
	bodyCloseStart int
	existing       *span
}

// Inject returns page with the sprite placed at pos, replacing a sprite that
// was injected earlier under the same root id.
func (i *Injector) Inject(page []byte, sprite *domain.Sprite, pos domain.InjectPosition) ([]byte, error) {
	if pos == domain.InjectNone || sprite == nil {
		return page, nil
	}

	l, err := locate(page, sprite.RootID)
	if err != nil {
		return nil, err
	}
	if l.bodyOpenEnd < 0 {
		return page, nil
	}

	if l.existing != nil {
		removed := l.existing.end - l.existing.start
		stripped := make([]byte, 0, len(page)-removed)
		stripped = append(stripped, page[:l.existing.start]...)
		stripped = append(stripped, page[l.existing.end:]...)
		page = stripped

		if l.bodyOpenEnd > l.existing.start {
			l.bodyOpenEnd -= removed
		}
		if l.bodyCloseStart > l.existing.start {
			l.bodyCloseStart -= removed
		}
	}

	at := l.bodyOpenEnd
	if pos == domain.InjectBodyLast {
		at = len(page)
		if l.bodyCloseStart >= 0 {
			at = l.bodyCloseStart
		}
	}

	var buf bytes.Buffer
	buf.Grow(len(page) + len(sprite.Markup))
	buf.Write(page[:at])
	buf.WriteString(sprite.Markup)
	buf.Write(page[at:])
	return buf.Bytes(), nil
}

// locate tokenizes page once and records where <body> opens and closes and
// where a previously injected sprite sits.
//
//nolint:cyclop // single tokenizer pass
func locate(page []byte, rootID string) (layout, error) {
	l := layout{bodyOpenEnd: -1, bodyCloseStart: -1}
	z := html.NewTokenizer(bytes.NewReader(page))

	offset := 0
	depth := 0
	start := -1

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if err := z.Err(); err != io.EOF {
				return layout{}, zerr.Wrap(err, domain.ErrPageTransformFailed.Error())
			}
			return l, nil
		}

		raw := len(z.Raw())
		name, hasAttr := z.TagName()
		tag := string(name)

		switch tt {
		case html.StartTagToken, html.SelfClosingTagToken:
			switch {
			case tag == tagBody && l.bodyOpenEnd < 0:
				l.bodyOpenEnd = offset + raw
			case tag == tagSVG && depth > 0 && tt == html.StartTagToken:
				depth++
			case tag == tagSVG && l.existing == nil && depth == 0 && hasAttr && hasID(z, rootID):
				if tt == html.SelfClosingTagToken {
					l.existing = &span{start: offset, end: offset + raw}
					break
				}
				start = offset
				depth = 1
			}
		case html.EndTagToken:
			switch {
			case tag == tagBody:
				l.bodyCloseStart = offset
			case tag == tagSVG && depth > 0:
				depth--
				if depth == 0 {
					l.existing = &span{start: start, end: offset + raw}
				}
			}
		default:
		}

		offset += raw
	}
}

// hasID reports whether the current tag carries id="rootID".
func hasID(z *html.Tokenizer, rootID string) bool {
	for {
		key, val, more := z.TagAttr()
		if string(key) == "id" && string(val) == rootID {
			return true
		}
		if !more {
			return false
		}
	}
}
