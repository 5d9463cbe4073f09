package extract

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/unicode/norm"
)

// Field is the result of an optional lookup: either Some(text) or None.
// Extractors never fail on a missing node, they return None instead.
type Field struct {
	text string
	ok   bool
}

var None = Field{}

func Some(text string) Field {
	return Field{text: text, ok: true}
}

func (f Field) Get() (string, bool) {
	return f.text, f.ok
}

func (f Field) IsSome() bool {
	return f.ok
}

// Ptr converts the field to the nullable form used by the models.
func (f Field) Ptr() *string {
	if !f.ok {
		return nil
	}
	s := f.text
	return &s
}

// Map applies fn to the text of a Some field.
func (f Field) Map(fn func(string) string) Field {
	if !f.ok {
		return f
	}
	return Some(fn(f.text))
}

func (f Field) OrElse(other Field) Field {
	if f.ok {
		return f
	}
	return other
}

// NonEmpty turns Some("") into None.
func (f Field) NonEmpty() Field {
	if f.ok && f.text == "" {
		return None
	}
	return f
}

// TrimPrefix strips a literal prefix when present.
func (f Field) TrimPrefix(prefix string) Field {
	if prefix == "" {
		return f
	}
	return f.Map(func(s string) string { return strings.TrimPrefix(s, prefix) })
}

// clean trims surrounding whitespace (including non-breaking spaces) and
// normalizes to NFC so that visually equal names compare equal.
func clean(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

func exists(scope *goquery.Selection, selector string) bool {
	return scope.Find(selector).Length() > 0
}

// Text returns the trimmed text of the first element matching selector.
func Text(scope *goquery.Selection, selector string) Field {
	return NodeText(scope.Find(selector).First())
}

// NodeText returns the trimmed text of sel, or None if sel is empty.
func NodeText(sel *goquery.Selection) Field {
	if sel.Length() == 0 {
		return None
	}
	return Some(clean(sel.Text()))
}

// Attr returns the trimmed attribute of the first element matching selector.
func Attr(scope *goquery.Selection, selector, attr string) Field {
	val, ok := scope.Find(selector).First().Attr(attr)
	if !ok {
		return None
	}
	return Some(clean(val))
}

// Nth returns the trimmed text of the i-th element of sel.
func Nth(sel *goquery.Selection, i int) Field {
	if i < 0 || i >= sel.Length() {
		return None
	}
	return NodeText(sel.Eq(i))
}

// ResolveURL resolves ref against base the way a browser resolves img.src.
func ResolveURL(base string, ref Field) Field {
	raw, ok := ref.Get()
	if !ok || raw == "" {
		return None
	}
	refURL, err := url.Parse(raw)
	if err != nil {
		return None
	}
	baseURL, err := url.Parse(base)
	if err != nil || base == "" {
		if refURL.IsAbs() {
			return Some(refURL.String())
		}
		return None
	}
	return Some(baseURL.ResolveReference(refURL).String())
}

// LastPathSegment returns the final segment of the URL path, or None when
// the URL cannot be split into a non-empty final segment.
func LastPathSegment(raw Field) Field {
	s, ok := raw.Get()
	if !ok {
		return None
	}
	u, err := url.Parse(s)
	if err != nil {
		return None
	}
	segments := strings.Split(u.Path, "/")
	last := segments[len(segments)-1]
	if last == "" {
		return None
	}
	return Some(last)
}
