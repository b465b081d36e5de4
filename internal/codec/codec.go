// package codec implements the ordered key/value encoding used for shareable
// playlist links.
//
// A playlist is encoded as an "&"-joined sequence of "key=value" components,
// optionally prefixed by a "#" fragment marker. Keys are provider codes and
// values are media identifiers; duplicate keys are legal and order is
// significant.
package codec

import (
	"net/url"
	"sort"
	"strings"
)

// Pair is one decoded key/value component. When decoding a playlist the key is
// a provider code and the value a media identifier; when decoding a saved
// query the pairs are filter fields.
type Pair struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func (p Pair) String() string {
	return "(" + p.Key + "=" + p.Value + ")"
}

// isSeparator reports whether r separates components. ";" is accepted as a
// legacy alternative to "&".
func isSeparator(r rune) bool {
	return r == '&' || r == ';'
}

// unescape percent-decodes s, treating "+" as an encoded space. A malformed
// escape sequence falls back to the space-normalized raw substring rather than
// failing the whole decode.
func unescape(s string) string {
	spaced := strings.ReplaceAll(s, "+", " ")
	decoded, err := url.PathUnescape(spaced)
	if err != nil {
		return spaced
	}
	return decoded
}

// DecodeOrdered parses source into an ordered sequence of pairs, preserving
// duplicates and insertion order so the exact track sequence round-trips.
// A leading fragment marker is stripped. An empty source yields an empty
// (non-nil) slice.
func DecodeOrdered(source string) []Pair {
	pairs := []Pair{}
	for _, component := range split(source) {
		key, value, _ := strings.Cut(component, "=")
		if key == "" {
			continue
		}
		pairs = append(pairs, Pair{Key: unescape(key), Value: unescape(value)})
	}
	return pairs
}

// DecodeGrouped parses source into a mapping from key to the ordered list of
// values seen for that key. Repeated keys accumulate.
func DecodeGrouped(source string) map[string][]string {
	grouped := map[string][]string{}
	for _, pair := range DecodeOrdered(source) {
		grouped[pair.Key] = append(grouped[pair.Key], pair.Value)
	}
	return grouped
}

func split(source string) []string {
	source = strings.TrimPrefix(source, "#")
	return strings.FieldsFunc(source, isSeparator)
}

// Append adds one key=value component to an already-encoded string, joining
// with "&" only when the existing string is non-empty. It is a pure append:
// no re-sorting, no deduplication.
func Append(encoded, key, value string) string {
	component := url.QueryEscape(key) + "=" + url.QueryEscape(value)
	if encoded == "" {
		return component
	}
	return encoded + "&" + component
}

// Encode folds pairs through Append, producing the canonical wire form.
func Encode(pairs []Pair) string {
	encoded := ""
	for _, pair := range pairs {
		encoded = Append(encoded, pair.Key, pair.Value)
	}
	return encoded
}

// Canonical builds the canonical query string for a playlist's fields,
// independent of the order the caller supplied them in: field names are
// sorted, values keep their arrival order. Equal field sets always produce
// byte-identical output, which makes the result usable as a persistence key.
func Canonical(fields map[string][]string) string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	encoded := ""
	for _, name := range names {
		for _, value := range fields[name] {
			encoded = Append(encoded, name, value)
		}
	}
	return encoded
}
