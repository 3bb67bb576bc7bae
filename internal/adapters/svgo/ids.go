package svgo

import (
	"strings"

	"github.com/beevik/etree"
)

// minifyIDs renames every id below root to a short generated name and rewrites
// url(#id) and #id references to match.
func minifyIDs(root *etree.Element) {
	renames := make(map[string]string)
	var collect func(el *etree.Element)
	collect = func(el *etree.Element) {
		if id := el.SelectAttrValue("id", ""); id != "" {
			if _, ok := renames[id]; !ok {
				renames[id] = shortID(len(renames))
			}
		}
		for _, child := range el.ChildElements() {
			collect(child)
		}
	}
	collect(root)

	if len(renames) == 0 {
		return
	}

	pairs := make([]string, 0, len(renames)*2)
	for from, to := range renames {
		pairs = append(pairs, "url(#"+from+")", "url(#"+to+")")
	}
	urls := strings.NewReplacer(pairs...)

	var rewrite func(el *etree.Element)
	rewrite = func(el *etree.Element) {
		for i := range el.Attr {
			attr := &el.Attr[i]
			switch {
			case attr.Key == "id":
				attr.Value = renames[attr.Value]
			case attr.Key == "href" && strings.HasPrefix(attr.Value, "#"):
				if to, ok := renames[attr.Value[1:]]; ok {
					attr.Value = "#" + to
				}
			default:
				attr.Value = urls.Replace(attr.Value)
			}
		}
		for _, child := range el.ChildElements() {
			rewrite(child)
		}
	}
	rewrite(root)
}

// shortID returns the n-th identifier of the sequence a, b, ..., z, aa, ab, ...
func shortID(n int) string {
	var b []byte
	for n >= 0 {
		b = append([]byte{byte('a' + n%26)}, b...)
		n = n/26 - 1
	}
	return string(b)
}
