// Package i18n rewrites issue messages from message tables keyed by issue
// code. Paths, codes and snapshots are never changed.
package i18n

import (
	"strings"

	"github.com/reoring/vld"
)

// Resolver returns the message template for an issue key.
type Resolver interface {
	Resolve(key string) (string, bool)
}

// MapResolver is a fixed key to template table.
type MapResolver map[string]string

func (m MapResolver) Resolve(key string) (string, bool) {
	s, ok := m[key]
	return s, ok
}

// FuncResolver adapts a function to Resolver.
type FuncResolver func(key string) (string, bool)

func (f FuncResolver) Resolve(key string) (string, bool) { return f(key) }

// Chain tries each resolver in order. Nil entries are skipped.
func Chain(rs ...Resolver) Resolver {
	return FuncResolver(func(key string) (string, bool) {
		for _, r := range rs {
			if r == nil {
				continue
			}
			if s, ok := r.Resolve(key); ok {
				return s, true
			}
		}
		return "", false
	})
}

// TranslateIssue returns it with its message replaced by the template for
// its code key. Without a template the original message is kept.
func TranslateIssue(it vld.Issue, r Resolver) vld.Issue {
	if r == nil {
		return it
	}
	tmpl, ok := r.Resolve(it.Code.Key())
	if !ok {
		return it
	}
	pairs := make([]string, 0, 12)
	for _, p := range it.Code.Params() {
		pairs = append(pairs, "{"+p.Name+"}", p.Value)
	}
	pairs = append(pairs, "{field}", fieldName(it.Path))
	it.Message = strings.NewReplacer(pairs...).Replace(tmpl)
	return it
}

// Translate applies TranslateIssue to every issue. The input is not
// modified.
func Translate(iss vld.Issues, r Resolver) vld.Issues {
	if len(iss) == 0 {
		return iss
	}
	out := make(vld.Issues, len(iss))
	for i, it := range iss {
		out[i] = TranslateIssue(it, r)
	}
	return out
}

// fieldName is the name of the last field segment of p.
func fieldName(p vld.Path) string {
	for i := len(p) - 1; i >= 0; i-- {
		if !p[i].IsIndex {
			return p[i].Name
		}
	}
	return ""
}
