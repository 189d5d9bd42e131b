package qparams

import (
	"strings"

	"github.com/indigo-web/minihttp/kv"
)

type CB = func(k string, v string)

func Into(s *kv.Storage) CB {
	return func(k string, v string) {
		s.Set(k, v)
	}
}

// Parse walks the query string, split by ampersands into pairs. Each pair is split by the first
// equality sign into key and value, both trimmed of surrounding whitespaces. Pairs without an
// equality sign are silently dropped. Neither keys nor values are percent-decoded.
func Parse(query string, cb CB) {
	for len(query) > 0 {
		var pair string
		pair, query, _ = strings.Cut(query, "&")

		key, value, found := strings.Cut(pair, "=")
		if !found {
			continue
		}

		cb(strings.TrimSpace(key), strings.TrimSpace(value))
	}
}
