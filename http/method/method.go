package method

import "github.com/indigo-web/utils/strcomp"

type Method uint8

const (
	Unknown Method = iota
	GET
	HEAD
	POST
	PUT
	DELETE
	CONNECT
	OPTIONS
	TRACE
	PATCH

	// Count is the last one enum, so contains the greatest integer value of all the
	// methods. So real number of methods is lower by 1
	Count = iota - 1
)

// List contains all the supported HTTP methods. They are sorted by their integer value, however
// Unknown method is not included. So in order to index the List, you must subtract 1 first.
var List = []Method{GET, HEAD, POST, PUT, DELETE, CONNECT, OPTIONS, TRACE, PATCH}

var names = [...]string{
	Unknown: "UNKNOWN",
	GET:     "GET",
	HEAD:    "HEAD",
	POST:    "POST",
	PUT:     "PUT",
	DELETE:  "DELETE",
	CONNECT: "CONNECT",
	OPTIONS: "OPTIONS",
	TRACE:   "TRACE",
	PATCH:   "PATCH",
}

// Parse matches the token against known methods case-insensitively. Unknown is returned
// if nothing matched.
func Parse(str string) Method {
	switch len(str) {
	case 3:
		if strcomp.EqualFold(str, "GET") {
			return GET
		} else if strcomp.EqualFold(str, "PUT") {
			return PUT
		}
	case 4:
		if strcomp.EqualFold(str, "POST") {
			return POST
		} else if strcomp.EqualFold(str, "HEAD") {
			return HEAD
		}
	case 5:
		if strcomp.EqualFold(str, "PATCH") {
			return PATCH
		} else if strcomp.EqualFold(str, "TRACE") {
			return TRACE
		}
	case 6:
		if strcomp.EqualFold(str, "DELETE") {
			return DELETE
		}
	case 7:
		if strcomp.EqualFold(str, "CONNECT") {
			return CONNECT
		} else if strcomp.EqualFold(str, "OPTIONS") {
			return OPTIONS
		}
	}

	return Unknown
}

// IsValid reports whether the method is one of the List.
func (m Method) IsValid() bool {
	return m > Unknown && m <= Count
}

func (m Method) String() string {
	if int(m) >= len(names) {
		return names[Unknown]
	}

	return names[m]
}
