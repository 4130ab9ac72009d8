// Copyright (c) 2026 ElQasr. All rights reserved.
// Author: mohamed.magdy@elqasr-dev.com

package querycache

import (
	"strconv"
	"strings"
)

// Param is a single key segment. Order is significant: two keys with the
// same params in different order are different keys.
type Param struct {
	Name  string
	Value string
}

// P builds a string param.
func P(name, value string) Param {
	return Param{Name: name, Value: value}
}

// PInt builds an integer param.
func PInt(name string, value int) Param {
	return Param{Name: name, Value: strconv.Itoa(value)}
}

// Key identifies one cached query: a resource name plus an ordered list of
// parameters. Each distinct combination — including each page of a
// paginated list — caches independently.
type Key struct {
	resource  string
	params    []Param
	canonical string
}

// NewKey builds a cache key. Params are kept in the order given; callers
// are expected to pass them in a fixed order so equal queries produce
// equal keys.
func NewKey(resource string, params ...Param) Key {
	var builder strings.Builder
	builder.WriteString(resource)
	for _, param := range params {
		builder.WriteByte('|')
		builder.WriteString(param.Name)
		builder.WriteByte('=')
		builder.WriteString(param.Value)
	}

	return Key{
		resource:  resource,
		params:    params,
		canonical: builder.String(),
	}
}

// Resource returns the resource segment of the key.
func (k Key) Resource() string {
	return k.resource
}

// String returns the canonical serialized form, used as the map key and in
// log lines.
func (k Key) String() string {
	return k.canonical
}
