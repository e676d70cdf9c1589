// SPDX-FileCopyrightText: 2026 pestgen
// SPDX-License-Identifier: FSL-1.1-MIT

package routes

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/pestgen/pestgen/pkg/types"
)

// ParseRouteList decodes the JSON document printed by
// `php artisan route:list --json`. Middleware may be an array or a single
// newline-joined string depending on the Laravel version; names may be null.
func ParseRouteList(data []byte) ([]types.Endpoint, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("empty route list")
	}

	data = documentStart(data)
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("route list is not valid JSON")
	}

	doc := gjson.ParseBytes(data)
	if !doc.IsArray() {
		return nil, fmt.Errorf("route list must be a JSON array")
	}

	var endpoints []types.Endpoint
	for _, r := range doc.Array() {
		uri := types.NormalizeURI(r.Get("uri").String())
		endpoints = append(endpoints, types.Endpoint{
			Name:       r.Get("name").String(),
			URI:        uri,
			Methods:    splitMethods(r.Get("method").String()),
			Handler:    types.ParseHandlerRef(r.Get("action").String()),
			Middleware: middlewareList(r.Get("middleware")),
			Parameters: types.ParameterNames(uri),
			Domain:     r.Get("domain").String(),
		})
	}

	return endpoints, nil
}

// documentStart skips warnings Artisan or PHP print before the document.
// Such lines often start with a bracket themselves ("[WARNING] ..."), so the
// document begins at the first '[' from which the rest is valid JSON.
func documentStart(data []byte) []byte {
	for i := 0; i < len(data); {
		start := bytes.IndexByte(data[i:], '[')
		if start < 0 {
			break
		}
		if candidate := data[i+start:]; gjson.ValidBytes(candidate) {
			return candidate
		}
		i += start + 1
	}
	return data
}

// splitMethods splits "GET|HEAD" into upper-case methods.
func splitMethods(s string) []string {
	var methods []string
	for _, m := range strings.Split(s, "|") {
		if m = strings.ToUpper(strings.TrimSpace(m)); m != "" {
			methods = append(methods, m)
		}
	}
	return methods
}

func middlewareList(v gjson.Result) []string {
	var list []string
	if v.IsArray() {
		for _, m := range v.Array() {
			list = append(list, m.String())
		}
		return list
	}
	for _, m := range strings.Split(v.String(), "\n") {
		if m = strings.TrimSpace(m); m != "" {
			list = append(list, m)
		}
	}
	return list
}
