// SPDX-FileCopyrightText: 2026 pestgen
// SPDX-License-Identifier: FSL-1.1-MIT

package analyzer

import (
	"github.com/pestgen/pestgen/internal/config"
	"github.com/pestgen/pestgen/pkg/types"
)

// Group partitions endpoints into generation units. Grouped mode keys units
// by controller class, flat mode by Class@action. Endpoints without a
// controller land in the ClosureGroup unit. Units keep first-seen order and
// endpoints keep encounter order within a unit.
func Group(endpoints []types.Endpoint, mode string) []types.Unit {
	var units []types.Unit
	index := make(map[string]int)

	for _, ep := range endpoints {
		key := unitKey(ep.Handler, mode)

		i, ok := index[key]
		if !ok {
			i = len(units)
			index[key] = i
			units = append(units, types.Unit{Key: key, Handler: ep.Handler})
		}
		units[i].Endpoints = append(units[i].Endpoints, ep)
	}

	return units
}

func unitKey(ref types.HandlerRef, mode string) string {
	if !ref.IsResolvable() {
		return types.ClosureGroup
	}
	if mode == config.OrganizationFlat {
		return ref.String()
	}
	return ref.Class
}
