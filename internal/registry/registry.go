// Package registry holds the static channel-group configuration.
package registry

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownGroup is returned when a group selector names no configured group.
var ErrUnknownGroup = errors.New("unknown channel group")

// Group names accepted by grouped searches.
const (
	GroupIndia = "india"
	GroupUSA   = "usa"
	GroupBoth  = "both"
)

// financeChannels maps region → channel display name → channel ID.
// Defined at process start; never mutated during a run.
var financeChannels = map[string]map[string]string{
	GroupIndia: {
		"Pranjal Kamra":       "UCwAdQUuPT6laN-AQR17fe1g",
		"Ankur Warikoo":       "UCHYubNqqsWGTN2SF-y8jPmQ",
		"Shashank Udupa":      "UCdUEJABvX8XKu3HyDSczqhA",
		"Finance with Sharan": "UCwVEhEzsjLym_u1he4XWFkg",
		"Akshat Srivastava":   "UCqW8jxh4tH1Z1sWPbkGWL4g",
		"Labour Law Advisor":  "UCVOTBwF0vnSxMRIbfSE_K_g",
		"Udayan Adhye":        "UCLQOtbB1COQwjcCEPB2pa8w",
		"Sanjay Kathuria":     "UCTMr5SnqHtCM2lMAI31gtFA",
		"Financially free":    "UCkGjGT2B7LoDyL2T4pHsUqw",
		"Powerup Money":       "UC_eLanNOt5ZiKkZA2Fay8SA",
		"Shankar Nath":        "UCtnItzU7q_bA1eoEBjqcVrw",
		"Wint Wealth":         "UCggPd3Vf9ooG2r4I_ZNWBzA",
		"Invest aaj for Kal":  "UCWHCXSKASuSzao_pplQ7SPw",
		"Rahul Jain":          "UC2MU9phoTYy5sigZCkrvwiw",
	},
	GroupUSA: {
		"Graham Stephan":               "UCV6KDgJskWaEckne5aPA0aQ",
		"Mark Tilbury":                 "UCxgAuX3XZROujMmGphN_scA",
		"Andrei Jikh":                  "UCGy7SkBjcIAgTiwkXEtPnYg",
		"Humphrey Yang":                "UCFBpVaKCC0ajGps1vf0AgBg",
		"Brian Jung":                   "UCQglaVhGOBI0BR5S6IJnQPg",
		"Nischa":                       "UCQpPo9BNwezg54N9hMFQp6Q",
		"I will teach you to be rich":  "UC7ZddA__ewP3AtDefjl_tWg",
	},
}

// Registry resolves channel-group names to channel ID sets.
type Registry struct {
	groups map[string][]string
}

// New builds the registry from the static configuration. Channel IDs within
// a group are deduplicated and kept in a stable order.
func New() *Registry {
	r := &Registry{groups: make(map[string][]string)}
	for region, channels := range financeChannels {
		r.groups[region] = uniqueIDs(channels)
	}
	return r
}

// Resolve returns the channel IDs for a group. The "both" group (or an empty
// selector) resolves to the union of all groups. Unknown names are rejected.
func (r *Registry) Resolve(group string) ([]string, error) {
	if group == "" || group == GroupBoth {
		var all []string
		seen := make(map[string]struct{})
		for _, region := range []string{GroupIndia, GroupUSA} {
			for _, id := range r.groups[region] {
				if _, ok := seen[id]; ok {
					continue
				}
				seen[id] = struct{}{}
				all = append(all, id)
			}
		}
		return all, nil
	}

	ids, ok := r.groups[group]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownGroup, group)
	}
	return ids, nil
}

// Groups returns the available group names and their channel counts.
func (r *Registry) Groups() map[string]int {
	out := make(map[string]int, len(r.groups))
	for name, ids := range r.groups {
		out[name] = len(ids)
	}
	return out
}

func uniqueIDs(channels map[string]string) []string {
	// Sort names for a deterministic channel order within the group.
	names := make([]string, 0, len(channels))
	for name := range channels {
		names = append(names, name)
	}
	sort.Strings(names)

	seen := make(map[string]struct{}, len(channels))
	ids := make([]string, 0, len(channels))
	for _, name := range names {
		id := channels[name]
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
