package internal

import (
	"fmt"
	"hash/fnv"
	"sort"
	"strings"
)

const storageKeyPrefix = "subscription-checklist."

// SlugID turns a merchant name into a stable DOM and storage identifier.
// The name is lowercased and every run of characters outside ASCII letters
// and digits collapses to a single hyphen.
func SlugID(name string) string {
	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(name) {
		alnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if alnum {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		} else {
			pendingHyphen = true
		}
	}
	if b.Len() == 0 {
		return "subscription"
	}
	return b.String()
}

// ChecklistIDs assigns each group a unique slug. Collisions get a numeric
// suffix in group order, so IDs are stable for a given detection result.
func ChecklistIDs(groups []SubscriptionGroup) []string {
	ids := make([]string, 0, len(groups))
	used := make(map[string]bool, len(groups))
	for _, g := range groups {
		base := SlugID(g.Name)
		id := base
		for n := 2; used[id]; n++ {
			id = fmt.Sprintf("%s-%d", base, n)
		}
		used[id] = true
		ids = append(ids, id)
	}
	return ids
}

// DocumentID fingerprints a set of checklist IDs, independent of order.
// Checklists with the same subscriptions share saved state; any change to
// the set starts fresh.
func DocumentID(ids []string) string {
	sorted := make([]string, len(ids))
	copy(sorted, ids)
	sort.Strings(sorted)

	h := fnv.New32a()
	for _, id := range sorted {
		h.Write([]byte(id))
		h.Write([]byte{'\n'})
	}
	return fmt.Sprintf("%08x", h.Sum32())
}

// StorageKey returns the localStorage key for a checklist document.
func StorageKey(ids []string) string {
	return storageKeyPrefix + DocumentID(ids)
}
