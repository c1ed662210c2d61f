package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func groupsNamed(names ...string) []SubscriptionGroup {
	groups := make([]SubscriptionGroup, 0, len(names))
	for _, n := range names {
		groups = append(groups, SubscriptionGroup{Name: n})
	}
	return groups
}

func TestSlugID(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"merchant with phone", "NETFLIX.COM 866-716-0414", "netflix-com-866-716-0414"},
		{"stars and dots", "OPENAI *CHATGPT SUBSCR OPENAI.COM", "openai-chatgpt-subscr-openai-com"},
		{"already clean", "starbucks", "starbucks"},
		{"surrounding junk trimmed", "***ACME***", "acme"},
		{"junk runs collapse to one hyphen", "A - B", "a-b"},
		{"only junk", "***", "subscription"},
		{"empty", "", "subscription"},
		{"non-ascii stripped", "CAFÉ MÜNCHEN", "caf-m-nchen"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SlugID(tt.input))
		})
	}
}

func TestChecklistIDs_Unique(t *testing.T) {
	ids := ChecklistIDs(groupsNamed("ACME", "acme", "ACME!!"))
	assert.Equal(t, []string{"acme", "acme-2", "acme-3"}, ids)
}

func TestChecklistIDs_SuffixCollision(t *testing.T) {
	// "ACME 2" slugs to "acme-2", the same id a collision suffix would
	// produce. The third group must not reuse it.
	ids := ChecklistIDs(groupsNamed("ACME", "ACME 2", "acme"))
	assert.Equal(t, []string{"acme", "acme-2", "acme-3"}, ids)
}

func TestChecklistIDs_Empty(t *testing.T) {
	assert.Empty(t, ChecklistIDs(nil))
}

func TestDocumentID(t *testing.T) {
	// the fingerprint ignores order
	assert.Equal(t, "7a256dee", DocumentID([]string{"a", "b"}))
	assert.Equal(t, "7a256dee", DocumentID([]string{"b", "a"}))

	// different sets produce different fingerprints
	assert.NotEqual(t, DocumentID([]string{"a"}), DocumentID([]string{"b"}))
	assert.NotEqual(t, DocumentID([]string{"ab", "c"}), DocumentID([]string{"a", "bc"}))

	assert.Regexp(t, "^[0-9a-f]{8}$", DocumentID(nil))
}

func TestDocumentID_DoesNotReorderInput(t *testing.T) {
	ids := []string{"b", "a"}
	DocumentID(ids)
	assert.Equal(t, []string{"b", "a"}, ids)
}

func TestStorageKey(t *testing.T) {
	key := StorageKey([]string{"netflix-com-866-716-0414"})
	assert.Equal(t, "subscription-checklist.d783e2ed", key)
}
