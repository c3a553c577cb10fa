package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSortVersionTags(t *testing.T) {
	tests := []struct {
		name     string
		tags     []string
		expected []string
	}{
		{
			name:     "numeric ordering beats lexical",
			tags:     []string{"1.2.0", "1.10.0", "1.9.1"},
			expected: []string{"1.10.0", "1.9.1", "1.2.0"},
		},
		{
			name:     "unparsable tags sort last",
			tags:     []string{"snapshot", "2.0.0"},
			expected: []string{"2.0.0", "snapshot"},
		},
		{
			name:     "empty input",
			tags:     nil,
			expected: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SortVersionTags(tt.tags)
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Fatalf("unexpected order (-want +got):\n%s", diff)
			}
		})
	}
}
