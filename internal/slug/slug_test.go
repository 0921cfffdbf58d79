package slug_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerforge/careerforge/internal/slug"
)

func TestMake(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		in     string
		maxLen int
		want   string
	}{
		{
			name:   "plain title",
			in:     "Senior Frontend Engineer",
			maxLen: 100,
			want:   "senior-frontend-engineer",
		},
		{
			name:   "special characters stripped",
			in:     "Product Manager (Remote) - $100k+",
			maxLen: 100,
			want:   "product-manager-remote-100k",
		},
		{
			name:   "company name",
			in:     "Acme Corp",
			maxLen: 50,
			want:   "acme-corp",
		},
		{
			name:   "surrounding whitespace",
			in:     "  Data Scientist  ",
			maxLen: 100,
			want:   "data-scientist",
		},
		{
			name:   "multiple interior spaces collapse",
			in:     "Staff   Site   Reliability   Engineer",
			maxLen: 100,
			want:   "staff-site-reliability-engineer",
		},
		{
			name:   "existing hyphens collapse",
			in:     "DevOps -- Platform",
			maxLen: 100,
			want:   "devops-platform",
		},
		{
			name:   "truncated to max length",
			in:     strings.Repeat("engineer ", 20),
			maxLen: 100,
			want:   strings.Repeat("engineer-", 20)[:100],
		},
		{
			name:   "unicode stripped",
			in:     "Développeur Sénior",
			maxLen: 100,
			want:   "dveloppeur-snior",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := slug.Make(tt.in, tt.maxLen)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, len(got), tt.maxLen)
		})
	}
}

func TestRandomSuffix(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for range 50 {
		s := slug.RandomSuffix(5)
		require.Len(t, s, 5)
		for _, c := range s {
			assert.True(t, (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9'), "unexpected character %q", c)
		}
		seen[s] = true
	}

	// 50 draws from 36^5 values colliding down to a handful would mean the
	// generator is broken.
	assert.Greater(t, len(seen), 40)
}

func TestWithSuffix(t *testing.T) {
	t.Parallel()

	s := slug.WithSuffix("senior-frontend-engineer", 5)
	assert.True(t, strings.HasPrefix(s, "senior-frontend-engineer-"))
	assert.Len(t, s, len("senior-frontend-engineer")+6)
}
