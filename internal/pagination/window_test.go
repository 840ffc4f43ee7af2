package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindowDoNotRender(t *testing.T) {
	for _, total := range []int{-1, 0, 1} {
		tokens, ok := Window(1, total)
		assert.False(t, ok, "total=%d", total)
		assert.Nil(t, tokens)
	}
}

func TestWindowExamples(t *testing.T) {
	tests := []struct {
		current, total int
		want           []Token
	}{
		{5, 10, []Token{PageToken(1), Gap(), PageToken(4), PageToken(5), PageToken(6), Gap(), PageToken(10)}},
		{1, 3, []Token{PageToken(1), PageToken(2), PageToken(3)}},
		{1, 2, []Token{PageToken(1), PageToken(2)}},
		{2, 2, []Token{PageToken(1), PageToken(2)}},
		{1, 10, []Token{PageToken(1), PageToken(2), Gap(), PageToken(10)}},
		{10, 10, []Token{PageToken(1), Gap(), PageToken(9), PageToken(10)}},
		{3, 5, []Token{PageToken(1), PageToken(2), PageToken(3), PageToken(4), PageToken(5)}},
		{4, 10, []Token{PageToken(1), Gap(), PageToken(3), PageToken(4), PageToken(5), Gap(), PageToken(10)}},
	}

	for _, tt := range tests {
		got, ok := Window(tt.current, tt.total)
		require.True(t, ok)
		assert.Equal(t, tt.want, got, "current=%d total=%d", tt.current, tt.total)
	}
}

// Every window contains the bounds exactly once, ascends strictly, and only
// places an ellipsis over a real gap.
func TestWindowProperties(t *testing.T) {
	for total := 2; total <= 30; total++ {
		for current := 1; current <= total; current++ {
			tokens, ok := Window(current, total)
			require.True(t, ok)

			first, last := 0, 0
			prev := 0
			for i, tok := range tokens {
				if tok.Ellipsis {
					require.Greater(t, i, 0)
					require.Less(t, i, len(tokens)-1)
					next := tokens[i+1]
					require.False(t, next.Ellipsis)
					assert.GreaterOrEqual(t, next.Page-prev, 2,
						"ellipsis without gap at current=%d total=%d", current, total)
					continue
				}
				if tok.Page == 1 {
					first++
				}
				if tok.Page == total {
					last++
				}
				assert.Greater(t, tok.Page, prev, "not ascending at current=%d total=%d", current, total)
				if i > 0 && !tokens[i-1].Ellipsis {
					assert.Equal(t, prev+1, tok.Page, "gap without ellipsis at current=%d total=%d", current, total)
				}
				prev = tok.Page
			}
			assert.Equal(t, 1, first)
			assert.Equal(t, 1, last)
		}
	}
}

func TestWindowClampsCurrent(t *testing.T) {
	got, ok := Window(99, 4)
	require.True(t, ok)
	assert.Equal(t, []Token{PageToken(1), Gap(), PageToken(3), PageToken(4)}, got)
}

func TestPrevNext(t *testing.T) {
	p, ok := Prev(1)
	assert.False(t, ok)
	assert.Equal(t, 1, p)

	p, ok = Prev(3)
	assert.True(t, ok)
	assert.Equal(t, 2, p)

	n, ok := Next(5, 5)
	assert.False(t, ok)
	assert.Equal(t, 5, n)

	n, ok = Next(4, 5)
	assert.True(t, ok)
	assert.Equal(t, 5, n)
}

func TestTokenString(t *testing.T) {
	assert.Equal(t, "7", PageToken(7).String())
	assert.Equal(t, "…", Gap().String())
}
