package words

import (
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tenWords = "one two three four five six seven eight nine ten"

func TestLoadSplitsOnWhitespaceRuns(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Load("inline", "  alpha\tbeta\n\n gamma  "))

	idx, n := s.Position()
	assert.Equal(t, 0, idx)
	assert.Equal(t, 3, n)
	assert.Equal(t, "alpha", s.Word())
	assert.Equal(t, "inline", s.Source())
}

func TestLoadEmptyCorpus(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t \r\n"} {
		s := NewStore()
		err := s.Load("blank.txt", text)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrEmptyCorpus)

		var le *LoadError
		require.ErrorAs(t, err, &le)
		assert.Equal(t, "blank.txt", le.Source)
		assert.Equal(t, 0, s.Len())
	}
}

func TestFailedLoadKeepsPreviousCorpus(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Load("a", "x y z"))
	s.Advance(2)

	require.Error(t, s.Load("b", " "))
	idx, n := s.Position()
	assert.Equal(t, 2, idx)
	assert.Equal(t, 3, n)
	assert.Equal(t, "z", s.Word())
	assert.Equal(t, "a", s.Source())
}

func TestLoadResetsPosition(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Load("a", tenWords))
	s.Advance(5)
	require.NoError(t, s.Load("b", "fresh words"))
	idx, _ := s.Position()
	assert.Equal(t, 0, idx)
	assert.Equal(t, "fresh", s.Word())
}

func TestAdvanceClampsAtBothEnds(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Load("ten", tenWords))

	for i := 0; i < 15; i++ {
		s.Advance(1)
	}
	idx, _ := s.Position()
	assert.Equal(t, 9, idx)
	assert.Equal(t, "ten", s.Word())
	assert.True(t, s.AtEnd())

	for i := 0; i < 20; i++ {
		s.Advance(-1)
	}
	idx, _ = s.Position()
	assert.Equal(t, 0, idx)
	assert.Equal(t, "one", s.Word())
	assert.False(t, s.AtEnd())
}

func TestAdvanceSaturatesOnExtremeDeltas(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Load("ten", tenWords))
	s.Advance(3)

	assert.Equal(t, "ten", s.Advance(math.MaxInt))
	assert.Equal(t, "one", s.Advance(math.MinInt))
}

func TestAdvanceOnEmptyStoreIsNoop(t *testing.T) {
	s := NewStore()
	assert.Equal(t, "", s.Advance(3))
	idx, n := s.Position()
	assert.Equal(t, 0, idx)
	assert.Equal(t, 0, n)
	assert.True(t, s.AtEnd())
}

func TestAdvanceStaysInBoundsForRandomWalks(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 50; trial++ {
		n := 1 + rng.Intn(40)
		s := NewStore()
		require.NoError(t, s.Load("rand", strings.Repeat("w ", n)))

		for step := 0; step < 200; step++ {
			s.Advance(rng.Intn(21) - 10)
			idx, length := s.Position()
			require.Equal(t, n, length)
			require.GreaterOrEqual(t, idx, 0)
			require.LessOrEqual(t, idx, n-1)
		}
	}
}

func TestWordMatchesIndexAfterEveryMutation(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Load("ten", tenWords))
	all := strings.Fields(tenWords)
	for _, d := range []int{1, 4, -2, 100, -7, 0, -100} {
		w := s.Advance(d)
		idx, _ := s.Position()
		assert.Equal(t, all[idx], w)
		assert.Equal(t, all[idx], s.Word())
	}
}
