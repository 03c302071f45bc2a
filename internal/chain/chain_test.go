package chain

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChain(t *testing.T) {
	c := New("one")

	require.Equal(t, 1, c.Len())
	require.Same(t, c.Head(), c.Tail())
	require.Equal(t, "one", c.Head().Value)
	require.Nil(t, c.Head().Next())
}

func TestChainAppendPrepend(t *testing.T) {
	c := New(2)

	got := c.Append(3).Append(4).Prepend(1)
	require.Same(t, c, got)

	require.Equal(t, 4, c.Len())
	require.Equal(t, []int{1, 2, 3, 4}, slices.Collect(c.All()))
	require.Equal(t, 1, c.Head().Value)
	require.Equal(t, 4, c.Tail().Value)
	require.Nil(t, c.Tail().Next())
}

func TestChainGet(t *testing.T) {
	c := New("a").Append("b").Append("c")

	for i, want := range []string{"a", "b", "c"} {
		node, err := c.Get(i)
		require.NoError(t, err)
		assert.Equal(t, want, node.Value)
	}

	for _, pos := range []int{-1, 3, 100} {
		node, err := c.Get(pos)
		require.ErrorIs(t, err, ErrOutOfBounds)
		assert.Nil(t, node)
	}
}

func TestChainFind(t *testing.T) {
	c := New(10).Append(20).Append(30).Append(20)

	node := Find(c, 20)
	require.NotNil(t, node)
	second, err := c.Get(1)
	require.NoError(t, err)
	require.Same(t, second, node)

	require.Nil(t, Find(c, 99))

	node = c.FindFunc(func(v int) bool { return v > 15 })
	require.Same(t, second, node)
	require.Nil(t, c.FindFunc(func(v int) bool { return v < 0 }))
}

func TestChainDelete(t *testing.T) {
	t.Run("head", func(t *testing.T) {
		c := New(1).Append(2).Append(3)
		require.True(t, Delete(c, 1))
		require.Equal(t, []int{2, 3}, slices.Collect(c.All()))
		require.Equal(t, 2, c.Head().Value)
		require.Equal(t, 2, c.Len())
	})

	t.Run("middle", func(t *testing.T) {
		c := New(1).Append(2).Append(3)
		require.True(t, Delete(c, 2))
		require.Equal(t, []int{1, 3}, slices.Collect(c.All()))
		require.Equal(t, 3, c.Tail().Value)
	})

	t.Run("tail", func(t *testing.T) {
		c := New(1).Append(2).Append(3)
		require.True(t, Delete(c, 3))
		require.Equal(t, 2, c.Tail().Value)
		require.Nil(t, c.Tail().Next())

		c.Append(4)
		require.Equal(t, []int{1, 2, 4}, slices.Collect(c.All()))
	})

	t.Run("missing", func(t *testing.T) {
		c := New(1).Append(2)
		require.False(t, Delete(c, 9))
		require.Equal(t, 2, c.Len())
	})

	t.Run("first of duplicates", func(t *testing.T) {
		c := New(1).Append(2).Append(2)
		require.True(t, Delete(c, 2))
		require.Equal(t, []int{1, 2}, slices.Collect(c.All()))
	})

	t.Run("sole node", func(t *testing.T) {
		c := New(1)
		require.True(t, Delete(c, 1))
		require.Equal(t, 0, c.Len())
		require.Nil(t, c.Head())
		require.Nil(t, c.Tail())
		require.False(t, Delete(c, 1))
		require.Empty(t, slices.Collect(c.All()))
	})
}

func TestChainDeleteFunc(t *testing.T) {
	type pair struct {
		key   string
		value int
	}
	c := New(pair{"a", 1}).Append(pair{"b", 2}).Append(pair{"c", 3})

	require.True(t, c.DeleteFunc(func(p pair) bool { return p.key == "c" }))
	require.Equal(t, "b", c.Tail().Value.key)
	require.False(t, c.DeleteFunc(func(p pair) bool { return p.key == "z" }))
	require.True(t, c.DeleteFunc(func(p pair) bool { return p.key == "a" }))
	require.True(t, c.DeleteFunc(func(p pair) bool { return p.key == "b" }))
	require.Equal(t, 0, c.Len())
	require.Nil(t, c.Head())
}

func TestChainReuseAfterEmptied(t *testing.T) {
	c := New("x")
	require.True(t, Delete(c, "x"))

	c.Prepend("y")
	require.Same(t, c.Head(), c.Tail())
	c.Append("z")
	require.Equal(t, []string{"y", "z"}, slices.Collect(c.All()))
	require.Equal(t, 2, c.Len())
}

func TestChainAllRestartable(t *testing.T) {
	c := New(1).Append(2).Append(3)
	seq := c.All()

	require.Equal(t, []int{1, 2, 3}, slices.Collect(seq))
	require.Equal(t, []int{1, 2, 3}, slices.Collect(seq))

	var first []int
	for v := range seq {
		first = append(first, v)
		break
	}
	require.Equal(t, []int{1}, first)
}

func TestChainString(t *testing.T) {
	c := New("a").Append("b")
	require.Equal(t, "Head a b Tail", c.String())

	Delete(c, "a")
	Delete(c, "b")
	require.Equal(t, "List is empty", c.String())
}
