// Package chain implements the singly linked list used as a collision
// chain by the hash table.
package chain

import (
	"errors"
	"fmt"
	"iter"
	"strings"
)

var ErrOutOfBounds = errors.New("position out of bounds")

type Node[T any] struct {
	Value T
	next  *Node[T]
}

func (n *Node[T]) Next() *Node[T] {
	return n.next
}

// Chain keeps head and tail so both ends attach in O(1). A chain is built
// with one element and is only ever emptied by deletion; owners that must
// not hold empty chains discard them when Len drops to zero.
type Chain[T any] struct {
	head   *Node[T]
	tail   *Node[T]
	length int
}

func New[T any](value T) *Chain[T] {
	node := &Node[T]{Value: value}
	return &Chain[T]{
		head:   node,
		tail:   node,
		length: 1,
	}
}

func (c *Chain[T]) Len() int {
	return c.length
}

func (c *Chain[T]) Head() *Node[T] {
	return c.head
}

func (c *Chain[T]) Tail() *Node[T] {
	return c.tail
}

func (c *Chain[T]) Append(value T) *Chain[T] {
	node := &Node[T]{Value: value}
	if c.tail == nil {
		c.head = node
	} else {
		c.tail.next = node
	}
	c.tail = node
	c.length++
	return c
}

func (c *Chain[T]) Prepend(value T) *Chain[T] {
	node := &Node[T]{Value: value, next: c.head}
	c.head = node
	if c.tail == nil {
		c.tail = node
	}
	c.length++
	return c
}

func (c *Chain[T]) Get(position int) (*Node[T], error) {
	if position < 0 || position >= c.length {
		return nil, fmt.Errorf("%w: %d (length %d)", ErrOutOfBounds, position, c.length)
	}

	current := c.head
	for i := 0; i < position; i++ {
		current = current.next
	}
	return current, nil
}

func (c *Chain[T]) FindFunc(match func(T) bool) *Node[T] {
	for current := c.head; current != nil; current = current.next {
		if match(current.Value) {
			return current
		}
	}
	return nil
}

// DeleteFunc unlinks the first node whose value satisfies match.
func (c *Chain[T]) DeleteFunc(match func(T) bool) bool {
	var prev *Node[T]
	for current := c.head; current != nil; prev, current = current, current.next {
		if !match(current.Value) {
			continue
		}

		if prev == nil {
			c.head = current.next
		} else {
			prev.next = current.next
		}
		if current == c.tail {
			c.tail = prev
		}
		c.length--
		return true
	}
	return false
}

// All yields the values from head to tail. Each call starts a fresh walk.
func (c *Chain[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for current := c.head; current != nil; current = current.next {
			if !yield(current.Value) {
				return
			}
		}
	}
}

func (c *Chain[T]) String() string {
	if c.head == nil {
		return "List is empty"
	}

	var sb strings.Builder
	sb.WriteString("Head")
	for value := range c.All() {
		fmt.Fprintf(&sb, " %v", value)
	}
	sb.WriteString(" Tail")
	return sb.String()
}

func Find[T comparable](c *Chain[T], value T) *Node[T] {
	return c.FindFunc(func(v T) bool { return v == value })
}

func Delete[T comparable](c *Chain[T], value T) bool {
	return c.DeleteFunc(func(v T) bool { return v == value })
}
