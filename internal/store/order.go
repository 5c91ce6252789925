package store

// node is one entry in the write-recency list.
type node struct {
	previous *node
	next     *node
	key      int
	value    string
	size     int
}

// writeOrder keeps entries oldest first. head and tail are sentinels
// that never carry a value.
type writeOrder struct {
	head *node
	tail *node
}

func newWriteOrder() *writeOrder {
	head := &node{}
	tail := &node{}
	head.next = tail
	tail.previous = head
	return &writeOrder{head: head, tail: tail}
}

func (o *writeOrder) pushBack(n *node) {
	n.next = o.tail
	n.previous = o.tail.previous
	o.tail.previous.next = n
	o.tail.previous = n
}

// front returns the oldest entry, or nil when empty.
func (o *writeOrder) front() *node {
	if o.head.next == o.tail {
		return nil
	}
	return o.head.next
}

func (o *writeOrder) unlink(n *node) {
	n.previous.next = n.next
	n.next.previous = n.previous
	n.previous = nil
	n.next = nil
}

// moveToBack marks n as the most recently written entry.
func (o *writeOrder) moveToBack(n *node) {
	o.unlink(n)
	o.pushBack(n)
}
