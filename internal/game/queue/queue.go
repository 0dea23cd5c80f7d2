package queue

import (
	"fmt"

	"github.com/duncanmcewan/marchlands/internal/game/catalog"
	"github.com/duncanmcewan/marchlands/internal/game/resource"
)

// OrderKind discriminates what an order does on completion.
type OrderKind int

const (
	OrderUpgrade OrderKind = iota
	OrderClaim
	OrderConquer
)

func (k OrderKind) String() string {
	switch k {
	case OrderClaim:
		return "CLAIM_COUNTY"
	case OrderConquer:
		return "CONQUER_COUNTY"
	default:
		return "UPGRADE_TRACK"
	}
}

// Order is a single queued job. Cost is charged when the order is enqueued
// and refunded exactly on cancellation.
type Order struct {
	ID             string
	Kind           OrderKind
	Track          catalog.Track // meaningful for OrderUpgrade
	TargetLevel    int           // level this order builds (projected at enqueue)
	TurnsRemaining int
	Cost           resource.Delta
	PopulationCost int    // claim/conquer: drawn from the source county
	SourceCountyID string // claim/conquer
	TargetCountyID string // claim/conquer
	QueuedOnTurn   int
}

// IsExclusive reports whether the order locks its county queue: claim and
// conquest orders cannot share a queue with anything else.
func (o Order) IsExclusive() bool {
	return o.Kind == OrderClaim || o.Kind == OrderConquer
}

// OrderID builds a collision-free id from the queue key, a label (track name
// or order kind), the turn number and a same-turn sequence counter.
func OrderID(queueKey, label string, turn, seq int) string {
	return fmt.Sprintf("%s/%s/t%d/%d", queueKey, label, turn, seq)
}

// Queue holds at most one active order plus a FIFO of pending ones. All
// operations are copy-on-write; a Queue value is never mutated in place.
type Queue struct {
	Active  *Order
	Pending []Order
}

// Clone returns an independent copy.
func (q Queue) Clone() Queue {
	out := Queue{}
	if q.Active != nil {
		a := *q.Active
		out.Active = &a
	}
	if len(q.Pending) > 0 {
		out.Pending = make([]Order, len(q.Pending))
		copy(out.Pending, q.Pending)
	}
	return out
}

// IsEmpty reports whether the queue holds no orders at all.
func (q Queue) IsEmpty() bool {
	return q.Active == nil && len(q.Pending) == 0
}

// Len returns the total number of orders, active included.
func (q Queue) Len() int {
	n := len(q.Pending)
	if q.Active != nil {
		n++
	}
	return n
}

// HasExclusiveOrder reports whether a claim or conquest order is anywhere in
// the queue.
func (q Queue) HasExclusiveOrder() bool {
	if q.Active != nil && q.Active.IsExclusive() {
		return true
	}
	for _, o := range q.Pending {
		if o.IsExclusive() {
			return true
		}
	}
	return false
}

// PendingIncrements counts how many upgrade orders for the given track are
// already committed (active or pending). Used to project the next level when
// enqueueing.
func (q Queue) PendingIncrements(t catalog.Track) int {
	n := 0
	if q.Active != nil && q.Active.Kind == OrderUpgrade && q.Active.Track == t {
		n++
	}
	for _, o := range q.Pending {
		if o.Kind == OrderUpgrade && o.Track == t {
			n++
		}
	}
	return n
}

// Enqueue returns a new queue with the order appended. If no order is active
// the new order goes straight into the active slot.
func (q Queue) Enqueue(o Order) Queue {
	out := q.Clone()
	if out.Active == nil {
		out.Active = &o
		return out
	}
	out.Pending = append(out.Pending, o)
	return out
}

// Advance ticks the active order down one turn. If it reaches zero it is
// returned as completed and the next pending order is promoted; a freshly
// promoted order is not ticked in the same advance. At most one order
// completes per call.
func (q Queue) Advance() (Queue, *Order) {
	out := q.Clone()
	if out.Active == nil {
		out.promote()
		return out, nil
	}
	out.Active.TurnsRemaining--
	if out.Active.TurnsRemaining > 0 {
		return out, nil
	}
	done := *out.Active
	out.Active = nil
	out.promote()
	return out, &done
}

// Cancel removes a not-yet-completed order by id, active or pending, and
// returns it so the caller can refund its cost. Cancelling the active order
// promotes the next pending one.
func (q Queue) Cancel(orderID string) (Queue, *Order) {
	out := q.Clone()
	if out.Active != nil && out.Active.ID == orderID {
		removed := *out.Active
		out.Active = nil
		out.promote()
		return out, &removed
	}
	for i, o := range out.Pending {
		if o.ID == orderID {
			removed := o
			out.Pending = append(out.Pending[:i:i], out.Pending[i+1:]...)
			return out, &removed
		}
	}
	return out, nil
}

// Clear drops every remaining order. Used when a claim or conquest completes:
// the captured county starts fresh.
func (q Queue) Clear() Queue {
	return Queue{}
}

// promote pulls the FIFO head into the active slot if it is free.
func (q *Queue) promote() {
	if q.Active != nil || len(q.Pending) == 0 {
		return
	}
	head := q.Pending[0]
	q.Active = &head
	q.Pending = append([]Order(nil), q.Pending[1:]...)
	if len(q.Pending) == 0 {
		q.Pending = nil
	}
}
