package circuit

import "github.com/kulaginds/caproto-go/internal/protoerr"

// IDCounter hands out the next unused uint32, skipping values still live
// according to isLive, and wrapping at 2^32 (spec §4.5). Zero value is
// ready to use.
type IDCounter struct {
	kind string
	next uint32

	// OnWrap, if set, is invoked once each time the counter rolls over
	// 2^32 back to zero; a host wires it to internal/metrics to track
	// wraparound frequency separately from the fatal exhaustion case.
	OnWrap func()
}

// NewIDCounter returns a counter that reports kind (e.g. "cid", "ioid") in
// the ResourceExhaustedError it raises after a full wrap with no free slot.
func NewIDCounter(kind string) *IDCounter {
	return &IDCounter{kind: kind}
}

// Next returns the next id not reported live by isLive. It tries every
// value exactly once per wrap before giving up.
func (c *IDCounter) Next(isLive func(uint32) bool) (uint32, error) {
	start := c.next
	for {
		candidate := c.next
		c.next++
		if c.next == 0 && c.OnWrap != nil {
			c.OnWrap()
		}
		if !isLive(candidate) {
			return candidate, nil
		}
		if c.next == start {
			return 0, &protoerr.ResourceExhaustedError{Kind: c.kind}
		}
	}
}
