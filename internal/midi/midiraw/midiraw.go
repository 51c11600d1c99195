// Package midiraw holds the byte-level helpers shared by the MIDI input
// backends: message lengths, packet splitting, ignored message types and
// delta time stamps.
package midiraw

import (
	"sync"
	"time"
)

// System messages the inputs drop: sysex, MIDI time code, timing clock and
// active sensing.
const (
	SysExStart       byte = 0xF0
	SysExEnd         byte = 0xF7
	TimeCodeQuarter  byte = 0xF1
	TimingClock      byte = 0xF8
	ActiveSense      byte = 0xFE
	statusBit        byte = 0x80
	channelVoiceMask byte = 0xF0
)

// Length returns the full length of a message starting with status, or -1
// for sysex and 0 for bytes that are not a status byte.
func Length(status byte) int {
	switch {
	case status < statusBit:
		return 0
	case status < 0xF0:
		switch status & channelVoiceMask {
		case 0xC0, 0xD0:
			return 2
		default:
			return 3
		}
	}
	switch status {
	case SysExStart:
		return -1
	case TimeCodeQuarter, 0xF3:
		return 2
	case 0xF2:
		return 3
	default:
		return 1
	}
}

// Ignored reports whether msg is sysex, time code or active sensing.
func Ignored(msg []byte) bool {
	if len(msg) == 0 {
		return true
	}
	switch msg[0] {
	case SysExStart, TimeCodeQuarter, TimingClock, ActiveSense:
		return true
	}
	return false
}

// Split splits a packet holding several messages. Running status is
// expanded so every returned message starts with its status byte. Truncated
// trailing messages are returned as they are.
func Split(packet []byte) [][]byte {
	var (
		msgs    [][]byte
		running byte
	)
	for i := 0; i < len(packet); {
		b := packet[i]
		if b >= statusBit {
			n := Length(b)
			if n < 0 {
				end := i + 1
				for end < len(packet) && packet[end] != SysExEnd {
					end++
				}
				if end < len(packet) {
					end++
				}
				msgs = append(msgs, packet[i:end])
				i = end
				continue
			}
			if b < 0xF0 {
				running = b
			}
			end := min(i+n, len(packet))
			msgs = append(msgs, packet[i:end])
			i = end
			continue
		}
		if running == 0 {
			// Stray data byte.
			i++
			continue
		}
		n := Length(running) - 1
		end := min(i+n, len(packet))
		msg := make([]byte, 0, n+1)
		msg = append(msg, running)
		msg = append(msg, packet[i:end]...)
		msgs = append(msgs, msg)
		i = end
	}
	return msgs
}

// Clock produces the seconds elapsed between consecutive messages. The first
// stamp is 0.
type Clock struct {
	mu   sync.Mutex
	last time.Time
	now  func() time.Time
}

// NewClock returns a Clock reading the given time source, time.Now if nil.
func NewClock(now func() time.Time) *Clock {
	if now == nil {
		now = time.Now
	}
	return &Clock{now: now}
}

// Stamp returns the seconds since the previous call.
func (c *Clock) Stamp() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now()
	if c.last.IsZero() {
		c.last = t
		return 0
	}
	d := t.Sub(c.last)
	c.last = t
	return d.Seconds()
}

// Reset makes the next Stamp return 0.
func (c *Clock) Reset() {
	c.mu.Lock()
	c.last = time.Time{}
	c.mu.Unlock()
}
