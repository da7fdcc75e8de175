package scanner

import (
	"context"

	"github.com/looplab/fsm"
)

const (
	stateIdle       = "idle"
	stateScraping   = "scraping"
	stateComparing  = "comparing"
	statePersisting = "persisting"
	stateNotifying  = "notifying"
	stateMarking    = "marking"
	stateDone       = "done"
)

const (
	eventScrape  = "scrape"
	eventCompare = "compare"
	eventPersist = "persist"
	eventNotify  = "notify"
	eventMark    = "mark"
	eventFinish  = "finish"
)

// scanCycle tracks which phase a single product scan is in. A failed scan
// leaves the cycle parked in its current state, so errors can name the phase
// they happened in.
type scanCycle struct {
	machine *fsm.FSM
}

func newScanCycle() *scanCycle {
	return &scanCycle{
		machine: fsm.NewFSM(
			stateIdle,
			fsm.Events{
				{Name: eventScrape, Src: []string{stateIdle}, Dst: stateScraping},
				{Name: eventCompare, Src: []string{stateScraping}, Dst: stateComparing},
				{Name: eventPersist, Src: []string{stateComparing}, Dst: statePersisting},
				{Name: eventNotify, Src: []string{statePersisting}, Dst: stateNotifying},
				{Name: eventMark, Src: []string{stateComparing, statePersisting, stateNotifying}, Dst: stateMarking},
				{Name: eventFinish, Src: []string{stateMarking}, Dst: stateDone},
			},
			fsm.Callbacks{},
		),
	}
}

func (c *scanCycle) advance(ctx context.Context, event string) error {
	return c.machine.Event(ctx, event)
}

func (c *scanCycle) phase() string {
	return c.machine.Current()
}
