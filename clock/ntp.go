package clock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/beevik/ntp"
	log "github.com/sirupsen/logrus"
)

// NTP corrects the host clock by the offset reported by an NTP server.
// Until the first successful sync it reports no time at all.
type NTP struct {
	server   string
	interval time.Duration
	loc      *time.Location
	query    func(server string) (*ntp.Response, error)
	now      func() time.Time

	mu     sync.Mutex
	offset time.Duration
	synced bool
}

func NewNTP(server string, interval time.Duration, loc *time.Location) *NTP {
	return &NTP{
		server:   server,
		interval: interval,
		loc:      loc,
		query:    ntp.Query,
		now:      time.Now,
	}
}

// Sync queries the server once and stores the resulting offset.
func (n *NTP) Sync() error {
	r, err := n.query(n.server)
	if err != nil {
		return fmt.Errorf("couldn't query %s: %w", n.server, err)
	}
	err = r.Validate()
	if err != nil {
		return fmt.Errorf("invalid response from %s: %w", n.server, err)
	}
	n.mu.Lock()
	n.offset = r.ClockOffset
	n.synced = true
	n.mu.Unlock()
	log.WithFields(log.Fields{"server": n.server, "offset": r.ClockOffset, "rtt": r.RTT}).Debug("NTP sync")
	return nil
}

// Run syncs immediately and then every interval until ctx is done.
func (n *NTP) Run(ctx context.Context) {
	t := time.NewTicker(n.interval)
	defer t.Stop()
	for {
		err := n.Sync()
		if err != nil {
			log.Warnf("NTP sync failed: %v", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
	}
}

func (n *NTP) Offset() (time.Duration, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.offset, n.synced
}

func (n *NTP) Now() (Time, bool) {
	off, ok := n.Offset()
	if !ok {
		return Time{}, false
	}
	return FromTime(n.now().Add(off).In(n.loc)), true
}
