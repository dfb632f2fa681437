package pg

import (
	"time"

	"github.com/lib/pq"

	"github.com/retroboard-dev/retroboard/internal/config"
	"github.com/retroboard-dev/retroboard/internal/domain"
	"github.com/retroboard-dev/retroboard/internal/logger"
)

// Listener surfaces item-change notifications as board ids on a channel.
// One listener per process; fan-out to subscribers happens in the realtime
// hub, not here.
type Listener struct {
	pq *pq.Listener
	c  chan domain.BoardId
}

func NewListener(cfg *config.Config) (*Listener, error) {
	pl := pq.NewListener(ConnStr(cfg), 10*time.Second, time.Minute, func(ev pq.ListenerEventType, err error) {
		if err != nil {
			logger.Log.Warn("pg listener event", "event", ev, "error", err)
		}
	})
	if err := pl.Listen(itemsChannel); err != nil {
		pl.Close()
		return nil, err
	}

	l := &Listener{pq: pl, c: make(chan domain.BoardId, 64)}
	go l.run()
	return l, nil
}

func (l *Listener) run() {
	for n := range l.pq.Notify {
		if n == nil {
			// reconnect marker; subscribers re-read state on every poke,
			// so a missed notification during the gap is recovered by
			// the next one
			continue
		}
		select {
		case l.c <- n.Extra:
		default:
			logger.Log.Warn("dropping item notification, channel full", "board", n.Extra)
		}
	}
	close(l.c)
}

// C yields the board id of every observed change.
func (l *Listener) C() <-chan domain.BoardId {
	return l.c
}

func (l *Listener) Close() error {
	return l.pq.Close()
}
