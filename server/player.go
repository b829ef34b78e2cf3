package server

import (
	"sync"

	"golang.org/x/time/rate"

	"adrenaline/shared/logger"
)

// Player is one authenticated websocket session bound to a match. The read
// pump forwards inbound frames to the match actor; the write pump drains the
// outbox so the actor never blocks on a slow client.
type Player struct {
	id       string
	username string

	limiter *rate.Limiter
	socket  NetworkSession

	outbox   chan []byte
	pingChan chan struct{}

	match *Match

	destroyOnce sync.Once
}

func newPlayer(id, username string, socket NetworkSession) *Player {
	return &Player{
		id:       id,
		username: username,
		limiter:  rate.NewLimiter(10, 20),
		socket:   socket,
		outbox:   make(chan []byte, 256),
		pingChan: make(chan struct{}, 1),
	}
}

func (p *Player) ReadPump() {
	match := p.match

	for {
		data, err := p.socket.Read()
		if err != nil {
			break
		}

		if !p.limiter.Allow() {
			logger.Warningf("player %s is flooding, dropping frame", p.username)
			continue
		}

		match.inbox <- inboundFrame{raw: data, from: p}
	}

	match.removals <- p
}

func (p *Player) WritePump() {
loop:
	for {
		select {
		case data, ok := <-p.outbox:
			if !ok {
				break loop
			}
			if err := p.socket.Write(data); err != nil {
				break loop
			}
		case _, ok := <-p.pingChan:
			if !ok {
				break loop
			}
			if err := p.socket.Ping(); err != nil {
				break loop
			}
		}
	}
}

// Send queues a frame without ever blocking the match actor. A full outbox
// means the client stopped reading; the frame is dropped and the next full
// update resynchronizes it.
func (p *Player) Send(data []byte) {
	select {
	case p.outbox <- data:
	default:
		logger.Warningf("player %s outbox full, dropping frame", p.username)
	}
}

func (p *Player) Ping() {
	select {
	case p.pingChan <- struct{}{}:
	default:
	}
}

func (p *Player) Destroy() {
	p.destroyOnce.Do(func() {
		close(p.outbox)
		close(p.pingChan)
		p.socket.Close("")
	})
}
