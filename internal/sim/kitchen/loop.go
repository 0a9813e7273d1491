package kitchen

import (
	"context"
	"encoding/json"
	"time"

	"freezerush/internal/protocol"
)

type joinRequest struct {
	Name string
	Out  chan []byte
	Resp chan JoinResponse
}

type JoinResponse struct {
	Welcome protocol.WelcomeMsg
}

type interactRequest struct {
	Player string
	Msg    protocol.InteractMsg
	Resp   chan Outcome
}

type stateRequest struct {
	Player string
	Resp   chan protocol.StateMsg
}

// Join registers a player session. Out receives one STATE frame per tick;
// stale frames are dropped rather than queued.
func (k *Kitchen) Join(name string, out chan []byte) JoinResponse {
	resp := make(chan JoinResponse, 1)
	k.joinCh <- joinRequest{Name: name, Out: out, Resp: resp}
	return <-resp
}

// Leave drops a player session. Anything still in the player's hand is
// discarded; items on stations stay where they are.
func (k *Kitchen) Leave(player string) {
	k.leaveCh <- player
}

// Submit routes an interaction into the sim goroutine and waits for its
// outcome.
func (k *Kitchen) Submit(player string, msg protocol.InteractMsg) Outcome {
	resp := make(chan Outcome, 1)
	k.interactCh <- interactRequest{Player: player, Msg: msg, Resp: resp}
	return <-resp
}

// State fetches a snapshot for one player outside the tick cadence.
func (k *Kitchen) State(player string) protocol.StateMsg {
	resp := make(chan protocol.StateMsg, 1)
	k.stateCh <- stateRequest{Player: player, Resp: resp}
	return <-resp
}

func (k *Kitchen) Stop() { close(k.stop) }

// Run owns all simulation state: every mutation happens on this goroutine,
// so the core needs no locks. Ticks are driven by wall time converted to sim
// milliseconds since start.
func (k *Kitchen) Run(ctx context.Context) error {
	interval := time.Duration(k.tun.TickMs) * time.Millisecond
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	start := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-k.stop:
			return nil
		case req := <-k.joinCh:
			pid := k.newPlayerID()
			k.clients[pid] = req.Out
			if k.logger != nil {
				k.logger.Printf("join: %s (%q)", pid, req.Name)
			}
			req.Resp <- JoinResponse{Welcome: protocol.WelcomeMsg{
				Type:            protocol.TypeWelcome,
				ProtocolVersion: protocol.Version,
				PlayerID:        pid,
				SessionID:       k.sessionID,
				TickMs:          k.tun.TickMs,
				Difficulty:      k.diffName,
				Catalogs:        k.CatalogDigests(),
				Stations:        k.Stations(),
			}}
		case pid := <-k.leaveCh:
			delete(k.clients, pid)
			if it, ok := k.reg.At(HandOf(pid)); ok {
				k.reg.Destroy(it.ID, k.now, "player_left")
			}
		case req := <-k.interactCh:
			req.Resp <- k.Interact(req.Player, StationID(req.Msg.StationID), req.Msg.SignalHeld)
		case req := <-k.stateCh:
			req.Resp <- k.stateFor(req.Player, nil)
		case <-ticker.C:
			now := time.Since(start).Milliseconds()
			stepStart := time.Now()
			evs := k.Tick(now)
			if k.tickObs != nil {
				k.tickObs(time.Since(stepStart))
			}
			if k.sink != nil && len(evs) > 0 {
				k.sink(evs)
			}
			k.broadcast(evs)
		}
	}
}

func (k *Kitchen) stateFor(player string, evs []protocol.Event) protocol.StateMsg {
	msg := protocol.StateMsg{
		Type:     protocol.TypeState,
		At:       k.now,
		Stations: k.Stations(),
		Orders:   k.ActiveOrders(),
		Stats:    k.Stats(),
		Events:   evs,
	}
	if it, ok := k.reg.At(HandOf(player)); ok {
		v := itemView(it)
		msg.Held = &v
	}
	return msg
}

func (k *Kitchen) broadcast(evs []protocol.Event) {
	for pid, out := range k.clients {
		b, err := json.Marshal(k.stateFor(pid, evs))
		if err != nil {
			continue
		}
		sendLatest(out, b)
	}
}

// sendLatest delivers b without blocking the sim: if the client is behind,
// one stale frame is dropped to make room.
func sendLatest(ch chan []byte, b []byte) {
	select {
	case ch <- b:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- b:
	default:
	}
}
