package room

import (
	"fmt"
	"net"
	"time"

	"github.com/sirupsen/logrus"

	"headsuppoker-server/internal/util"
	"headsuppoker-server/pkg/wire"
)

// Registry holds exactly two seated players
type Registry struct {
	clients [2]*Client
	names   [2]string
}

// Accept waits until exactly two connections complete the join handshake and
// seats them in arrival order. A connection that does not send a valid join
// message within joinTimeout is dropped and its seat stays open.
func Accept(listener net.Listener, joinTimeout time.Duration, logger logrus.FieldLogger) (*Registry, error) {
	r := &Registry{}

	for seat := 0; seat < 2; {
		conn, err := listener.Accept()
		if err != nil {
			r.Close()
			return nil, err
		}

		client := NewClient(conn, logger)
		logger.WithField("remoteAddr", client.RemoteAddr()).Info("connection accepted")

		msg, err := client.Receive(joinTimeout)
		if err != nil {
			logger.WithError(err).Info("no join message, dropping connection")
			_ = client.Close()
			continue
		}

		join, ok := msg.(wire.Join)
		if !ok {
			logger.Info("expected a join message, dropping connection")
			_ = client.Close()
			continue
		}

		name := join.Name
		if name == "" {
			name = util.GetRandomName()
		}

		if err := client.Send(wire.Joined{
			PlayerID: seat,
			Message:  fmt.Sprintf("Welcome %s! You are player %d", name, seat+1),
		}); err != nil {
			logger.WithError(err).Info("could not confirm join, dropping connection")
			_ = client.Close()
			continue
		}

		r.clients[seat] = client
		r.names[seat] = name
		logger.WithFields(logrus.Fields{
			"seat": seat,
			"name": name,
		}).Info("player seated")

		seat++
	}

	return r, nil
}

// Client returns the client seated at id
func (r *Registry) Client(id int) *Client {
	return r.clients[id]
}

// Names returns the seated players' display names in seat order
func (r *Registry) Names() [2]string {
	return r.names
}

// Close shuts down both connections
func (r *Registry) Close() {
	for _, client := range r.clients {
		if client != nil {
			_ = client.Close()
		}
	}
}
