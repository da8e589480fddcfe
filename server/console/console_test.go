package console

import (
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/riftcraft/rift/server"
	"github.com/riftcraft/rift/server/client"
	"github.com/riftcraft/rift/server/protocol/packet"
	"github.com/riftcraft/rift/server/world"
)

type nopConfig struct{}

func (nopConfig) MaxConnections() int                        { return 20 }
func (nopConfig) OnlineMode() bool                            { return false }
func (nopConfig) Dimensions() []world.Dimension               { return nil }
func (nopConfig) Biomes() []string                            { return nil }
func (nopConfig) ServerListPing(string) server.PingResponse   { return server.Respond }
func (nopConfig) Init(*server.Server)                         {}
func (nopConfig) Update(*server.Server)                       {}

func newTestServer() *server.Server {
	return server.New(nopConfig{}, 20, slog.Default())
}

func clientFor(name string) *client.Client {
	return client.New(uuid.New(), name, 0, packet.NewCodec(8, 8), nil)
}

func TestConsoleKickDisconnectsMatchingPlayer(t *testing.T) {
	s := newTestServer()
	c := clientFor("steve")
	s.Clients.Insert(c)

	cons := New(s, slog.Default())
	cons.execute("kick steve")

	if !c.Disconnected() {
		t.Fatal("expected kick to disconnect the matching client")
	}
}

func TestConsoleRunScannerProcessesLines(t *testing.T) {
	s := newTestServer()
	c := clientFor("alex")
	s.Clients.Insert(c)

	r := strings.NewReader("list\nkick alex\nstop\n")
	cons := New(s, slog.Default()).WithReader(r)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	cons.Run(ctx)

	if !c.Disconnected() {
		t.Fatal("expected scripted input to kick the client")
	}
}

func TestConsoleUnknownCommandDoesNotPanic(t *testing.T) {
	s := newTestServer()
	cons := New(s, slog.Default()).WithReader(strings.NewReader("banish everyone\n"))
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	cons.Run(ctx)
}
