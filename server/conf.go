package server

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/pelletier/go-toml"

	"github.com/riftcraft/rift/server/world"
)

// PingResponse is returned by Config.ServerListPing.
type PingResponse int

const (
	// Respond answers the status/ping pre-play query normally.
	Respond PingResponse = iota
	// Ignore drops the query silently.
	Ignore
)

// Config is the surface a game embeds to drive a Server: it supplies the
// registry the Login packet advertises, the connection-admission policy,
// and the init/update hooks the tick loop calls.
type Config interface {
	// MaxConnections bounds accepted connections. It should exceed MaxPlayers
	// by enough headroom to keep serving status pings when full.
	MaxConnections() int
	// OnlineMode reports whether Mojang session authentication is required.
	OnlineMode() bool
	// Dimensions lists every dimension the registry codec advertises.
	Dimensions() []world.Dimension
	// Biomes lists every biome identifier the registry codec advertises. The
	// core appends a default "plains" biome if none is present, since the
	// client refuses to join without one.
	Biomes() []string
	// ServerListPing answers a pre-play status query from remoteAddr.
	ServerListPing(remoteAddr string) PingResponse
	// Init runs once, before the Server's first tick.
	Init(*Server)
	// Update runs once per tick, during the single-threaded game-logic
	// phase. It may mutate worlds, entities and clients freely.
	Update(*Server)
}

// DefaultAdapter turns a UserConfig plus a pair of init/update callbacks
// into a Config, so embedding games do not have to hand-implement every
// method for the common case.
type DefaultAdapter struct {
	User UserConfig
	Log  *slog.Logger

	InitFunc   func(*Server)
	UpdateFunc func(*Server)
}

func (a DefaultAdapter) MaxConnections() int { return a.User.Players.MaxCount + 4 }
func (a DefaultAdapter) OnlineMode() bool    { return a.User.Server.OnlineMode }

func (a DefaultAdapter) Dimensions() []world.Dimension {
	if len(a.User.dimensions) > 0 {
		return a.User.dimensions
	}
	return []world.Dimension{{Identifier: "minecraft:overworld", MinY: -64, MaxY: 320}}
}

func (a DefaultAdapter) Biomes() []string {
	if len(a.User.biomes) > 0 {
		return a.User.biomes
	}
	return []string{"minecraft:plains"}
}

func (a DefaultAdapter) ServerListPing(string) PingResponse { return Respond }

func (a DefaultAdapter) Init(s *Server) {
	if a.InitFunc != nil {
		a.InitFunc(s)
	}
}

func (a DefaultAdapter) Update(s *Server) {
	if a.UpdateFunc != nil {
		a.UpdateFunc(s)
	}
}

// UserConfig is the TOML-persisted configuration for a Server. It holds the
// settings an operator tunes without touching code; WithDimension/
// WithBiome let embedding code register registry entries, which
// DefaultAdapter advertises in place of its built-in defaults.
type UserConfig struct {
	Network struct {
		Address string
	}
	Server struct {
		Name       string
		OnlineMode bool
	}
	Players struct {
		MaxCount           int
		MaxViewDistance    int
	}

	dimensions []world.Dimension
	biomes     []string
}

// WithDimension registers an additional dimension in the registry codec.
func (c *UserConfig) WithDimension(d world.Dimension) {
	c.dimensions = append(c.dimensions, d)
}

// WithBiome registers an additional biome identifier in the registry codec.
func (c *UserConfig) WithBiome(identifier string) {
	c.biomes = append(c.biomes, identifier)
}

// DefaultConfig returns a UserConfig with sensible defaults filled in.
func DefaultConfig() UserConfig {
	var c UserConfig
	c.Network.Address = ":25565"
	c.Server.Name = "Rift Server"
	c.Server.OnlineMode = true
	c.Players.MaxCount = 20
	c.Players.MaxViewDistance = 10
	return c
}

// Load reads a UserConfig from a TOML file at path, writing out
// DefaultConfig() if the file does not yet exist.
func Load(path string) (UserConfig, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		conf := DefaultConfig()
		if err := Save(path, conf); err != nil {
			return conf, fmt.Errorf("write default config: %w", err)
		}
		return conf, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return UserConfig{}, fmt.Errorf("read config: %w", err)
	}
	var conf UserConfig
	if err := toml.Unmarshal(data, &conf); err != nil {
		return UserConfig{}, fmt.Errorf("decode config: %w", err)
	}
	return conf, nil
}

// Save persists conf to path as TOML.
func Save(path string, conf UserConfig) error {
	data, err := toml.Marshal(conf)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
