package server

import (
	"github.com/riftcraft/rift/server/protocol/packet"
)

// dummyDimensionIdentifier names the placeholder dimension a client is
// bounced through during a same-dimension respawn, working around the
// client's refusal to reset chunk/entity state when Respawn names the
// dimension it is already in.
const dummyDimensionIdentifier = "rift:dummy"

// defaultChatTypes is the synthetic chat-type registry every Login
// advertises; the core only ever emits the "chat" type itself.
var defaultChatTypes = []string{"minecraft:chat"}

// buildRegistry assembles the RegistryCodec a Server sends on every Login,
// from the dimensions and biomes its Config supplies. A biome list that
// never names "minecraft:plains" gets it appended, since clients refuse to
// join when no plains biome is registered.
func buildRegistry(cfg Config) packet.RegistryCodec {
	dims := cfg.Dimensions()
	biomes := cfg.Biomes()

	hasPlains := false
	for _, b := range biomes {
		if b == "minecraft:plains" {
			hasPlains = true
			break
		}
	}
	if !hasPlains {
		biomes = append(biomes, "minecraft:plains")
	}

	return packet.RegistryCodec{
		Dimensions: dims,
		Biomes:     biomes,
		ChatTypes:  defaultChatTypes,
		DummyDim:   dummyDimensionIdentifier,
	}
}
