package service

import (
	"testing"

	"tapminer/internal/domain"
)

func TestMergeSessionTakesMaxProgress(t *testing.T) {
	server := &domain.Player{Coins: 1000, XP: 200, Energy: 800}

	// local is ahead: an unflushed tap batch
	merged := MergeSession(domain.ClientState{Coins: 1250, XP: 240, Energy: 500}, server)
	if merged.Coins != 1250 {
		t.Fatalf("coins = %d, want local 1250", merged.Coins)
	}
	if merged.XP != 240 {
		t.Fatalf("xp = %d, want local 240", merged.XP)
	}
	// energy always follows the server
	if merged.Energy != 800 {
		t.Fatalf("energy = %d, want server 800", merged.Energy)
	}
}

func TestMergeSessionPrefersServerWhenAhead(t *testing.T) {
	server := &domain.Player{Coins: 5000, XP: 900}

	merged := MergeSession(domain.ClientState{Coins: 100, XP: 50}, server)
	if merged.Coins != 5000 || merged.XP != 900 {
		t.Fatalf("server-ahead merge changed progress: coins=%d xp=%d", merged.Coins, merged.XP)
	}
}

func TestMergeSessionDoesNotMutateServerSnapshot(t *testing.T) {
	server := &domain.Player{Coins: 10, XP: 10}
	_ = MergeSession(domain.ClientState{Coins: 99, XP: 99}, server)
	if server.Coins != 10 || server.XP != 10 {
		t.Fatalf("merge mutated the authoritative snapshot")
	}
}
