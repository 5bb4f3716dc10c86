package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"tapminer/internal/domain"
	"tapminer/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Dev helper: creates a player row directly, optionally with coins and
// a referrer, so local frontends have something to log into.
func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	tgID := flag.Int64("tg", 12345, "telegram id of the test player")
	username := flag.String("username", "testminer", "username")
	coins := flag.Int64("coins", 0, "starting coin balance")
	referrer := flag.Int64("ref", 0, "referrer telegram id (0 = none)")
	flag.Parse()

	db, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	ctx := context.Background()
	players := repository.NewPlayerRepository(db)

	p, err := players.GetByTgID(ctx, *tgID)
	if err == nil {
		fmt.Printf("player already exists: id=%d tg=%d coins=%d\n", p.ID, p.TgID, p.Coins)
		return
	}

	p, err = players.Create(ctx, *tgID, *username, "Test", "")
	if err != nil {
		log.Fatalf("create player: %v", err)
	}

	if *referrer != 0 {
		referrals := repository.NewReferralRepository(db)
		if err := referrals.ResolveChain(ctx, p.ID, *referrer); err != nil {
			log.Printf("referral chain not resolved: %v", err)
		}
	}

	if *coins > 0 {
		err = players.UpdateState(ctx, p.ID, domain.StatePatch{
			Coins:         domain.Int64(*coins),
			TotalEarnings: domain.Int64(*coins),
		})
		if err != nil {
			log.Fatalf("set coins: %v", err)
		}
	}

	fmt.Printf("created player id=%d tg=%d\n", p.ID, p.TgID)
}
