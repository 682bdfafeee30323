// Command seed fills the database with demo users, connections and moments
// for local development. All seeded accounts share the password "demo1234".
package main

import (
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"pulse-backend/config"
	"pulse-backend/internal/model"
	dbPkg "pulse-backend/pkg/db"
	"pulse-backend/pkg/password"

	"github.com/brianvoe/gofakeit/v6"
)

var emojis = []string{"😊", "🌊", "🔥", "🌙", "⭐", "🌈", "🍀", "🎧", "🌸", "⚡"}

func main() {
	userCount := flag.Int("users", 10, "number of demo users to create")
	seed := flag.Int64("seed", 0, "random seed (0 = time-based)")
	flag.Parse()

	if *seed != 0 {
		gofakeit.Seed(*seed)
	}

	cfg := config.LoadConfig()
	if _, err := dbPkg.InitDB(cfg.Database); err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer dbPkg.CloseDB()

	if err := dbPkg.AutoMigrate(
		&model.User{},
		&model.Connection{},
		&model.Moment{},
		&model.MomentRecipient{},
		&model.Reply{},
		&model.ProfilePhoto{},
	); err != nil {
		log.Fatalf("auto migration failed: %v", err)
	}

	db := dbPkg.GetDB()

	hash, err := password.Hash("demo1234")
	if err != nil {
		log.Fatalf("hashing demo password failed: %v", err)
	}

	users := make([]*model.User, 0, *userCount)
	for i := 0; i < *userCount; i++ {
		u := &model.User{
			Username:     strings.ToLower(gofakeit.Username()),
			Email:        gofakeit.Email(),
			PasswordHash: hash,
			AvatarEmoji:  emojis[gofakeit.Number(0, len(emojis)-1)],
		}
		if err := db.Create(u).Error; err != nil {
			log.Printf("skipping user %s: %v", u.Username, err)
			continue
		}
		users = append(users, u)
		fmt.Printf("user %-20s invite=%s\n", u.Username, u.InviteCode)
	}

	if len(users) < 2 {
		log.Fatal("not enough users created to seed connections")
	}

	// Connect each user to a couple of others; leave some requests pending
	// so the activity feed has content out of the box.
	accepted := 0
	pending := 0
	for i, u := range users {
		for n := 0; n < 2; n++ {
			other := users[(i+1+gofakeit.Number(0, len(users)-2))%len(users)]
			if other.ID == u.ID {
				continue
			}
			status := model.StatusAccepted
			if gofakeit.Number(0, 3) == 0 {
				status = model.StatusPending
			}
			conn := &model.Connection{
				RequesterID: u.ID,
				ReceiverID:  other.ID,
				Status:      status,
			}
			if err := db.Create(conn).Error; err != nil {
				continue // duplicate pair, fine
			}
			if status == model.StatusAccepted {
				accepted++
			} else {
				pending++
			}
		}
	}
	fmt.Printf("connections: %d accepted, %d pending\n", accepted, pending)

	// A few moments between accepted pairs, some with replies.
	var conns []model.Connection
	if err := db.Where("status = ?", model.StatusAccepted).Find(&conns).Error; err != nil {
		log.Fatalf("loading connections failed: %v", err)
	}

	moments := 0
	for _, conn := range conns {
		if gofakeit.Bool() {
			continue
		}
		m := &model.Moment{
			SenderID: conn.RequesterID,
			Text:     gofakeit.Sentence(gofakeit.Number(4, 12)),
			Emoji:    emojis[gofakeit.Number(0, len(emojis)-1)],
		}
		if err := db.Create(m).Error; err != nil {
			continue
		}
		rec := &model.MomentRecipient{MomentID: m.ID, ReceiverID: conn.ReceiverID}
		if err := db.Create(rec).Error; err != nil {
			continue
		}
		moments++

		if gofakeit.Bool() {
			reply := &model.Reply{
				MomentID: m.ID,
				SenderID: conn.ReceiverID,
				Text:     gofakeit.Sentence(gofakeit.Number(2, 8)),
			}
			_ = db.Create(reply).Error
		}
	}
	fmt.Printf("moments: %d\n", moments)

	fmt.Printf("\nseeded %d users at %s, password for all: demo1234\n",
		len(users), time.Now().Format(time.RFC3339))
}
