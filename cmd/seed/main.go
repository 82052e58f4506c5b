package main

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"turnosya/internal/database"
	"turnosya/internal/domain"
)

func main() {
	db, err := database.Connect("turnosya.db")
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running migrations...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("migration failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM reviews")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM special_hours")
	db.Exec("DELETE FROM fields")
	db.Exec("DELETE FROM users")

	// ================== USERS ==================
	log.Println("Creating users...")

	admin := domain.User{Email: "admin@turnosya.com", Name: "Admin", Role: domain.RoleAdmin}
	db.Create(&admin)

	players := []domain.User{}
	for i, email := range []string{"lucas@gmail.com", "mariana@gmail.com", "diego@hotmail.com"} {
		p := domain.User{
			Email: email,
			Name:  fmt.Sprintf("Player %d", i+1),
			Role:  domain.RolePlayer,
		}
		db.Create(&p)
		players = append(players, p)
	}

	owners := []domain.User{}
	for i, email := range []string{"norte@canchas.com", "sur@canchas.com"} {
		o := domain.User{
			Email: email,
			Name:  fmt.Sprintf("Owner %d", i+1),
			Role:  domain.RoleFieldOwner,
		}
		db.Create(&o)
		owners = append(owners, o)
	}

	// ================== FIELDS ==================
	log.Println("Creating fields...")

	weekdays := func(open, close string) []domain.BusinessHour {
		hours := make([]domain.BusinessHour, 0, 7)
		for d := 0; d <= 6; d++ {
			hours = append(hours, domain.BusinessHour{Day: d, OpenTime: open, CloseTime: close})
		}
		return hours
	}

	fields := []domain.Field{
		{
			OwnerID:       owners[0].ID,
			Name:          "Cancha Norte",
			Address:       "Av. Libertador 1234, Buenos Aires",
			Latitude:      -34.5711,
			Longitude:     -58.4233,
			PricePerHour:  1000,
			BusinessHours: weekdays("08:00", "23:00"),
			Surface:       "synthetic",
			HasLighting:   true,
			MaxPlayers:    10,
		},
		{
			OwnerID:       owners[0].ID,
			Name:          "Cancha Sur Indoor",
			Address:       "Calle Defensa 567, Buenos Aires",
			Latitude:      -34.6214,
			Longitude:     -58.3731,
			PricePerHour:  1500,
			BusinessHours: weekdays("09:00", "22:00"),
			Surface:       "parquet",
			HasLighting:   true,
			IsIndoor:      true,
			MaxPlayers:    10,
		},
		{
			OwnerID:  owners[1].ID,
			Name:     "El Potrero",
			Address:  "Av. Rivadavia 8800, Buenos Aires",
			Latitude:     -34.6286,
			Longitude:    -58.4793,
			PricePerHour: 800,
			// weekends only
			BusinessHours: []domain.BusinessHour{
				{Day: 0, OpenTime: "10:00", CloseTime: "20:00"},
				{Day: 6, OpenTime: "10:00", CloseTime: "22:00"},
			},
			Surface:    "grass",
			MaxPlayers: 14,
		},
	}
	for i := range fields {
		db.Create(&fields[i])
	}

	// ================== SPECIAL HOURS ==================
	log.Println("Creating special hours...")

	nextMonday := nextWeekday(time.Now().UTC(), time.Monday)
	promoPrice := 700.0
	db.Create(&domain.SpecialHours{
		FieldID:      fields[0].ID,
		Date:         nextMonday,
		OpenTime:     "10:00",
		CloseTime:    "16:00",
		Reason:       "Promo de verano",
		SpecialPrice: &promoPrice,
	})
	db.Create(&domain.SpecialHours{
		FieldID:  fields[1].ID,
		Date:     nextMonday,
		IsClosed: true,
		Reason:   "Maintenance",
	})

	// ================== BOOKINGS ==================
	log.Println("Creating bookings...")

	nextTuesday := nextWeekday(time.Now().UTC(), time.Tuesday)
	starts := []string{"18:00", "19:00", "20:00"}
	for i, start := range starts {
		end := fmt.Sprintf("%02d:00", 19+i)
		base := fields[0].PricePerHour
		fee := base * 0.10
		status := domain.BookingConfirmed
		if i == len(starts)-1 {
			status = domain.BookingPending
		}
		b := domain.Booking{
			FieldID:     fields[0].ID,
			UserID:      players[i%len(players)].ID,
			Date:        nextTuesday,
			StartTime:   start,
			EndTime:     end,
			Status:      status,
			BasePrice:   base,
			PlatformFee: fee,
			TotalPrice:  fee,
		}
		if status == domain.BookingConfirmed {
			b.PaymentID = fmt.Sprintf("seed_pay_%d", i+1)
		}
		db.Create(&b)
	}

	// ================== REVIEWS ==================
	log.Println("Creating reviews...")

	comments := []string{"Excelente cancha", "Buena iluminacion", "El pasto podria estar mejor"}
	total := 0
	for i, p := range players {
		rating := 3 + rand.Intn(3)
		total += rating
		db.Create(&domain.Review{
			FieldID:  fields[0].ID,
			UserID:   p.ID,
			UserName: p.Name,
			Rating:   rating,
			Comment:  comments[i%len(comments)],
		})
	}
	avg := float64(total) / float64(len(players))
	db.Model(&domain.Field{}).Where("id = ?", fields[0].ID).
		Updates(map[string]any{"average_rating": avg, "review_count": len(players)})

	log.Println("Seed complete")
}

func nextWeekday(from time.Time, day time.Weekday) time.Time {
	d := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
	for d.Weekday() != day {
		d = d.AddDate(0, 0, 1)
	}
	return d
}
