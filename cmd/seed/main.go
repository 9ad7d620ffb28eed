package main

import (
	"database/sql"
	"fmt"
	"math/rand"
	"time"

	"stationhub/internal/auth"
	"stationhub/internal/config"
	"stationhub/internal/database"
	"stationhub/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Seeds a demo company with users for each role, two claimed stations, one
// unclaimed pending station for trying the activation flow, devices, a day
// of readings, alerts and a threshold rule.
func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.Log.Level, "console", "stationhub-seed")
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close(db)

	if err := seed(db, log); err != nil {
		log.Fatal("Seeding failed", zap.Error(err))
	}
	log.Info("Seeding complete")
}

func seed(db *sql.DB, log *zap.Logger) error {
	hasher := auth.NewHasher(0)
	passwordHash, err := hasher.Hash("password123")
	if err != nil {
		return err
	}

	companyID := uuid.NewString()
	if _, err := db.Exec(
		`INSERT INTO companies (company_id, company_name, license_type, max_stations, is_active)
		 VALUES ($1, $2, $3, $4, TRUE)`,
		companyID, "Acme Industrial", "basic", 10,
	); err != nil {
		return fmt.Errorf("failed to insert company: %w", err)
	}

	users := []struct {
		email string
		first string
		last  string
		role  string
	}{
		{"admin@acme.example", "Ada", "Admin", "admin"},
		{"operator@acme.example", "Omar", "Operator", "operator"},
		{"monitor@acme.example", "Mia", "Monitor", "monitor"},
	}
	for _, u := range users {
		if _, err := db.Exec(
			`INSERT INTO users (user_id, email, first_name, last_name, password_hash, role, company_id, is_active)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE)`,
			uuid.NewString(), u.email, u.first, u.last, passwordHash, u.role, companyID,
		); err != nil {
			return fmt.Errorf("failed to insert user %s: %w", u.email, err)
		}
		log.Info("Seeded user", zap.String("email", u.email), zap.String("role", u.role))
	}

	stations := []struct {
		name     string
		location string
		claimed  bool
	}{
		{"North Plant Gateway", "Building A, Floor 1", true},
		{"South Plant Gateway", "Building C, Roof", true},
		{"Spare Gateway", "", false},
	}
	var claimedStationIDs []string
	for _, s := range stations {
		stationID := uuid.NewString()
		hwUUID := uuid.NewString()
		if s.claimed {
			if _, err := db.Exec(
				`INSERT INTO stations (station_id, uuid, name, location, company_id, status, last_seen)
				 VALUES ($1, $2, $3, $4, $5, 'active', NOW())`,
				stationID, hwUUID, s.name, s.location, companyID,
			); err != nil {
				return fmt.Errorf("failed to insert station %s: %w", s.name, err)
			}
			claimedStationIDs = append(claimedStationIDs, stationID)
		} else {
			if _, err := db.Exec(
				`INSERT INTO stations (station_id, uuid, name, status)
				 VALUES ($1, $2, $3, 'pending')`,
				stationID, hwUUID, s.name,
			); err != nil {
				return fmt.Errorf("failed to insert station %s: %w", s.name, err)
			}
			// printed so the activation flow can be exercised by hand
			log.Info("Seeded unclaimed station", zap.String("uuid", hwUUID))
		}
	}

	deviceTypes := []struct {
		name  string
		typ   string
		param string
		unit  string
		base  float64
	}{
		{"Line 1 Temperature", "temperature_sensor", "temperature", "°C", 22},
		{"Line 1 Humidity", "humidity_sensor", "humidity", "%", 45},
		{"Compressor Vibration", "vibration_sensor", "vibration", "mm/s", 2},
	}
	for _, stationID := range claimedStationIDs {
		for _, d := range deviceTypes {
			deviceID := uuid.NewString()
			if _, err := db.Exec(
				`INSERT INTO devices (device_id, station_id, name, type, status)
				 VALUES ($1, $2, $3, $4, 'active')`,
				deviceID, stationID, d.name, d.typ,
			); err != nil {
				return fmt.Errorf("failed to insert device %s: %w", d.name, err)
			}

			// one reading per hour for the last 24 hours
			for h := 24; h > 0; h-- {
				ts := time.Now().Add(-time.Duration(h) * time.Hour)
				value := d.base + rand.Float64()*4 - 2
				if _, err := db.Exec(
					`INSERT INTO sensor_data (reading_id, device_id, parameter, value, unit, ts)
					 VALUES ($1, $2, $3, $4, $5, $6)`,
					uuid.NewString(), deviceID, d.param, value, d.unit, ts,
				); err != nil {
					return fmt.Errorf("failed to insert reading: %w", err)
				}
			}
		}
	}

	if len(claimedStationIDs) > 0 {
		if _, err := db.Exec(
			`INSERT INTO alerts (alert_id, station_id, title, description, level, is_resolved)
			 VALUES ($1, $2, $3, $4, 'warning', FALSE)`,
			uuid.NewString(), claimedStationIDs[0],
			"High temperature on Line 1", "Temperature exceeded 26°C for 15 minutes",
		); err != nil {
			return fmt.Errorf("failed to insert alert: %w", err)
		}
	}

	if _, err := db.Exec(
		`INSERT INTO alert_rules (rule_id, company_id, name, parameter, condition, threshold, level, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE)`,
		uuid.NewString(), companyID, "Overheat", "temperature", ">", 26.0, "warning",
	); err != nil {
		return fmt.Errorf("failed to insert alert rule: %w", err)
	}

	log.Info("Seeded demo company",
		zap.String("company_id", companyID),
		zap.String("admin_login", "admin@acme.example / password123"))
	return nil
}
