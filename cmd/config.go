package cmd

import "time"

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	ExpoPushEndpoint string

	// NotifyRadiusKm bounds the courier fan-out around a store.
	NotifyRadiusKm float64

	// RebroadcastSchedule is a 5-field cron expression; RebroadcastWindow
	// bounds how old an unclaimed order may be and still get re-announced.
	RebroadcastSchedule string
	RebroadcastWindow   time.Duration
}
