package cmd

import (
	"fmt"
	"time"
)

type Config struct {
	HTTPPort             string
	DBHost               string
	DBPort               string
	DBUser               string
	DBPassword           string
	DBName               string
	DBSslMode            string
	PaymentWindowMinutes int
	DeliveryLeadHours    int
}

// DSN builds the PostgreSQL connection string from the database settings.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// PaymentWindow returns how long an order may stay PENDING before the stale
// order sweep cancels it.
func (c Config) PaymentWindow() time.Duration {
	return time.Duration(c.PaymentWindowMinutes) * time.Minute
}

// DeliveryLead returns the fixed interval added to the placement instant to
// compute the estimated delivery date.
func (c Config) DeliveryLead() time.Duration {
	return time.Duration(c.DeliveryLeadHours) * time.Hour
}
