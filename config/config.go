package config

import (
	"fmt"
	"os"
	"strconv"
)

// Settings holds all environment-derived configuration for the server.
type Settings struct {
	Database DatabaseSettings
	IGDB     IGDBSettings
	Port     int
}

// DatabaseSettings holds the MySQL connection parameters.
type DatabaseSettings struct {
	Host     string
	User     string
	Password string
	Name     string
	Port     int
}

// IGDBSettings holds the credentials sent with every IGDB request.
type IGDBSettings struct {
	ClientID    string
	AccessToken string
}

// DSN renders the settings as a go-sql-driver connection string.
func (d DatabaseSettings) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true", d.User, d.Password, d.Host, d.Port, d.Name)
}

// Load reads settings from the environment. Missing database credentials are
// an error; the listen port and database port fall back to defaults.
func Load() (*Settings, error) {
	s := &Settings{
		Database: DatabaseSettings{
			Host:     os.Getenv("DB_HOST"),
			User:     os.Getenv("DB_USERNAME"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     os.Getenv("DATABASE"),
			Port:     3306,
		},
		IGDB: IGDBSettings{
			ClientID:    os.Getenv("CLIENT_ID"),
			AccessToken: os.Getenv("AUTH"),
		},
		Port: 4001,
	}

	if s.Database.Host == "" || s.Database.User == "" || s.Database.Name == "" {
		return nil, fmt.Errorf("database configuration incomplete: DB_HOST, DB_USERNAME and DATABASE are required")
	}

	if v := os.Getenv("DB_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid DB_PORT %q: %w", v, err)
		}
		s.Database.Port = port
	}

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		s.Port = port
	}

	return s, nil
}
