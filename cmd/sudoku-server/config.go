package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

type PostgresConfig struct {
	Host     string `json:"host"`
	Port     uint   `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	DbName   string `json:"db_name"`
}

// Enabled reports whether a postgres backend is configured; otherwise the
// server falls back to the sqlite session store.
func (p PostgresConfig) Enabled() bool {
	return p.Host != ""
}

func (p PostgresConfig) DbUrl() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s",
		p.Host, p.Port, p.User, p.Password, p.DbName,
	)
}

type LogFileConfig struct {
	Filename   string `json:"filename"`
	MaxSizeMb  int    `json:"max_size_mb"`
	MaxBackups int    `json:"max_backups"`
	MaxAgeDays int    `json:"max_age_days"`
}

type Config struct {
	Mode      string         `json:"mode"`
	Addr      string         `json:"addr"`
	StorePath string         `json:"store_path"`
	Postgres  PostgresConfig `json:"postgres"`
	LogFile   LogFileConfig  `json:"log_file"`
}

func (c Config) Fields() logrus.Fields {
	return map[string]any{
		"mode":       c.Mode,
		"addr":       c.Addr,
		"store_path": c.StorePath,
		"pg_host":    c.Postgres.Host,
		"pg_port":    c.Postgres.Port,
		"pg_user":    c.Postgres.User,
		"pg_db_name": c.Postgres.DbName,
		"log_file":   c.LogFile.Filename,
	}
}

func (c Config) Production() bool {
	return c.Mode == "production"
}

func (c Config) Development() bool {
	return c.Mode != "production"
}

func ReadConfig(path string, config *Config) error {
	if b, err := os.ReadFile(path); err != nil {
		return err
	} else {
		return json.Unmarshal(b, config)
	}
}
