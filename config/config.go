package config

import (
	"fmt"
	"time"
)

type Configs struct {
	Env string

	Database  DatabaseConfigs
	ApiServer APIServerConfigs
	Auth      AuthConfigs
	Redis     RedisConfigs
	Analysis  AnalysisConfigs
}

type DatabaseConfigs struct {
	Host     string
	Port     string
	Database string
	User     string
	Password string
}

func (d *DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type APIServerConfigs struct {
	Host string
	Port string

	MaxLimit     int
	DefaultLimit int
}

func (s APIServerConfigs) Address() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

type AuthConfigs struct {
	TokenSecret string
	AccessToken TokenConfigs
}

type TokenConfigs struct {
	Name       string
	Expiration time.Duration
}

type RedisConfigs struct {
	Addr                string
	NotificationChannel string
}

type AnalysisConfigs struct {
	// Workers is the number of goroutines draining the analysis queue.
	Workers int

	// QueueSize bounds the number of submissions waiting for analysis.
	QueueSize int

	// MinProcessTime and MaxProcessTime bound the simulated processing latency
	// of a single analysis task.
	MinProcessTime time.Duration
	MaxProcessTime time.Duration
}
