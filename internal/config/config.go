package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/rs/zerolog"
)

const (
	KindMCTS   = "mcts"
	KindOnePly = "oneply"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	LogLevel string `yaml:"log-level" env:"MNK_LOG_LEVEL" env-default:"info"`
	Board    Board  `yaml:"board"`
	Match    Match  `yaml:"match"`
	Player1  Player `yaml:"player1" env-prefix:"MNK_P1_"`
	Player2  Player `yaml:"player2" env-prefix:"MNK_P2_"`
}

type Board struct {
	M int `yaml:"m" env:"MNK_M" env-default:"3"`
	N int `yaml:"n" env:"MNK_N" env-default:"3"`
	K int `yaml:"k" env:"MNK_K" env-default:"3"`
}

type Match struct {
	Games   int `yaml:"games" env:"MNK_GAMES" env-default:"10"`
	Workers int `yaml:"workers" env:"MNK_WORKERS" env-default:"2"`
	// per-move time limit given to the players
	TimeoutMs     int  `yaml:"timeout-ms" env:"MNK_TIMEOUT_MS" env-default:"1000"`
	StrictTimeout bool `yaml:"strict-timeout" env:"MNK_STRICT_TIMEOUT" env-default:"false"`
	ShowMoves     bool `yaml:"show-moves" env:"MNK_SHOW_MOVES" env-default:"false"`
}

type Player struct {
	Kind        string  `yaml:"kind" env:"KIND" env-default:"mcts"`
	Name        string  `yaml:"name" env:"NAME"`
	Exploration float64 `yaml:"exploration" env:"EXPLORATION" env-default:"0.75"`
	// fixed number of search cycles per move, 0 means searching for the time budget
	Cycles        uint32 `yaml:"cycles" env:"CYCLES" env-default:"0"`
	ImmediateWins bool   `yaml:"immediate-wins" env:"IMMEDIATE_WINS" env-default:"false"`
}

// MustLoad - load all configurations in the file (and the environment), panics on failure.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}
	return config
}

// Load the config file at 'path', the environment overrides its values.
// With an empty path only the environment and the defaults are used.
func Load(path string) (*Config, error) {
	config := &Config{}

	var err error
	if path == "" {
		err = cleanenv.ReadEnv(config)
	} else {
		err = cleanenv.ReadConfig(path, config)
	}
	if err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) Validate() error {
	if c.Board.M < 1 || c.Board.N < 1 || c.Board.K < 1 {
		return fmt.Errorf("%w: board %dx%d k=%d", ErrInvalidConfig, c.Board.M, c.Board.N, c.Board.K)
	}
	if c.Match.Games < 0 || c.Match.Workers < 1 || c.Match.TimeoutMs < 0 {
		return fmt.Errorf("%w: games=%d workers=%d timeout-ms=%d",
			ErrInvalidConfig, c.Match.Games, c.Match.Workers, c.Match.TimeoutMs)
	}
	for _, p := range []Player{c.Player1, c.Player2} {
		if p.Kind != KindMCTS && p.Kind != KindOnePly {
			return fmt.Errorf("%w: unknown player kind %q", ErrInvalidConfig, p.Kind)
		}
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

func (m *Match) Timeout() time.Duration {
	return time.Duration(m.TimeoutMs) * time.Millisecond
}

func (c *Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}
