package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type SPI struct {
	Port string `yaml:"port"` // e.g. SPI0.0
}

type GPIO struct {
	Chip      string `yaml:"chip"` // e.g. gpiochip0
	Button    int    `yaml:"button"`
	IRRx      int    `yaml:"ir_rx"`
	IRTx      int    `yaml:"ir_tx"`
	StatusLed int    `yaml:"status_led"`
}

type Thermal struct {
	Path     string `yaml:"path"` // e.g. /sys/class/thermal/thermal_zone0/temp
	PeriodMs int    `yaml:"period_ms"`
}

type Serial struct {
	Device string `yaml:"device"`
}

type Config struct {
	Driver     string `yaml:"driver"` // "spi" | "ws" | "term" | "none"
	TickHz     int    `yaml:"tick_hz"`
	ListenAddr string `yaml:"listen_addr"` // ws driver only

	SPI     SPI     `yaml:"spi,omitempty"`
	GPIO    GPIO    `yaml:"gpio"`
	Thermal Thermal `yaml:"thermal"`
	Control Serial  `yaml:"control,omitempty"`
	Midi    Serial  `yaml:"midi,omitempty"`
}

// Default is the configuration used when no file is given or the file
// cannot be read.
func Default() *Config {
	return &Config{
		Driver:     "term",
		TickHz:     100,
		ListenAddr: ":8099",
		SPI:        SPI{Port: "SPI0.0"},
		GPIO:       GPIO{Chip: "gpiochip0", Button: 9, IRRx: 26, IRTx: 25, StatusLed: 24},
		Thermal:    Thermal{Path: "/sys/class/thermal/thermal_zone0/temp", PeriodMs: 1000},
	}
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, err
	}
	return c, nil
}

func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}
