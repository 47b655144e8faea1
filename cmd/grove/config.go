package main

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/groveembed/grove/pkg/vm"
)

// config is the CLI host's own configuration — not something the Grove
// language or pkg/vm know anything about. The VM library itself takes no
// config; this struct exists purely to demonstrate how a real embedding
// host might wire instruction limits and logging through to pkg/vm.
type config struct {
	InstructionLimit uint64 `toml:"instruction_limit"`
	LogLevel         string `toml:"log_level"`
	Color            bool   `toml:"color"`
}

func defaultConfig() config {
	return config{
		InstructionLimit: 0, // 0 means "use pkg/vm's own default"
		LogLevel:         "warn",
		Color:            true,
	}
}

// loadConfig reads an optional grove.toml pointed to by --config. A
// missing path is not an error — the CLI runs fine on defaults alone.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// newConfiguredVM builds a vm.VM honoring --config and
// --instruction-limit (the flag, when nonzero, wins over the config
// file).
func newConfiguredVM(cmd *cobra.Command) *vm.VM {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := loadConfig(configPath)
	if err != nil {
		cfg = defaultConfig()
	}

	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil && cfg.LogLevel != "" {
		zerolog.SetGlobalLevel(lvl)
	}
	if !cfg.Color {
		color.NoColor = true
	}

	flagLimit, _ := cmd.Flags().GetUint64("instruction-limit")

	v := vm.New()
	switch {
	case flagLimit > 0:
		v.SetInstructionLimit(flagLimit)
	case cfg.InstructionLimit > 0:
		v.SetInstructionLimit(cfg.InstructionLimit)
	}
	return v
}
