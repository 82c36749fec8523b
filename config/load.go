package config

import (
	"lending/core"

	configUtil "github.com/fox-one/pkg/config"
)

// Load load config file, LENDING_* env variables override the file
func Load(configFile string, config *core.Config) error {
	configUtil.AutomaticLoadEnv("LENDING")
	if err := configUtil.LoadYaml(configFile, config); err != nil {
		return err
	}

	defaultApp(config)
	return nil
}

func defaultApp(config *core.Config) {
	if config.App.Location == "" {
		config.App.Location = "UTC"
	}

	if config.App.SnapshotSpec == "" {
		config.App.SnapshotSpec = "@every 1s"
	}

	if config.Session.Capacity == 0 {
		config.Session.Capacity = 1024
	}
}
