// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"go.uber.org/fx"

	"github.com/zoomvr/geomodelportal/attrstore"
	"github.com/zoomvr/geomodelportal/index"
	"github.com/zoomvr/geomodelportal/registry"
	"github.com/zoomvr/geomodelportal/scene"
	"github.com/zoomvr/geomodelportal/store/db"
)

type ServerConfig struct {
	Address string
}

// Config is the full application configuration, unmarshalled from viper.
type Config struct {
	Servers struct {
		Primary ServerConfig
		Metrics ServerConfig
		Health  ServerConfig
	}
	Store       db.Configs
	Providers   registry.Config `validate:"required"`
	Boreholes   index.Config
	AttributeDB attrstore.Config
	Scene       scene.ExecConfig
}

func unmarshalConfig(v *viper.Viper) (Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := validator.New().Struct(c); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return c, nil
}

// provideConfig unmarshals the top-level config and fans its sections out to
// the packages that consume them.
func provideConfig() fx.Option {
	return fx.Provide(
		unmarshalConfig,
		func(c Config) db.Configs { return c.Store },
		func(c Config) registry.Config { return c.Providers },
		func(c Config) index.Config { return c.Boreholes },
		func(c Config) attrstore.Config { return c.AttributeDB },
		func(c Config) scene.ExecConfig { return c.Scene },
	)
}
