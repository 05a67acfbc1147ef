// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package config loads wgslgen settings from wgslgen.yaml and WGSLGEN_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"

	"github.com/gogpu/gpuprogram/gpucore"
)

// EnvPrefix is the prefix of environment variables read by Load.
// WGSLGEN_DEVICE_SHADER_F16=true sets device.shader_f16.
const EnvPrefix = "WGSLGEN"

// BackendAuto selects the best registered backend.
const BackendAuto = "auto"

// Config represents the wgslgen configuration
type Config struct {
	Backend  string       `mapstructure:"backend"`
	LogLevel string       `mapstructure:"log_level"`
	Device   DeviceConfig `mapstructure:"device"`
	Cache    CacheConfig  `mapstructure:"cache"`
}

// DeviceConfig describes the limits of the target device. Programs are
// generated and validated against these values.
type DeviceConfig struct {
	MaxWorkgroupSizeX          uint32 `mapstructure:"max_workgroup_size_x"`
	MaxWorkgroupSizeY          uint32 `mapstructure:"max_workgroup_size_y"`
	MaxWorkgroupSizeZ          uint32 `mapstructure:"max_workgroup_size_z"`
	MaxInvocationsPerWorkgroup uint32 `mapstructure:"max_invocations_per_workgroup"`
	MaxWorkgroupsPerDimension  uint32 `mapstructure:"max_workgroups_per_dimension"`
	MaxStorageBuffersPerStage  uint32 `mapstructure:"max_storage_buffers_per_stage"`
	ShaderF16                  bool   `mapstructure:"shader_f16"`
}

// CacheConfig represents compilation cache configuration
type CacheConfig struct {
	SPIRVCapacity int    `mapstructure:"spirv_capacity"`
	Label         string `mapstructure:"label"`
}

// Load reads wgslgen.yaml (or .yml) from the first of paths that has one,
// defaulting to the current directory, then applies environment overrides.
// A missing file is not an error.
func Load(paths ...string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("wgslgen")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{"."}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read config file: %w", err)
		}
	}

	return decode(v)
}

// LoadFile reads the configuration from an explicit file path.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return decode(v)
}

func setDefaults(v *viper.Viper) {
	caps := gpucore.DefaultCapabilities()
	v.SetDefault("backend", BackendAuto)
	v.SetDefault("log_level", "warn")
	v.SetDefault("device.max_workgroup_size_x", caps.MaxComputeWorkgroupSizeX)
	v.SetDefault("device.max_workgroup_size_y", caps.MaxComputeWorkgroupSizeY)
	v.SetDefault("device.max_workgroup_size_z", caps.MaxComputeWorkgroupSizeZ)
	v.SetDefault("device.max_invocations_per_workgroup", caps.MaxComputeInvocationsPerWorkgroup)
	v.SetDefault("device.max_workgroups_per_dimension", caps.MaxComputeWorkgroupsPerDimension)
	v.SetDefault("device.max_storage_buffers_per_stage", caps.MaxStorageBuffersPerShaderStage)
	v.SetDefault("device.shader_f16", caps.ShaderF16)
	v.SetDefault("cache.spirv_capacity", 0)
	v.SetDefault("cache.label", "")
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks limits and names.
func (c *Config) Validate() error {
	d := c.Device
	switch {
	case d.MaxWorkgroupSizeX == 0 || d.MaxWorkgroupSizeY == 0 || d.MaxWorkgroupSizeZ == 0:
		return errors.New("config: device workgroup size limits must be greater than 0")
	case d.MaxInvocationsPerWorkgroup == 0:
		return errors.New("config: device.max_invocations_per_workgroup must be greater than 0")
	case d.MaxWorkgroupsPerDimension == 0:
		return errors.New("config: device.max_workgroups_per_dimension must be greater than 0")
	case d.MaxStorageBuffersPerStage == 0:
		return errors.New("config: device.max_storage_buffers_per_stage must be greater than 0")
	}
	if c.Backend == "" {
		return errors.New("config: backend must not be empty")
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// Capabilities returns the device limits as a capability record.
func (c *Config) Capabilities() gpucore.Capabilities {
	return gpucore.Capabilities{
		MaxComputeWorkgroupSizeX:          c.Device.MaxWorkgroupSizeX,
		MaxComputeWorkgroupSizeY:          c.Device.MaxWorkgroupSizeY,
		MaxComputeWorkgroupSizeZ:          c.Device.MaxWorkgroupSizeZ,
		MaxComputeInvocationsPerWorkgroup: c.Device.MaxInvocationsPerWorkgroup,
		MaxComputeWorkgroupsPerDimension:  c.Device.MaxWorkgroupsPerDimension,
		MaxStorageBuffersPerShaderStage:   c.Device.MaxStorageBuffersPerStage,
		ShaderF16:                         c.Device.ShaderF16,
	}
}

// SlogLevel parses LogLevel ("debug", "info", "warn", "error").
func (c *Config) SlogLevel() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("config: log_level %q: %w", c.LogLevel, err)
	}
	return l, nil
}
