package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/joshuapare/appxkit/pkg/appx"
)

// Config is the resolved CLI configuration. Precedence, highest first:
// flags, APPXCTL_* environment variables, config file, defaults.
type Config struct {
	Verbose bool
	Quiet   bool
	JSON    bool
	NoColor bool

	SignatureEntry       string
	SignaturePrefixLimit int
	Compression          appx.Compression
	NoSync               bool
}

// Options converts the configuration into workflow options.
func (c Config) Options() *appx.Options {
	return &appx.Options{
		SignatureEntry:       c.SignatureEntry,
		SignaturePrefixLimit: c.SignaturePrefixLimit,
		Compression:          c.Compression,
		NoSync:               c.NoSync,
	}
}

func loadConfig(cmd *cobra.Command, path string) (Config, error) {
	v := viper.New()

	defaults := appx.DefaultOptions()
	v.SetDefault("signature-entry", defaults.SignatureEntry)
	v.SetDefault("prefix-limit", defaults.SignaturePrefixLimit)
	v.SetDefault("compression", string(defaults.Compression))
	v.SetDefault("no-sync", defaults.NoSync)

	v.SetEnvPrefix("APPXCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return Config{}, fmt.Errorf("bind flags: %w", err)
	}

	c := Config{
		Verbose:              v.GetBool("verbose"),
		Quiet:                v.GetBool("quiet"),
		JSON:                 v.GetBool("json"),
		NoColor:              v.GetBool("no-color"),
		SignatureEntry:       v.GetString("signature-entry"),
		SignaturePrefixLimit: v.GetInt("prefix-limit"),
		Compression:          appx.Compression(strings.ToLower(v.GetString("compression"))),
		NoSync:               v.GetBool("no-sync"),
	}
	switch c.Compression {
	case appx.CompressionDeflate, appx.CompressionStore:
	default:
		return Config{}, fmt.Errorf("unknown compression %q (must be deflate or store)", c.Compression)
	}
	if c.SignaturePrefixLimit <= 0 {
		return Config{}, fmt.Errorf("prefix-limit must be positive, got %d", c.SignaturePrefixLimit)
	}
	return c, nil
}
