package config

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigDebug       = "debug"
	ConfigMinLength   = "min-length"
	ConfigThreads     = "threads"
	ConfigFormat      = "format"
	ConfigEncoding    = "encoding"
	ConfigLexiconPath = "lexicon-path"
	ConfigHistogram   = "histogram"
	ConfigNatsURL     = "nats-url"
	ConfigNatsSubject = "nats-subject"
	ConfigCPUProfile  = "cpu-profile"
	ConfigConfigFile  = "config"
)

// DefaultMinLength is the shortest word reported when nothing else is
// configured.
const DefaultMinLength = 4

type Config struct {
	*viper.Viper
	args []string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(ConfigDebug, false)
	v.SetDefault(ConfigMinLength, DefaultMinLength)
	v.SetDefault(ConfigThreads, runtime.GOMAXPROCS(0))
	v.SetDefault(ConfigFormat, "text")
	v.SetDefault(ConfigEncoding, "utf8")
	v.SetDefault(ConfigLexiconPath, "./data/lexica")
	v.SetDefault(ConfigHistogram, false)
	v.SetDefault(ConfigNatsURL, "nats://localhost:4222")
	v.SetDefault(ConfigNatsSubject, "wordsearch.solve")
}

// DefaultConfig returns a config holding only default values. Tests use it
// in place of loading flags.
func DefaultConfig() *Config {
	c := &Config{Viper: viper.New()}
	setDefaults(c.Viper)
	return c
}

// Load parses command-line flags, the WORDSEARCH_* environment and an
// optional config file into the config. Flags win over the environment,
// which wins over the file.
func (c *Config) Load(args []string) error {
	c.Viper = viper.New()
	setDefaults(c.Viper)

	fs := pflag.NewFlagSet("wordsearch", pflag.ContinueOnError)
	fs.Bool(ConfigDebug, false, "debug logging on")
	fs.Int(ConfigMinLength, DefaultMinLength, "minimum number of letters in a reported word")
	fs.Int(ConfigThreads, runtime.GOMAXPROCS(0), "number of scanning goroutines")
	fs.String(ConfigFormat, "text", "output format: text, json or yaml")
	fs.String(ConfigEncoding, "utf8", "character encoding of input files: utf8 or latin1")
	fs.String(ConfigLexiconPath, "./data/lexica", "directory holding word lists")
	fs.Bool(ConfigHistogram, false, "print a histogram of match lengths")
	fs.String(ConfigNatsURL, "nats://localhost:4222", "the NATS server URL")
	fs.String(ConfigNatsSubject, "wordsearch.solve", "the NATS subject to answer solve requests on")
	fs.String(ConfigCPUProfile, "", "file to write a CPU profile to")
	fs.String(ConfigConfigFile, "", "optional config file (yaml, json or toml)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	c.args = fs.Args()

	c.SetEnvPrefix("wordsearch")
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()

	if err := c.BindPFlags(fs); err != nil {
		return err
	}
	if cfgFile := c.GetString(ConfigConfigFile); cfgFile != "" {
		c.SetConfigFile(cfgFile)
		if err := c.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file: %w", err)
		}
	}
	return nil
}

// Args returns the positional arguments left over after flag parsing.
func (c *Config) Args() []string {
	return c.args
}

// AdjustRelativePaths makes the lexicon path absolute relative to basePath,
// if it was given as a ./ path.
func (c *Config) AdjustRelativePaths(basePath string) {
	p := c.GetString(ConfigLexiconPath)
	if strings.HasPrefix(p, "./") {
		c.Set(ConfigLexiconPath, filepath.Join(basePath, p))
	}
}

// SanitizedSettings returns the settings map, for logging.
func (c *Config) SanitizedSettings() map[string]any {
	return c.AllSettings()
}
