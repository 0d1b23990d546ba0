package config

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/tzbot/common"
	tipbotconfig "github.com/gaze-network/tzbot/modules/tipbot/config"
	"github.com/gaze-network/tzbot/pkg/logger"
	"github.com/gaze-network/tzbot/pkg/logger/slogx"
	"github.com/gaze-network/tzbot/pkg/middleware/requestlogger"
	"github.com/gaze-network/tzbot/pkg/tezos/rpc"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	isInit bool
	mu     sync.Mutex
	config = defaultConfig()
)

func defaultConfig() *Config {
	return &Config{
		Logger: logger.Config{
			Output: "TEXT",
		},
		Network: common.NetworkMainnet,
		TezosNode: TezosNodeClient{
			Chain:   rpc.DefaultChain,
			Timeout: rpc.DefaultTimeout,
		},
		Keychain: Keychain{
			Path: "./keychain.json",
		},
		HTTPServer: HTTPServerConfig{
			Port: 8080,
		},
	}
}

type Config struct {
	Logger     logger.Config    `mapstructure:"logger"`
	Network    common.Network   `mapstructure:"network"`
	TezosNode  TezosNodeClient  `mapstructure:"tezos_node"`
	Keychain   Keychain         `mapstructure:"keychain"`
	HTTPServer HTTPServerConfig `mapstructure:"http_server"`
	Modules    Modules          `mapstructure:"modules"`
}

type TezosNodeClient struct {
	URL     string        `mapstructure:"url"` // Default is the public RPC of the configured network
	Chain   string        `mapstructure:"chain"`
	Debug   bool          `mapstructure:"debug"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// NodeURL returns the configured node url, or the public node of network if none is set.
func (c TezosNodeClient) NodeURL(network common.Network) string {
	if c.URL != "" {
		return c.URL
	}
	return network.DefaultNodeURL()
}

// RPCConfig converts the node settings into the rpc client configuration.
func (c TezosNodeClient) RPCConfig() rpc.Config {
	return rpc.Config{
		Chain:   c.Chain,
		Debug:   c.Debug,
		Timeout: c.Timeout,
	}
}

type Keychain struct {
	Path string `mapstructure:"path"`
}

type Modules struct {
	Tipbot tipbotconfig.Config `mapstructure:"tipbot"`
}

type HTTPServerConfig struct {
	Port   int                  `mapstructure:"port"`
	Logger requestlogger.Config `mapstructure:"logger"`
}

// Parse parse the configuration from environment variables
func Parse(configFile ...string) Config {
	mu.Lock()
	defer mu.Unlock()
	return parse(configFile...)
}

// Load returns the loaded configuration
func Load() Config {
	mu.Lock()
	defer mu.Unlock()
	if isInit {
		return *config
	}
	return parse()
}

// BindPFlag binds a specific key to a pflag (as used by cobra).
// Example (where serverCmd is a Cobra instance):
//
//	serverCmd.Flags().Int("port", 1138, "Port to run Application server on")
//	Viper.BindPFlag("port", serverCmd.Flags().Lookup("port"))
func BindPFlag(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		logger.Panic("Something went wrong, failed to bind flag for config", slogx.String("package", "config"), slogx.Error(err))
	}
}

func parse(configFile ...string) Config {
	ctx := logger.WithContext(context.Background(), slogx.String("package", "config"))

	if len(configFile) > 0 && configFile[0] != "" {
		viper.SetConfigFile(configFile[0])
	} else {
		viper.AddConfigPath("./")
		viper.SetConfigName("config")
	}

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	if err := viper.ReadInConfig(); err != nil {
		var errNotfound viper.ConfigFileNotFoundError
		if errors.As(err, &errNotfound) {
			logger.WarnContext(ctx, "Config file not found, use default config value", slogx.Error(err))
		} else {
			logger.PanicContext(ctx, "Invalid config file", slogx.Error(err))
		}
	}

	if err := viper.Unmarshal(&config); err != nil {
		logger.PanicContext(ctx, "Something went wrong, failed to unmarshal config", slogx.Error(err))
	}

	isInit = true
	return *config
}
