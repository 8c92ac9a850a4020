package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const configFileEnvName = "FRESHMARKET_CONFIG_FILE"

type shipping struct {
	FreeThreshold string `mapstructure:"free_threshold"`
	Fee           string `mapstructure:"fee"`
}

type checkout struct {
	ProcessingDelay time.Duration `mapstructure:"processing_delay"`
	NodeID          int64         `mapstructure:"node_id"`
}

type Config struct {
	LogLevel       slog.Level `mapstructure:"log_level"`
	HTTPServerAddr string     `mapstructure:"http_server_addr"`
	StorageFile    string     `mapstructure:"storage_file"`
	CatalogFile    string     `mapstructure:"catalog_file"`
	Shipping       shipping   `mapstructure:"shipping"`
	Checkout       checkout   `mapstructure:"checkout"`
}

// Load builds the config from defaults and, when given, a YAML file
// pointed to by the --config flag or the FRESHMARKET_CONFIG_FILE env.
func Load() Config {
	setDefaults()

	if path := getConfigFilepath(); path != "" {
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err != nil {
			die(err)
		}
	}

	var cfg Config
	if err := viper.UnmarshalExact(&cfg); err != nil {
		die(err)
	}
	return cfg
}

func setDefaults() {
	viper.SetDefault("log_level", 0)
	viper.SetDefault("http_server_addr", ":8080")
	viper.SetDefault("storage_file", "freshmarket.db")
	viper.SetDefault("catalog_file", "")
	viper.SetDefault("shipping.free_threshold", "150.00")
	viper.SetDefault("shipping.fee", "12.90")
	viper.SetDefault("checkout.processing_delay", "3s")
	viper.SetDefault("checkout.node_id", 1)
}

func getConfigFilepath() string {
	cmdLine := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	arg := cmdLine.String("config", "", "config file")
	_ = cmdLine.Parse(os.Args[1:])
	env, ok := os.LookupEnv(configFileEnvName)
	if ok {
		return env
	}
	return *arg
}

func die(err error) {
	fmt.Printf("failed to load config file: %v\n", err)
	os.Exit(2)
}

func (c Config) Print() {
	tamplate := `
	General:
	LogLevel=%q
	HTTPServerAddr=%q
	StorageFile=%q
	CatalogFile=%q

	Shipping:
	FreeThreshold=%q
	Fee=%q

	Checkout:
	ProcessingDelay=%q
	NodeID=%d

`
	fmt.Println("Loaded config:")
	fmt.Printf(
		strings.TrimLeft(tamplate, "\n"),
		c.LogLevel,
		c.HTTPServerAddr,
		c.StorageFile,
		c.CatalogFile,
		c.Shipping.FreeThreshold,
		c.Shipping.Fee,
		c.Checkout.ProcessingDelay,
		c.Checkout.NodeID,
	)
}
