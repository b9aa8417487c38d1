package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"k8s.io/apimachinery/pkg/util/validation/field"
)

// Environment variable names for the relay signer clients
const (
	EnvRelaySignerApiUrl       = "PLATFORM_RELAY_SIGNER_API_URL"
	EnvRelaySignerPoolId       = "PLATFORM_RELAY_SIGNER_POOL_ID"
	EnvRelaySignerPoolClientId = "PLATFORM_RELAY_SIGNER_POOL_CLIENT_ID"
	EnvActionRegion            = "DEFENDER_ACTION_REGION"
	EnvAWSRegion               = "AWS_REGION"

	EnvRelayerApiKey      = "DEFENDER_RELAYER_API_KEY"
	EnvRelayerApiSecret   = "DEFENDER_RELAYER_API_SECRET"
	EnvRelayerCredentials = "DEFENDER_RELAYER_CREDENTIALS"
	EnvRelayerARN         = "DEFENDER_RELAYER_ARN"
	EnvRelayerRpcUrl      = "DEFENDER_RELAYER_RPC_URL"
	EnvRelayerVerbose     = "DEFENDER_RELAYER_VERBOSE"
)

const (
	DefaultRelaySignerApiUrl       = "https://api.defender.openzeppelin.com/"
	DefaultRelaySignerPoolId       = "us-west-2_iLmIggsiy"
	DefaultRelaySignerPoolClientId = "1bpd19lcr33qvg5cr3oi79rdap"
	DefaultActionRegion            = "us-west-2"

	DefaultHttpTimeout = 60 * time.Second
)

func envOrDefault(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}

// GetRelaySignerApiUrl returns the relay signer API base URL, honouring PLATFORM_RELAY_SIGNER_API_URL.
func GetRelaySignerApiUrl() string {
	return envOrDefault(EnvRelaySignerApiUrl, DefaultRelaySignerApiUrl)
}

func GetRelaySignerPoolId() string {
	return envOrDefault(EnvRelaySignerPoolId, DefaultRelaySignerPoolId)
}

func GetRelaySignerPoolClientId() string {
	return envOrDefault(EnvRelaySignerPoolClientId, DefaultRelaySignerPoolClientId)
}

// GetActionRegion returns the region the action relayer lambda lives in.
func GetActionRegion() string {
	if v := os.Getenv(EnvActionRegion); v != "" {
		return v
	}
	return envOrDefault(EnvAWSRegion, DefaultActionRegion)
}

// RegionFromPoolId extracts the AWS region from a Cognito pool id such as "us-west-2_iLmIggsiy".
func RegionFromPoolId(poolId string) (string, error) {
	idx := strings.Index(poolId, "_")
	if idx <= 0 {
		return "", fmt.Errorf("invalid pool id: %q", poolId)
	}
	return poolId[:idx], nil
}

// RelayerClientConfig configures the HTTP-backed relay signer client
type RelayerClientConfig struct {
	ApiUrl       string        `json:"apiUrl" yaml:"apiUrl"`
	PoolId       string        `json:"poolId" yaml:"poolId"`
	PoolClientId string        `json:"poolClientId" yaml:"poolClientId"`
	HttpTimeout  time.Duration `json:"httpTimeout" yaml:"httpTimeout"`

	// RateLimit caps outgoing platform API requests per second. Zero disables limiting.
	RateLimit float64 `json:"rateLimit" yaml:"rateLimit"`
	RateBurst int     `json:"rateBurst" yaml:"rateBurst"`
}

// NewRelayerClientConfigFromEnv builds a config populated from the environment and defaults
func NewRelayerClientConfigFromEnv() *RelayerClientConfig {
	return &RelayerClientConfig{
		ApiUrl:       GetRelaySignerApiUrl(),
		PoolId:       GetRelaySignerPoolId(),
		PoolClientId: GetRelaySignerPoolClientId(),
		HttpTimeout:  DefaultHttpTimeout,
	}
}

func (c *RelayerClientConfig) Validate() error {
	var allErrors field.ErrorList
	if c.ApiUrl == "" {
		allErrors = append(allErrors, field.Required(field.NewPath("apiUrl"), "apiUrl is required"))
	} else if u, err := url.Parse(c.ApiUrl); err != nil || u.Scheme == "" || u.Host == "" {
		allErrors = append(allErrors, field.Invalid(field.NewPath("apiUrl"), c.ApiUrl, "must be an absolute URL"))
	}
	if c.PoolId == "" {
		allErrors = append(allErrors, field.Required(field.NewPath("poolId"), "poolId is required"))
	} else if _, err := RegionFromPoolId(c.PoolId); err != nil {
		allErrors = append(allErrors, field.Invalid(field.NewPath("poolId"), c.PoolId, "must be of the form <region>_<id>"))
	}
	if c.PoolClientId == "" {
		allErrors = append(allErrors, field.Required(field.NewPath("poolClientId"), "poolClientId is required"))
	}
	if c.HttpTimeout < 0 {
		allErrors = append(allErrors, field.Invalid(field.NewPath("httpTimeout"), c.HttpTimeout.String(), "must not be negative"))
	}
	if c.RateLimit < 0 {
		allErrors = append(allErrors, field.Invalid(field.NewPath("rateLimit"), c.RateLimit, "must not be negative"))
	}
	if c.RateLimit > 0 && c.RateBurst < 1 {
		allErrors = append(allErrors, field.Invalid(field.NewPath("rateBurst"), c.RateBurst, "must be at least 1 when rateLimit is set"))
	}
	if len(allErrors) > 0 {
		return allErrors.ToAggregate()
	}
	return nil
}

type StoreType string

func (s StoreType) String() string {
	return string(s)
}

const (
	StoreType_Memory StoreType = "memory"
	StoreType_Redis  StoreType = "redis"
	StoreType_Badger StoreType = "badger"
)

// TransactionStoreConfig selects where the hash to transactionId index is kept
type TransactionStoreConfig struct {
	Type StoreType `json:"type" yaml:"type"`

	RedisAddress   string `json:"redisAddress" yaml:"redisAddress"`
	RedisPassword  string `json:"redisPassword" yaml:"redisPassword"`
	RedisDB        int    `json:"redisDb" yaml:"redisDb"`
	RedisKeyPrefix string `json:"redisKeyPrefix" yaml:"redisKeyPrefix"`

	BadgerPath string `json:"badgerPath" yaml:"badgerPath"`
}

func (c *TransactionStoreConfig) Validate() error {
	var allErrors field.ErrorList
	switch c.Type {
	case "", StoreType_Memory:
	case StoreType_Redis:
		if c.RedisAddress == "" {
			allErrors = append(allErrors, field.Required(field.NewPath("redisAddress"), "redisAddress is required for the redis store"))
		}
		if c.RedisDB < 0 || c.RedisDB > 15 {
			allErrors = append(allErrors, field.Invalid(field.NewPath("redisDb"), c.RedisDB, "must be between 0 and 15"))
		}
	case StoreType_Badger:
		if c.BadgerPath == "" {
			allErrors = append(allErrors, field.Required(field.NewPath("badgerPath"), "badgerPath is required for the badger store"))
		}
	default:
		allErrors = append(allErrors, field.NotSupported(field.NewPath("type"), c.Type,
			[]string{StoreType_Memory.String(), StoreType_Redis.String(), StoreType_Badger.String()}))
	}
	if len(allErrors) > 0 {
		return allErrors.ToAggregate()
	}
	return nil
}
