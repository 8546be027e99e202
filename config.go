package fastpair

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config carries the timeouts and retry budgets that govern the GATT
// handshake state machine, the pairer, and the pairer broker. Values are
// loaded from environment variables (prefix FASTPAIR_) with the defaults
// below, matching the constants the source protocol specifies.
type Config struct {
	// GattOperationTimeout bounds GATT connect, discovery, subscription,
	// write, and response-notification waits.
	GattOperationTimeout time.Duration `envconfig:"GATT_OPERATION_TIMEOUT" default:"15s"`
	// MaxGattConnectionAttempts is the number of GATT connect attempts
	// before giving up with PairFailureCreateGattConnection.
	MaxGattConnectionAttempts int `envconfig:"MAX_GATT_CONNECTION_ATTEMPTS" default:"3"`
	// MaxServiceDiscoveryAttempts is loaded from the environment but not
	// read by the GATT client: a failed service discovery reconnects, and
	// those reconnects count against MaxGattConnectionAttempts.
	MaxServiceDiscoveryAttempts int `envconfig:"MAX_SERVICE_DISCOVERY_ATTEMPTS" default:"3"`
	// InitiatePairingTimeout bounds the classic-pairing handshake.
	InitiatePairingTimeout time.Duration `envconfig:"INITIATE_PAIRING_TIMEOUT" default:"20s"`
	// MaxHandshakeAttempts bounds broker-level handshake retries.
	MaxHandshakeAttempts int `envconfig:"MAX_HANDSHAKE_ATTEMPTS" default:"3"`
	// MaxPairFailureRetries bounds broker-level pair-attempt retries.
	MaxPairFailureRetries int `envconfig:"MAX_PAIR_FAILURE_RETRIES" default:"3"`
	// RetryDelay is the pause before retrying a failed handshake or pair
	// attempt.
	RetryDelay time.Duration `envconfig:"RETRY_DELAY" default:"1s"`
	// ExecutorQueueDepth sizes the buffered channel backing the
	// single-threaded executor each Broker owns.
	ExecutorQueueDepth int `envconfig:"EXECUTOR_QUEUE_DEPTH" default:"64"`
}

// DefaultConfig returns the Config that results from applying the envconfig
// defaults and any FASTPAIR_ environment overrides that are set.
func DefaultConfig() Config {
	var c Config
	// The error (a malformed struct tag or an unparsable environment
	// value) is ignored; fields that were processed keep their values.
	_ = envconfig.Process("fastpair", &c)
	return c
}
