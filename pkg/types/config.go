package types

type Config struct {
	Environment string `envconfig:"ENVIRONMENT" default:"development"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	// Remote API
	APIBaseURL        string `envconfig:"API_BASE_URL" default:"https://my-future-backend.onrender.com"`
	RequestTimeoutSec uint   `envconfig:"REQUEST_TIMEOUT_SEC" default:"15"`

	// Session token storage. TokenPath defaults to
	// <user config dir>/myfuture/session when empty.
	TokenPath string `envconfig:"TOKEN_PATH"`

	// Token encryption keys (base64 encoded)
	// openssl rand -base64 32
	// to generate values
	TokenHashKey  string `envconfig:"TOKEN_HASH_KEY"`  // 32 or 64 bytes
	TokenBlockKey string `envconfig:"TOKEN_BLOCK_KEY"` // 16, 24, or 32 bytes

	// Mock API server
	MockPort        uint `envconfig:"MOCK_PORT" default:"8080"`
	ReadTimeoutSec  uint `envconfig:"READ_TIMEOUT_SEC" default:"10"`
	WriteTimeoutSec uint `envconfig:"WRITE_TIMEOUT_SEC" default:"15"`
}
