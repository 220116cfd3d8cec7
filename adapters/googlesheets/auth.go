package googlesheets

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// ServiceAccountKey holds the fields of a service account JSON key we rely on
type ServiceAccountKey struct {
	Type         string `json:"type"`
	ProjectID    string `json:"project_id"`
	PrivateKeyID string `json:"private_key_id"`
	PrivateKey   string `json:"private_key"`
	ClientEmail  string `json:"client_email"`
	ClientID     string `json:"client_id"`
	TokenURI     string `json:"token_uri"`
}

// NewWithJSONKeyFile creates a Publisher authenticated by a JSON key file.
// An empty path falls back to GOOGLE_APPLICATION_CREDENTIALS. Extra options
// are passed on to the Sheets client.
func NewWithJSONKeyFile(ctx context.Context, config Config, jsonPath string, opts ...option.ClientOption) (*Publisher, error) {
	if jsonPath == "" {
		jsonPath = os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
		if jsonPath == "" {
			return nil, fmt.Errorf("no JSON key file path provided and GOOGLE_APPLICATION_CREDENTIALS not set")
		}
	}

	jsonData, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read JSON key file: %w", err)
	}
	return NewWithJSONKeyData(ctx, config, jsonData, opts...)
}

// NewWithJSONKeyData creates a Publisher authenticated by JSON key data
func NewWithJSONKeyData(ctx context.Context, config Config, jsonData []byte, opts ...option.ClientOption) (*Publisher, error) {
	ts, err := tokenSourceFromJSON(ctx, jsonData)
	if err != nil {
		return nil, err
	}
	return newWithTokenSource(ctx, config, ts, opts)
}

// NewWithServiceAccountKey creates a Publisher from a service account email and private key
func NewWithServiceAccountKey(ctx context.Context, config Config, email, privateKey string, opts ...option.ClientOption) (*Publisher, error) {
	ts := tokenSourceFromKey(ctx, &ServiceAccountKey{ClientEmail: email, PrivateKey: privateKey})
	return newWithTokenSource(ctx, config, ts, opts)
}

// NewWithDefaultCredentials creates a Publisher using Application Default Credentials
func NewWithDefaultCredentials(ctx context.Context, config Config, opts ...option.ClientOption) (*Publisher, error) {
	ts, err := google.DefaultTokenSource(ctx, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("failed to get default token source: %w", err)
	}
	return newWithTokenSource(ctx, config, ts, opts)
}

func newWithTokenSource(ctx context.Context, config Config, ts oauth2.TokenSource, opts []option.ClientOption) (*Publisher, error) {
	return NewPublisher(ctx, config, append([]option.ClientOption{option.WithTokenSource(ts)}, opts...)...)
}

// ParseServiceAccountJSON parses and checks a service account key
func ParseServiceAccountJSON(jsonData []byte) (*ServiceAccountKey, error) {
	var key ServiceAccountKey
	if err := json.Unmarshal(jsonData, &key); err != nil {
		return nil, fmt.Errorf("failed to parse service account JSON: %w", err)
	}

	if key.Type != "service_account" {
		return nil, fmt.Errorf("invalid key type: %s (expected: service_account)", key.Type)
	}

	if key.ClientEmail == "" || key.PrivateKey == "" {
		return nil, fmt.Errorf("missing required fields in service account key")
	}

	return &key, nil
}

// CreateTokenSource creates an oauth2.TokenSource from a key file path,
// raw JSON key data or a parsed key
func CreateTokenSource(ctx context.Context, credentials interface{}) (oauth2.TokenSource, error) {
	switch cred := credentials.(type) {
	case string:
		jsonData, err := os.ReadFile(cred)
		if err != nil {
			return nil, fmt.Errorf("failed to read credentials file: %w", err)
		}
		return tokenSourceFromJSON(ctx, jsonData)
	case []byte:
		return tokenSourceFromJSON(ctx, cred)
	case *ServiceAccountKey:
		return tokenSourceFromKey(ctx, cred), nil
	default:
		return nil, fmt.Errorf("unsupported credential type: %T", credentials)
	}
}

func tokenSourceFromJSON(ctx context.Context, jsonData []byte) (oauth2.TokenSource, error) {
	creds, err := google.CredentialsFromJSON(ctx, jsonData, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse credentials: %w", err)
	}
	return creds.TokenSource, nil
}

func tokenSourceFromKey(ctx context.Context, key *ServiceAccountKey) oauth2.TokenSource {
	return jwtConfig(key).TokenSource(ctx)
}

// jwtConfig builds the two-legged JWT flow for key, using Google's token
// endpoint unless the key names its own
func jwtConfig(key *ServiceAccountKey) *jwt.Config {
	tokenURL := key.TokenURI
	if tokenURL == "" {
		tokenURL = google.JWTTokenURL
	}
	return &jwt.Config{
		Email:        key.ClientEmail,
		PrivateKey:   []byte(key.PrivateKey),
		PrivateKeyID: key.PrivateKeyID,
		Scopes:       []string{sheets.SpreadsheetsScope},
		TokenURL:     tokenURL,
	}
}
