package straal

import (
	"context"
	"net/http"
	"net/url"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/straal/straal-go/encryption"
)

const (
	// DefaultCryptKeyPath is appended to the backend base URL when the
	// configuration does not override it.
	DefaultCryptKeyPath = "/api/v1/cryptkeys"

	defaultAPIURL     = "https://api.straal.com"
	defaultAPIVersion = 1

	callbackHost        = "sdk.straal.com"
	callbackSuccessPath = "/x-callback-url/ios/success"
	callbackFailurePath = "/x-callback-url/ios/failure"
)

// HTTPClient sends HTTP requests. *http.Client satisfies it.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Encrypter combines crypt key material with the sensitive payload to
// produce the encrypted request body. The SDK core performs no cryptography
// itself.
type Encrypter interface {
	Encrypt(keyMaterial, payload []byte) ([]byte, error)
}

// LocaleProvider reports the user's language tag, e.g. "en_US".
type LocaleProvider interface {
	LanguageTag() string
}

// UserAgentProvider reports the browser metadata sent with the sensitive
// payload.
type UserAgentProvider interface {
	UserAgent() string
	JavaEnabled() bool
}

// ChallengePresenter displays a 3-D Secure challenge page out of process.
// Present must not block: it hands the challenge to the presenting context
// and returns, delivering the outcome later through exactly one of
// onVerdict or onDismiss. A non-nil error means presentation never started.
type ChallengePresenter interface {
	Present(ctx context.Context, urls ThreeDSURLs, onVerdict func(OperationStatus), onDismiss func()) error
}

// Configuration carries everything a Client needs: endpoints, headers and
// the collaborators the pipeline delegates to. Collaborator fields left nil
// are filled with defaults by NewConfiguration; tests may inject fakes.
type Configuration struct {
	// BackendBaseURL is the merchant backend that serves crypt keys.
	BackendBaseURL *url.URL
	// ReturnURLScheme is the app's callback URL scheme. It is lower-cased
	// when deriving the 3DS success and failure callback URLs.
	ReturnURLScheme string
	// Headers are added to every request to the merchant backend.
	Headers map[string]string
	// CryptKeyPath overrides DefaultCryptKeyPath when non-empty.
	CryptKeyPath string

	// APIBaseURL is the Straal API; overridable for tests.
	APIBaseURL *url.URL
	// APIVersion is sent in the x-straal-api-version header.
	APIVersion int

	HTTPClient HTTPClient
	Encrypter  Encrypter
	Locale     LocaleProvider
	UserAgent  UserAgentProvider
	Presenter  ChallengePresenter
	Registry   *OperationContextRegistry
}

// NewConfiguration builds a configuration with default collaborators.
func NewConfiguration(backendBaseURL *url.URL, returnURLScheme string) *Configuration {
	cfg := &Configuration{
		BackendBaseURL:  backendBaseURL,
		ReturnURLScheme: returnURLScheme,
	}
	cfg.fillDefaults()
	return cfg
}

func (c *Configuration) fillDefaults() {
	if c.CryptKeyPath == "" {
		c.CryptKeyPath = DefaultCryptKeyPath
	}
	if c.APIBaseURL == nil {
		c.APIBaseURL, _ = url.Parse(defaultAPIURL)
	}
	if c.APIVersion == 0 {
		c.APIVersion = defaultAPIVersion
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}
	if c.Encrypter == nil {
		c.Encrypter = encryption.NewAESGCM()
	}
	if c.Locale == nil {
		c.Locale = systemLocale{}
	}
	if c.UserAgent == nil {
		c.UserAgent = sdkUserAgent{}
	}
	if c.Registry == nil {
		c.Registry = NewOperationContextRegistry()
	}
}

// SuccessCallbackURL derives the 3DS success callback from the return-URL
// scheme, lower-cased.
func (c *Configuration) SuccessCallbackURL() *url.URL {
	return c.callbackURL(callbackSuccessPath)
}

// FailureCallbackURL derives the 3DS failure callback from the return-URL
// scheme, lower-cased.
func (c *Configuration) FailureCallbackURL() *url.URL {
	return c.callbackURL(callbackFailurePath)
}

func (c *Configuration) callbackURL(path string) *url.URL {
	return &url.URL{
		Scheme: strings.ToLower(c.ReturnURLScheme),
		Host:   callbackHost,
		Path:   path,
	}
}

// systemLocale reads the language tag from the environment, defaulting to
// en_US.
type systemLocale struct{}

func (systemLocale) LanguageTag() string {
	for _, key := range []string{"LC_ALL", "LANG"} {
		v := os.Getenv(key)
		if v == "" || v == "C" || v == "POSIX" {
			continue
		}
		if i := strings.IndexAny(v, ".@"); i >= 0 {
			v = v[:i]
		}
		if v != "" {
			return v
		}
	}
	return "en_US"
}

// sdkUserAgent identifies the SDK itself. A Go client has no Java runtime
// in the browser sense, so JavaEnabled reports false.
type sdkUserAgent struct{}

func (sdkUserAgent) UserAgent() string {
	return "straal-go/" + Version + " (" + runtime.GOOS + "; " + runtime.GOARCH + ")"
}

func (sdkUserAgent) JavaEnabled() bool { return false }
