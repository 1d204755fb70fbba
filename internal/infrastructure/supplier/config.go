package supplier

import (
	"errors"
	"net/url"
	"strings"
)

const (
	// ABCOrdersURL is the ABC Supply partner order endpoint
	ABCOrdersURL = "https://partners.abcsupply.com/api/order/v2/orders"
	// BeaconSubmitURL is the Beacon order submission path
	BeaconSubmitURL = "/submitOrder"
	// SRSSubmitURL is the SRS order submission path
	SRSSubmitURL = "/submitOrder"
	// DefaultSiteID identifies this integration to Beacon and SRS
	DefaultSiteID = "WEB"
)

// Errors for supplier configuration
var (
	ErrConfigMissingURL    = errors.New("supplier: url is required")
	ErrConfigInvalidURL    = errors.New("supplier: url is invalid")
	ErrConfigMissingSiteID = errors.New("supplier: site id is required")
)

// ABCConfig holds configuration for the ABC Supply compiler
type ABCConfig struct {
	URL string
}

// NewABCConfig creates an ABC configuration with defaults
func NewABCConfig() *ABCConfig {
	return &ABCConfig{URL: ABCOrdersURL}
}

// Validate validates the ABC configuration
func (c *ABCConfig) Validate() error {
	return validateURL(c.URL)
}

// BeaconConfig holds configuration for the Beacon compiler
type BeaconConfig struct {
	URL string
	// APISiteID is sent as apiSiteId on every order
	APISiteID string
}

// NewBeaconConfig creates a Beacon configuration with defaults
func NewBeaconConfig() *BeaconConfig {
	return &BeaconConfig{URL: BeaconSubmitURL, APISiteID: DefaultSiteID}
}

// Validate validates the Beacon configuration
func (c *BeaconConfig) Validate() error {
	if strings.TrimSpace(c.APISiteID) == "" {
		return ErrConfigMissingSiteID
	}
	return validateURL(c.URL)
}

// SRSConfig holds configuration for the SRS compiler
type SRSConfig struct {
	URL string
	// SourceSystem is sent as sourceSystem on every order
	SourceSystem string
}

// NewSRSConfig creates an SRS configuration with defaults
func NewSRSConfig() *SRSConfig {
	return &SRSConfig{URL: SRSSubmitURL, SourceSystem: DefaultSiteID}
}

// Validate validates the SRS configuration
func (c *SRSConfig) Validate() error {
	if strings.TrimSpace(c.SourceSystem) == "" {
		return ErrConfigMissingSiteID
	}
	return validateURL(c.URL)
}

// validateURL accepts absolute http(s) URLs and absolute paths; relative
// paths are resolved by the transport against the supplier's base URL.
func validateURL(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return ErrConfigMissingURL
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ErrConfigInvalidURL
	}
	if u.IsAbs() {
		if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return ErrConfigInvalidURL
		}
		return nil
	}
	if !strings.HasPrefix(u.Path, "/") {
		return ErrConfigInvalidURL
	}
	return nil
}
