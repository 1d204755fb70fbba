package abcvalidate

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	// ISODateFormat is the only date format ABC accepts for deliveryRequestedFor
	ISODateFormat = "YYYY-MM-DD"
	// IDTypeInteger requires integer line ids
	IDTypeInteger = "integer"
	// IDTypeAny leaves line ids untouched
	IDTypeAny = "any"

	defaultPOMaxLength = 20
)

//go:embed abc_validation.yaml
var defaultDocument []byte

// DefaultDocument returns the embedded rules document
func DefaultDocument() []byte {
	return append([]byte(nil), defaultDocument...)
}

// ErrDefaultContactMismatch is returned when the default contact would not
// satisfy the preferred function code it is meant to supply.
var ErrDefaultContactMismatch = errors.New("abcvalidate: default contact functionCode does not match preferredFunctionCode")

// Config holds the finishing rules applied to ABC payloads
type Config struct {
	PurchaseOrder PurchaseOrderRules `yaml:"purchaseOrder" json:"purchaseOrder"`
	Dates         DateRules          `yaml:"dates" json:"dates"`
	Lines         LineRules          `yaml:"lines" json:"lines"`
	ShipTo        ShipToRules        `yaml:"shipTo" json:"shipTo"`
	Contacts      ContactRules       `yaml:"contacts" json:"contacts"`
}

// PurchaseOrderRules controls purchaseOrder repair
type PurchaseOrderRules struct {
	Required         bool   `yaml:"required" json:"required"`
	MaxLength        int    `yaml:"maxLength" json:"maxLength" validate:"gte=0"`
	DefaultPrefix    string `yaml:"defaultPrefix" json:"defaultPrefix"`
	FallbackSequence string `yaml:"fallbackSequence" json:"fallbackSequence"`
}

// DateRules groups the date field rules
type DateRules struct {
	DeliveryRequestedFor DateRule `yaml:"deliveryRequestedFor" json:"deliveryRequestedFor"`
}

// DateRule controls one date field
type DateRule struct {
	Format                string `yaml:"format" json:"format" validate:"omitempty,eq=YYYY-MM-DD"`
	FallbackDaysFromToday int    `yaml:"fallbackDaysFromToday" json:"fallbackDaysFromToday"`
}

// LineRules controls line repair
type LineRules struct {
	IDType   string `yaml:"idType" json:"idType" validate:"omitempty,oneof=integer any"`
	MaxCount int    `yaml:"maxCount" json:"maxCount" validate:"gte=0"`
}

// ShipToRules controls ship-to repair
type ShipToRules struct {
	OmitEmptyAddress bool `yaml:"omitEmptyAddress" json:"omitEmptyAddress"`
}

// ContactRules controls the contact list repair
type ContactRules struct {
	PreferredFunctionCode string         `yaml:"preferredFunctionCode" json:"preferredFunctionCode"`
	Default               map[string]any `yaml:"default" json:"default"`
}

// DefaultConfig returns the rules from the embedded document
func DefaultConfig() *Config {
	cfg, err := Parse(defaultDocument)
	if err != nil {
		panic(fmt.Sprintf("abcvalidate: embedded rules invalid: %v", err))
	}
	return cfg
}

// LoadFile loads and parses a rules document from path. JSON documents are
// accepted since JSON is a subset of YAML.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read abc validation rules %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a rules document
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse abc validation rules: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(cfg *Config) {
	if cfg.PurchaseOrder.MaxLength <= 0 {
		cfg.PurchaseOrder.MaxLength = defaultPOMaxLength
	}
	cfg.PurchaseOrder.DefaultPrefix = strings.TrimSpace(cfg.PurchaseOrder.DefaultPrefix)
	cfg.PurchaseOrder.FallbackSequence = strings.TrimSpace(cfg.PurchaseOrder.FallbackSequence)
	if cfg.Dates.DeliveryRequestedFor.Format == "" {
		cfg.Dates.DeliveryRequestedFor.Format = ISODateFormat
	}
	if cfg.Lines.IDType == "" {
		cfg.Lines.IDType = IDTypeInteger
	}
	cfg.Contacts.PreferredFunctionCode = strings.ToUpper(strings.TrimSpace(cfg.Contacts.PreferredFunctionCode))
	if len(cfg.Contacts.Default) == 0 {
		cfg.Contacts.Default = nil
	}
}

// Validate checks the rules for consistency
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid abc validation rules: %w", err)
	}

	// A default contact that does not carry the preferred code would be
	// appended again on every pass.
	if c.Contacts.Default != nil && c.Contacts.PreferredFunctionCode != "" {
		code, _ := c.Contacts.Default["functionCode"].(string)
		if strings.ToUpper(strings.TrimSpace(code)) != c.Contacts.PreferredFunctionCode {
			return ErrDefaultContactMismatch
		}
	}
	return nil
}
