package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/erp/supplierorders/internal/domain/order"
	"github.com/erp/supplierorders/internal/infrastructure/supplier/abcvalidate"
)

//go:embed defaults/targets.yaml
var defaultTargetDocument []byte

// ErrUnknownSupplier is returned when the target document names a supplier
// no compiler exists for.
var ErrUnknownSupplier = errors.New("config: unknown supplier in target document")

// targetDocument is the on-disk shape of the per-target rules
type targetDocument struct {
	Suppliers map[string]order.TargetConfig `yaml:"suppliers" validate:"required,min=1"`
}

// Documents holds the decoded rule documents
type Documents struct {
	Targets       order.TargetCatalog
	ABCValidation *abcvalidate.Config
}

// LoadDocuments reads the rule documents named in cfg, falling back to the
// embedded defaults for empty paths.
func LoadDocuments(cfg DocumentsConfig) (*Documents, error) {
	targets, err := LoadTargetCatalog(cfg.TargetConfigPath)
	if err != nil {
		return nil, err
	}

	rules := abcvalidate.DefaultConfig()
	if cfg.ABCValidationPath != "" {
		rules, err = abcvalidate.LoadFile(cfg.ABCValidationPath)
		if err != nil {
			return nil, err
		}
	}

	return &Documents{Targets: targets, ABCValidation: rules}, nil
}

// LoadTargetCatalog reads the per-target document at path, or the embedded
// default when path is empty.
func LoadTargetCatalog(path string) (order.TargetCatalog, error) {
	data := defaultTargetDocument
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read target document %s: %w", path, err)
		}
	}
	return ParseTargetCatalog(data)
}

// ParseTargetCatalog decodes a target document. Supplier keys are matched
// case-insensitively.
func ParseTargetCatalog(data []byte) (order.TargetCatalog, error) {
	var doc targetDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse target document: %w", err)
	}
	if err := validator.New().Struct(doc); err != nil {
		return nil, fmt.Errorf("invalid target document: %w", err)
	}

	catalog := make(order.TargetCatalog, len(doc.Suppliers))
	for key, tc := range doc.Suppliers {
		target, ok := order.ParseTarget(key)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownSupplier, key)
		}
		catalog[target] = tc
	}
	return catalog, nil
}
