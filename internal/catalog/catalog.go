// Package catalog loads the vehicle categories and contract types a contract
// can be opened under, with their lending defaults.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v2"

	"pawnshop-backoffice/pkg/qrcode"
)

//go:embed default.yaml
var defaultYAML []byte

type Category struct {
	Code string `yaml:"code" json:"code"`
	Name string `yaml:"name" json:"name"`
	// percent of appraised value
	DefaultLoanRatio float64 `yaml:"default_loan_ratio" json:"default_loan_ratio"`
}

func (c Category) LoanRatio() decimal.Decimal { return decimal.NewFromFloat(c.DefaultLoanRatio) }

type ContractType struct {
	Code                string  `yaml:"code" json:"code"`
	Name                string  `yaml:"name" json:"name"`
	DefaultDurationDays int     `yaml:"default_duration_days" json:"default_duration_days"`
	DefaultInterestRate float64 `yaml:"default_interest_rate" json:"default_interest_rate"`
}

func (t ContractType) InterestRate() decimal.Decimal {
	return decimal.NewFromFloat(t.DefaultInterestRate)
}

type Catalog struct {
	Categories []Category     `yaml:"vehicle_categories" json:"vehicle_categories"`
	Types      []ContractType `yaml:"contract_types" json:"contract_types"`

	categories map[string]Category
	types      map[string]ContractType
}

// Load reads a catalog file; an empty path selects the built-in catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Parse(defaultYAML)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("unable to parse %s: %w", path, err)
	}
	return c, nil
}

func Default() *Catalog {
	c, err := Parse(defaultYAML)
	if err != nil {
		panic(err)
	}
	return c
}

func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	if len(c.Categories) == 0 || len(c.Types) == 0 {
		return nil, fmt.Errorf("catalog needs at least one vehicle category and one contract type")
	}

	c.categories = make(map[string]Category, len(c.Categories))
	for i, cat := range c.Categories {
		cat.Code = strings.ToUpper(strings.TrimSpace(cat.Code))
		if !qrcode.ValidCategory(cat.Code) {
			return nil, fmt.Errorf("vehicle category at index %d: invalid code %q", i, cat.Code)
		}
		if cat.DefaultLoanRatio < 0 || cat.DefaultLoanRatio > 100 {
			return nil, fmt.Errorf("vehicle category %s: default_loan_ratio must be within 0..100", cat.Code)
		}
		if _, dup := c.categories[cat.Code]; dup {
			return nil, fmt.Errorf("vehicle category %s listed twice", cat.Code)
		}
		c.Categories[i] = cat
		c.categories[cat.Code] = cat
	}

	c.types = make(map[string]ContractType, len(c.Types))
	for i, t := range c.Types {
		t.Code = strings.ToUpper(strings.TrimSpace(t.Code))
		if !qrcode.ValidType(t.Code) {
			return nil, fmt.Errorf("contract type at index %d: invalid code %q", i, t.Code)
		}
		if t.DefaultDurationDays <= 0 {
			return nil, fmt.Errorf("contract type %s: default_duration_days must be positive", t.Code)
		}
		if t.DefaultInterestRate < 0 {
			return nil, fmt.Errorf("contract type %s: default_interest_rate must not be negative", t.Code)
		}
		if _, dup := c.types[t.Code]; dup {
			return nil, fmt.Errorf("contract type %s listed twice", t.Code)
		}
		c.Types[i] = t
		c.types[t.Code] = t
	}
	return &c, nil
}

func (c *Catalog) Category(code string) (Category, bool) {
	cat, ok := c.categories[strings.ToUpper(strings.TrimSpace(code))]
	return cat, ok
}

func (c *Catalog) Type(code string) (ContractType, bool) {
	t, ok := c.types[strings.ToUpper(strings.TrimSpace(code))]
	return t, ok
}
