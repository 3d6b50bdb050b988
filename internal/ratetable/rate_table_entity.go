package ratetable

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	RateTypePAYE = "PAYE"
	RateTypeNSSF = "NSSF"
	RateTypeNHIF = "NHIF"
)

// Config kinds. The config column is a closed tagged variant instead of
// free-form JSON: it is validated when written and when scanned, never
// interpreted ad hoc at calculation time.
const (
	KindBracket = "bracket"
	KindFlat    = "flat"
	KindBanded  = "banded"
)

// Bracket is one graduated tax band. UpTo 0 means open-ended (top bracket).
// Bounds are minor units, rates basis points.
type Bracket struct {
	From    int64 `json:"from"`
	UpTo    int64 `json:"up_to"`
	RateBps int64 `json:"rate_bps"`
}

// Band maps a pay range to a flat contribution amount
type Band struct {
	From   int64 `json:"from"`
	UpTo   int64 `json:"up_to"`
	Amount int64 `json:"amount"`
}

type RateConfig struct {
	Kind string `json:"kind"`

	// bracket
	Brackets     []Bracket `json:"brackets,omitempty"`
	ReliefAmount int64     `json:"relief_amount,omitempty"`

	// flat
	RateBps int64 `json:"rate_bps,omitempty"`
	Cap     int64 `json:"cap,omitempty"`

	// banded
	Bands []Band `json:"bands,omitempty"`
}

func (c RateConfig) Validate() error {
	switch c.Kind {
	case KindBracket:
		if len(c.Brackets) == 0 {
			return errors.New("bracket config requires at least one bracket")
		}
		for i, b := range c.Brackets {
			if b.RateBps < 0 {
				return fmt.Errorf("bracket %d: negative rate", i)
			}
			if b.UpTo != 0 && b.UpTo <= b.From {
				return fmt.Errorf("bracket %d: up_to must exceed from", i)
			}
			if i > 0 && b.From != c.Brackets[i-1].UpTo {
				return fmt.Errorf("bracket %d: must start where bracket %d ends", i, i-1)
			}
		}
		if c.Brackets[len(c.Brackets)-1].UpTo != 0 {
			return errors.New("bracket config: last bracket must be open-ended")
		}
	case KindFlat:
		if c.RateBps <= 0 {
			return errors.New("flat config requires a positive rate")
		}
		if c.Cap < 0 {
			return errors.New("flat config: negative cap")
		}
	case KindBanded:
		if len(c.Bands) == 0 {
			return errors.New("banded config requires at least one band")
		}
		for i, b := range c.Bands {
			if b.Amount < 0 {
				return fmt.Errorf("band %d: negative amount", i)
			}
			if b.UpTo != 0 && b.UpTo <= b.From {
				return fmt.Errorf("band %d: up_to must exceed from", i)
			}
		}
	default:
		return fmt.Errorf("unknown rate config kind: %q", c.Kind)
	}
	return nil
}

// Value implements driver.Valuer so gorm stores the config as jsonb
func (c RateConfig) Value() (driver.Value, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(c)
}

// Scan implements sql.Scanner; malformed rows fail here, not mid-calculation
func (c *RateConfig) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported rate config source type %T", src)
	}
	if err := json.Unmarshal(data, c); err != nil {
		return err
	}
	return c.Validate()
}

// RateTable is a time-versioned statutory configuration. EffectiveTo nil
// means currently active.
type RateTable struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Country       string     `gorm:"type:varchar(2);not null;index:idx_rate_country_type"`
	RateType      string     `gorm:"type:varchar(20);not null;index:idx_rate_country_type"`
	EffectiveFrom time.Time  `gorm:"type:date;not null;index"`
	EffectiveTo   *time.Time `gorm:"type:date"`
	Config        RateConfig `gorm:"type:jsonb;not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (RateTable) TableName() string {
	return "statutory_rate_tables"
}

// Covers reports whether the table is effective on the given date
func (t RateTable) Covers(on time.Time) bool {
	if on.Before(t.EffectiveFrom) {
		return false
	}
	return t.EffectiveTo == nil || !on.After(*t.EffectiveTo)
}
