// Package locale holds the culture settings the codecs consult: decimal
// separator, sign tokens and the rule for moving numbers into text fields.
//
// A Config is an immutable value. Every codec entry point takes one
// explicitly, so two goroutines may format with different cultures at once.
package locale

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/kansasdcf/legacyrec/errs"
	"github.com/kansasdcf/legacyrec/format"
	"github.com/kansasdcf/legacyrec/internal/options"
)

// Config is the culture used when numbers cross between text and storage.
type Config struct {
	decimalSeparator string
	groupSeparator   string
	positiveSign     string
	negativeSign     string
	moveRule         format.MoveRule
}

// Option configures a Config under construction.
type Option = options.Option[*Config]

// Default returns the invariant culture with the COBOL move rule.
func Default() Config {
	return Config{
		decimalSeparator: ".",
		groupSeparator:   ",",
		positiveSign:     "+",
		negativeSign:     "-",
		moveRule:         format.MoveCOBOL,
	}
}

// New returns Default with opts applied and validated.
func New(opts ...Option) (Config, error) {
	cfg := Default()
	if err := options.Apply(&cfg, opts...); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// WithDecimalSeparator sets the string between integer and fraction digits.
func WithDecimalSeparator(sep string) Option {
	return options.NoError(func(c *Config) { c.decimalSeparator = sep })
}

// WithGroupSeparator sets the thousands separator stripped from parsed text.
func WithGroupSeparator(sep string) Option {
	return options.NoError(func(c *Config) { c.groupSeparator = sep })
}

// WithSigns sets the positive and negative sign tokens.
func WithSigns(positive, negative string) Option {
	return options.NoError(func(c *Config) {
		c.positiveSign = positive
		c.negativeSign = negative
	})
}

// WithMoveRule selects how numbers are moved into text fields.
func WithMoveRule(rule format.MoveRule) Option {
	return func(c *Config) error {
		switch rule {
		case format.MoveCOBOL, format.MoveADSO:
			c.moveRule = rule
			return nil
		default:
			return fmt.Errorf("%w: move rule %d", errs.ErrInvalidConfig, rule)
		}
	}
}

func (c Config) DecimalSeparator() string  { return c.decimalSeparator }
func (c Config) GroupSeparator() string    { return c.groupSeparator }
func (c Config) PositiveSign() string      { return c.positiveSign }
func (c Config) NegativeSign() string      { return c.negativeSign }
func (c Config) MoveRule() format.MoveRule { return c.moveRule }

// Validate checks the tokens can be told apart from each other and from digits.
func (c Config) Validate() error {
	tokens := map[string]string{
		"decimal separator": c.decimalSeparator,
		"positive sign":     c.positiveSign,
		"negative sign":     c.negativeSign,
	}
	for name, tok := range tokens {
		if tok == "" {
			return fmt.Errorf("%w: empty %s", errs.ErrInvalidConfig, name)
		}
		if strings.ContainsAny(tok, "0123456789") {
			return fmt.Errorf("%w: %s %q contains digits", errs.ErrInvalidConfig, name, tok)
		}
	}
	if c.positiveSign == c.negativeSign {
		return fmt.Errorf("%w: sign tokens must differ", errs.ErrInvalidConfig)
	}
	if c.decimalSeparator == c.negativeSign || c.decimalSeparator == c.positiveSign {
		return fmt.Errorf("%w: decimal separator collides with a sign token", errs.ErrInvalidConfig)
	}
	if c.groupSeparator != "" && c.groupSeparator == c.decimalSeparator {
		return fmt.Errorf("%w: group and decimal separators must differ", errs.ErrInvalidConfig)
	}
	if c.moveRule != format.MoveCOBOL && c.moveRule != format.MoveADSO {
		return fmt.Errorf("%w: move rule %d", errs.ErrInvalidConfig, c.moveRule)
	}

	return nil
}

type fileConfig struct {
	DecimalSeparator string `toml:"decimal_separator"`
	GroupSeparator   string `toml:"group_separator"`
	PositiveSign     string `toml:"positive_sign"`
	NegativeSign     string `toml:"negative_sign"`
	MoveRule         string `toml:"move_rule"`
}

// Load reads a TOML culture file; keys that are absent keep their defaults.
//
//	decimal_separator = ","
//	group_separator   = "."
//	move_rule         = "adso"
func Load(path string) (Config, error) {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load locale config: %w", err)
	}

	return fromFile(raw, meta)
}

// Parse is Load for in-memory TOML.
func Parse(data string) (Config, error) {
	var raw fileConfig
	meta, err := toml.Decode(data, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("parse locale config: %w", err)
	}

	return fromFile(raw, meta)
}

func fromFile(raw fileConfig, meta toml.MetaData) (Config, error) {
	var opts []Option
	if meta.IsDefined("decimal_separator") {
		opts = append(opts, WithDecimalSeparator(raw.DecimalSeparator))
	}
	if meta.IsDefined("group_separator") {
		opts = append(opts, WithGroupSeparator(raw.GroupSeparator))
	}
	if meta.IsDefined("positive_sign") || meta.IsDefined("negative_sign") {
		def := Default()
		pos, neg := def.positiveSign, def.negativeSign
		if meta.IsDefined("positive_sign") {
			pos = raw.PositiveSign
		}
		if meta.IsDefined("negative_sign") {
			neg = raw.NegativeSign
		}
		opts = append(opts, WithSigns(pos, neg))
	}
	if meta.IsDefined("move_rule") {
		rule, err := ParseMoveRule(raw.MoveRule)
		if err != nil {
			return Config{}, err
		}
		opts = append(opts, WithMoveRule(rule))
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%w: unknown key %q", errs.ErrInvalidConfig, undecoded[0].String())
	}

	return New(opts...)
}

// ParseMoveRule accepts "cobol" or "adso" in any case.
func ParseMoveRule(raw string) (format.MoveRule, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "cobol":
		return format.MoveCOBOL, nil
	case "adso":
		return format.MoveADSO, nil
	default:
		return 0, fmt.Errorf("%w: move rule %q", errs.ErrInvalidConfig, raw)
	}
}
