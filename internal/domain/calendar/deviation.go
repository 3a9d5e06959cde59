package calendar

import (
	"fmt"
	"slices"
)

// RuleContext carries the values a deviation rule may test.
// Month deviations are evaluated against the year number; period deviations
// on a cycle are evaluated against the cycle number.
type RuleContext struct {
	// Year is the calendar year being laid out.
	Year int
	// Cycle is the cycle number, set only when evaluating cycle deviations.
	Cycle int
}

// Rule is the closed, serializable deviation predicate:
// "value mod Mod is in Remainders". Keeping the grammar closed (instead of
// accepting arbitrary functions) lets deviations round-trip through the
// calendar definition file.
type Rule struct {
	// Mod is the modulus the tested value is reduced by. Must be >= 1.
	Mod int `yaml:"mod"`
	// Remainders are the residues the rule fires on.
	Remainders []int `yaml:"remainders"`
}

// Matches evaluates the rule against the context. Cycle deviations test the
// cycle number, month deviations the year.
func (r Rule) Matches(ctx RuleContext) bool {
	value := ctx.Year
	if ctx.Cycle != 0 {
		value = ctx.Cycle
	}

	return slices.Contains(r.Remainders, value%r.Mod)
}

// validate checks the rule for internal consistency.
func (r Rule) validate() error {
	if r.Mod < 1 {
		return fmt.Errorf("%w: rule modulus must be positive, got %d", ErrConfig, r.Mod)
	}

	if len(r.Remainders) == 0 {
		return fmt.Errorf("%w: rule has no remainders", ErrConfig)
	}

	for _, rem := range r.Remainders {
		if rem < 0 || rem >= r.Mod {
			return fmt.Errorf("%w: remainder %d outside [0, %d)", ErrConfig, rem, r.Mod)
		}
	}

	return nil
}

// Deviation overrides the length of one named period (a month or a cycle
// period) whenever its rule matches. Deviations are evaluated in
// registration order and later matches overwrite earlier ones for the same
// target.
type Deviation struct {
	// Period names the month or cycle period whose length changes.
	Period string `yaml:"period"`
	// Days is the replacement length. Must be >= 1.
	Days int `yaml:"days"`
	// Rule decides which years (or cycles) the deviation applies to.
	Rule Rule `yaml:"rule"`
}

// validate checks the deviation against the names it may target.
func (d Deviation) validate(known []string) error {
	if !slices.Contains(known, d.Period) {
		return fmt.Errorf("%w: deviation targets unknown period %q", ErrConfig, d.Period)
	}

	if d.Days < 1 {
		return fmt.Errorf("%w: deviation length for %q must be positive, got %d", ErrConfig, d.Period, d.Days)
	}

	return d.Rule.validate()
}

// applyDeviations returns the effective period table for the context,
// copying base and overwriting lengths for every matching deviation in order.
func applyDeviations(base []Period, deviations []Deviation, ctx RuleContext) []Period {
	if len(deviations) == 0 {
		return base
	}

	effective := slices.Clone(base)

	for _, dev := range deviations {
		if !dev.Rule.Matches(ctx) {
			continue
		}

		for i := range effective {
			if effective[i].Name == dev.Period {
				effective[i].Days = dev.Days
			}
		}
	}

	return effective
}
