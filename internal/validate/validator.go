// Package validate checks candidate player records against the roster invariants.
// Every rule runs on every record so callers get the full list of problems at once.
package validate

import (
	"strconv"
	"strings"

	"github.com/snankens/player-data-service/internal/domain/players"
	"github.com/snankens/player-data-service/internal/timeutil"
)

// Violation describes one failed rule for one field.
type Violation struct {
	Rule    string `json:"rule"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v Violation) String() string { return v.Message }

// Rule is a named, independently testable invariant check.
type Rule struct {
	Name  string
	Check func(p players.Player) []Violation
}

// Rule names.
const (
	RuleRequired         = "required"
	RuleDeathAfterBirth  = "death_after_birth"
	RuleDebutBeforeFinal = "debut_before_final_game"
	RuleHandedness       = "handedness"
	RulePositive         = "positive"
	RuleCalendarRange    = "calendar_range"
)

// Rules is evaluated in order by Validate.
var Rules = []Rule{
	{Name: RuleRequired, Check: checkRequired},
	{Name: RuleDeathAfterBirth, Check: checkDeathAfterBirth},
	{Name: RuleDebutBeforeFinal, Check: checkDebutBeforeFinal},
	{Name: RuleHandedness, Check: checkHandedness},
	{Name: RulePositive, Check: checkPositive},
	{Name: RuleCalendarRange, Check: checkCalendarRanges},
}

// Validate returns every violation found in p, in rule order. An empty result means p is valid.
func Validate(p players.Player) []Violation {
	var out []Violation
	for _, rule := range Rules {
		out = append(out, rule.Check(p)...)
	}
	return out
}

// Join renders violation messages as a single comma separated line.
func Join(violations []Violation) string {
	msgs := make([]string, 0, len(violations))
	for _, v := range violations {
		msgs = append(msgs, v.Message)
	}
	return strings.Join(msgs, ", ")
}

func checkRequired(p players.Player) []Violation {
	var out []Violation
	if p.ID == "" {
		out = append(out, Violation{Rule: RuleRequired, Field: "playerId", Message: "ID is required"})
	}
	if p.FirstName == "" {
		out = append(out, Violation{Rule: RuleRequired, Field: "firstName", Message: "First name is required"})
	}
	if p.LastName == "" {
		out = append(out, Violation{Rule: RuleRequired, Field: "lastName", Message: "Last name is required"})
	}
	return out
}

// checkDeathAfterBirth composes both dates, substituting 1 for an absent death
// month or day. Birth month and day are always present (empty source text is 0),
// so a 0 there yields an impossible date and fails the rule.
func checkDeathAfterBirth(p players.Player) []Violation {
	if p.DeathYear == nil {
		return nil
	}
	fail := []Violation{{
		Rule:    RuleDeathAfterBirth,
		Field:   "deathYear",
		Message: "Death date must be after birth date if both are provided",
	}}

	birth, ok := timeutil.CivilDate(p.BirthYear, p.BirthMonth, p.BirthDay)
	if !ok {
		return fail
	}
	death, ok := timeutil.CivilDate(*p.DeathYear, valueOr(p.DeathMonth, 1), valueOr(p.DeathDay, 1))
	if !ok {
		return fail
	}
	if !death.After(birth) {
		return fail
	}
	return nil
}

func checkDebutBeforeFinal(p players.Player) []Violation {
	if p.Debut == nil || p.FinalGame == nil {
		return nil
	}
	if p.Debut.After(*p.FinalGame) {
		return []Violation{{
			Rule:    RuleDebutBeforeFinal,
			Field:   "debut",
			Message: "Debut date must be before or on the same day as the final game date",
		}}
	}
	return nil
}

func checkHandedness(p players.Player) []Violation {
	var out []Violation
	if !isHand(p.Bats) {
		out = append(out, Violation{Rule: RuleHandedness, Field: "bats", Message: "Bats must be 'L' (left) or 'R' (right)"})
	}
	if !isHand(p.ThrowingHand) {
		out = append(out, Violation{Rule: RuleHandedness, Field: "throwingHand", Message: "Throwing hand must be 'L' (left) or 'R' (right)"})
	}
	return out
}

// isHand accepts an empty value as "not provided".
func isHand(v string) bool {
	return v == "" || v == "L" || v == "R"
}

func checkPositive(p players.Player) []Violation {
	var out []Violation
	positive := func(field, label string, v *int) {
		if v != nil && *v <= 0 {
			out = append(out, Violation{Rule: RulePositive, Field: field, Message: label + " must be a positive number"})
		}
	}
	positive("birthYear", "Birth year", &p.BirthYear)
	positive("deathYear", "Death year", p.DeathYear)
	positive("weight", "Weight", p.Weight)
	positive("height", "Height", p.Height)
	return out
}

func checkCalendarRanges(p players.Player) []Violation {
	var out []Violation
	between := func(field, label string, v *int, lo, hi int) {
		if v == nil {
			return
		}
		switch {
		case *v < lo:
			out = append(out, Violation{Rule: RuleCalendarRange, Field: field, Message: label + " must be at least " + strconv.Itoa(lo)})
		case *v > hi:
			out = append(out, Violation{Rule: RuleCalendarRange, Field: field, Message: label + " must be at most " + strconv.Itoa(hi)})
		}
	}
	between("birthMonth", "Birth month", &p.BirthMonth, 1, 12)
	between("birthDay", "Birth day", &p.BirthDay, 1, 31)
	between("deathMonth", "Death month", p.DeathMonth, 1, 12)
	between("deathDay", "Death day", p.DeathDay, 1, 31)
	return out
}

func valueOr(v *int, fallback int) int {
	if v == nil {
		return fallback
	}
	return *v
}
