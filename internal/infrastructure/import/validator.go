package csvimport

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// FieldRule validates one column
type FieldRule struct {
	Column    string
	required  bool
	maxLength int
	pattern   *regexp.Regexp
	patternOf string
	unique    bool
}

// Field starts a rule for a column
func Field(column string) *FieldRule {
	return &FieldRule{Column: column}
}

// Required rejects rows with an empty value
func (f *FieldRule) Required() *FieldRule {
	f.required = true
	return f
}

// MaxLength limits the value length in characters
func (f *FieldRule) MaxLength(n int) *FieldRule {
	f.maxLength = n
	return f
}

// Pattern requires non-empty values to match expr; desc names the format
// in error messages
func (f *FieldRule) Pattern(expr, desc string) *FieldRule {
	f.pattern = regexp.MustCompile(expr)
	f.patternOf = desc
	return f
}

// Unique rejects a value repeated earlier in the file, ignoring case
func (f *FieldRule) Unique() *FieldRule {
	f.unique = true
	return f
}

// Validator applies rules row by row and remembers unique values seen
type Validator struct {
	rules []*FieldRule
	seen  map[string]map[string]int
}

// NewValidator creates a validator for the rules
func NewValidator(rules ...*FieldRule) *Validator {
	v := &Validator{rules: rules, seen: make(map[string]map[string]int)}
	for _, r := range rules {
		if r.unique {
			v.seen[r.Column] = make(map[string]int)
		}
	}
	return v
}

// Required lists the columns a file must have
func (v *Validator) Required() []string {
	var cols []string
	for _, r := range v.rules {
		if r.required {
			cols = append(cols, r.Column)
		}
	}
	return cols
}

// Validate returns the row's errors; an empty result means the row is valid
func (v *Validator) Validate(row *Row) []RowError {
	var errs []RowError
	for _, rule := range v.rules {
		value := row.Get(rule.Column)
		if value == "" {
			if rule.required {
				errs = append(errs, RowError{Row: row.Line, Column: rule.Column, Code: CodeRequired, Message: "value is required"})
			}
			continue
		}
		if rule.maxLength > 0 && utf8.RuneCountInString(value) > rule.maxLength {
			errs = append(errs, RowError{
				Row: row.Line, Column: rule.Column, Code: CodeTooLong,
				Message: fmt.Sprintf("must be at most %d characters", rule.maxLength),
			})
			continue
		}
		if rule.pattern != nil && !rule.pattern.MatchString(value) {
			errs = append(errs, RowError{
				Row: row.Line, Column: rule.Column, Code: CodeFormat,
				Message: "expected " + rule.patternOf, Value: value,
			})
			continue
		}
		if rule.unique {
			key := strings.ToLower(value)
			if first, dup := v.seen[rule.Column][key]; dup {
				errs = append(errs, RowError{
					Row: row.Line, Column: rule.Column, Code: CodeDuplicate,
					Message: fmt.Sprintf("duplicates row %d", first), Value: value,
				})
				continue
			}
			v.seen[rule.Column][key] = row.Line
		}
	}
	return errs
}
