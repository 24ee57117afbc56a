package flow

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"homologacion_motos/internal/domain/catalog"
	"homologacion_motos/internal/domain/entities"
)

// Strategy is how the next field request should be shaped.
type Strategy string

const (
	StrategySequential Strategy = "sequential"
	StrategyBatch      Strategy = "batch"
	StrategyHybrid     Strategy = "hybrid"
)

// FieldPlan partitions a field schema against the values stored so far.
//
// Ready fields are applicable (condition absent or met) and still unanswered;
// Blocked fields wait for their controlling value. AskNow is the subset to
// request next under the chosen strategy.
type FieldPlan struct {
	Strategy Strategy
	AskNow   []entities.RequiredField
	Ready    []entities.RequiredField
	Blocked  []entities.RequiredField
}

// PlanFields decides how to ask for the remaining fields of a schema.
//
// Strategy: one at a time while two or fewer fields are ready; everything in
// one request when three or more are ready and the schema has no conditional
// fields; otherwise hybrid, which asks the unconditional fields first and
// re-evaluates once their answers unlock the rest.
func PlanFields(fields []entities.RequiredField, values map[string]string) FieldPlan {
	var plan FieldPlan
	conditionalInSchema := false
	for _, f := range fields {
		if f.Condition != nil {
			conditionalInSchema = true
		}
		if values[f.Key] != "" {
			continue
		}
		if conditionMet(f, values) {
			plan.Ready = append(plan.Ready, f)
		} else {
			plan.Blocked = append(plan.Blocked, f)
		}
	}

	switch {
	case len(plan.Ready) <= 2:
		plan.Strategy = StrategySequential
		if len(plan.Ready) > 0 {
			plan.AskNow = plan.Ready[:1]
		}
	case !conditionalInSchema:
		plan.Strategy = StrategyBatch
		plan.AskNow = plan.Ready
	default:
		plan.Strategy = StrategyHybrid
		for _, f := range plan.Ready {
			if f.Condition == nil {
				plan.AskNow = append(plan.AskNow, f)
			}
		}
		if len(plan.AskNow) == 0 {
			plan.AskNow = plan.Ready
		}
	}
	return plan
}

// Complete reports whether every applicable field holds a value.
func Complete(fields []entities.RequiredField, values map[string]string) bool {
	return len(Missing(fields, values)) == 0
}

// Missing lists the applicable field keys still without a value.
func Missing(fields []entities.RequiredField, values map[string]string) []string {
	var missing []string
	for _, f := range fields {
		if conditionMet(f, values) && values[f.Key] == "" {
			missing = append(missing, f.Key)
		}
	}
	return missing
}

func conditionMet(f entities.RequiredField, values map[string]string) bool {
	if f.Condition == nil {
		return true
	}
	return catalog.Fold(values[f.Condition.FieldKey]) == catalog.Fold(f.Condition.Equals)
}

// FieldOutcome is the per-key result of a save call.
type FieldOutcome string

const (
	FieldSaved        FieldOutcome = "saved"
	FieldAlreadySaved FieldOutcome = "already_saved"
	FieldUnknown      FieldOutcome = "unknown"
	FieldInvalid      FieldOutcome = "invalid"
)

// FieldResult reports one incoming key's outcome; keys are judged
// independently, so a bad key never blocks the rest of the call.
type FieldResult struct {
	Key     string       `json:"key"`
	Outcome FieldOutcome `json:"outcome"`
	Detail  string       `json:"detail,omitempty"`
}

// ApplyFields merges incoming values into a copy of the stored ones.
//
// Incoming keys are normalized (case and accent folded, tokens joined) before
// lookup against the schema. Unknown keys are rejected with the valid key
// list; known keys are validated by type and written unless the stored value
// already matches. Returns per-key results, the updated value map and whether
// anything changed.
func ApplyFields(fields []entities.RequiredField, stored, incoming map[string]string) ([]FieldResult, map[string]string, bool) {
	byNormKey := make(map[string]entities.RequiredField, len(fields))
	for _, f := range fields {
		byNormKey[catalog.NormalizeKey(f.Key)] = f
	}

	updated := make(map[string]string, len(stored)+len(incoming))
	for k, v := range stored {
		updated[k] = v
	}

	keys := make([]string, 0, len(incoming))
	for k := range incoming {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var results []FieldResult
	changed := false
	for _, rawKey := range keys {
		f, ok := byNormKey[catalog.NormalizeKey(rawKey)]
		if !ok {
			results = append(results, FieldResult{
				Key:     rawKey,
				Outcome: FieldUnknown,
				Detail:  "valid keys: " + strings.Join(ValidKeys(fields), ", "),
			})
			continue
		}

		value, detail := validateValue(f, incoming[rawKey])
		if detail != "" {
			results = append(results, FieldResult{Key: f.Key, Outcome: FieldInvalid, Detail: detail})
			continue
		}
		if updated[f.Key] == value {
			results = append(results, FieldResult{Key: f.Key, Outcome: FieldAlreadySaved})
			continue
		}
		updated[f.Key] = value
		changed = true
		results = append(results, FieldResult{Key: f.Key, Outcome: FieldSaved})
	}
	return results, updated, changed
}

// ValidKeys lists a schema's field keys in definition order.
func ValidKeys(fields []entities.RequiredField) []string {
	keys := make([]string, 0, len(fields))
	for _, f := range fields {
		keys = append(keys, f.Key)
	}
	return keys
}

var dateLayouts = []string{"2/1/2006", "2006-01-02"}

// validateValue checks a raw value against the field type and returns the
// canonical value to store, or a non-empty reject reason.
func validateValue(f entities.RequiredField, raw string) (string, string) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", "empty value"
	}

	switch f.Type {
	case entities.FieldTypeNumber:
		normalized := strings.ReplaceAll(value, ",", ".")
		if _, err := strconv.ParseFloat(normalized, 64); err != nil {
			return "", fmt.Sprintf("%q is not a number", value)
		}
		return normalized, ""
	case entities.FieldTypeDate:
		for _, layout := range dateLayouts {
			if _, err := time.Parse(layout, value); err == nil {
				return value, ""
			}
		}
		return "", fmt.Sprintf("%q is not a date (use DD/MM/YYYY)", value)
	case entities.FieldTypeChoice:
		folded := catalog.Fold(value)
		for _, opt := range f.Options {
			if catalog.Fold(opt) == folded {
				return opt, ""
			}
		}
		return "", "must be one of: " + strings.Join(f.Options, ", ")
	default:
		return value, ""
	}
}
