package clinic

import (
	"fmt"
)

// CheckKind says how a check's single integer result is judged.
type CheckKind int

const (
	// CheckZero passes when the query returns exactly zero.
	CheckZero CheckKind = iota
	// CheckMin passes when the query returns at least Min.
	CheckMin
)

// Check is one data quality assertion. Its SQL always projects a single
// integer so the runner stays trivial.
type Check struct {
	Name        string
	Description string
	SQL         string
	Kind        CheckKind
	Min         int
}

// Evaluate judges a check result.
func (c Check) Evaluate(value int) bool {
	if c.Kind == CheckZero {
		return value == 0
	}
	return value >= c.Min
}

// livePredicate filters out rows the CDC connector has soft-deleted on the
// destination. The source has no such column so its predicate is plain true.
func livePredicate(target bool, alias string) string {
	if !target {
		return "true"
	}
	if alias != "" {
		alias += "."
	}
	return fmt.Sprintf("coalesce(%v%v, false) = false", alias, MetaDeleted)
}

// RowCountSQL counts live rows in a table; on the destination soft-deleted
// rows are excluded so counts line up with the source.
func RowCountSQL(prefix string, table string, target bool) string {
	return fmt.Sprintf("select count(*) from %v.%v where %v", prefix, table, livePredicate(target, ""))
}

// buildChecks assembles the assertions shared by both ends of the pipeline.
// prefix qualifies table names (schema on the source, database.schema on the
// destination) and volumes supplies the minimum expected row counts.
func buildChecks(prefix string, target bool, volumes map[string]int) []Check {
	checks := make([]Check, 0, 16)
	for _, table := range TableNames() {
		checks = append(checks, Check{
			Name:        fmt.Sprintf("%v_row_count", table),
			Description: fmt.Sprintf("%v holds at least the seeded row count", table),
			SQL:         RowCountSQL(prefix, table, target),
			Kind:        CheckMin,
			Min:         volumes[table],
		})
	}
	checks = append(checks, Check{
		Name:        "appointment_status_values",
		Description: "every appointment status is a known lifecycle value",
		SQL: fmt.Sprintf("select count(*) from %v.appointments where status not in (%v) and %v",
			prefix, statusCheckList(), livePredicate(target, "")),
		Kind: CheckZero,
	})
	checks = append(checks, Check{
		Name:        "status_count_consistency",
		Description: "per-status counts sum to the total appointment count",
		SQL: fmt.Sprintf(`select (select count(*) from %v.appointments where %v)
     - (select count(*) from %v.appointments where status in (%v) and %v)`,
			prefix, livePredicate(target, ""), prefix, statusCheckList(), livePredicate(target, "")),
		Kind: CheckZero,
	})
	checks = append(checks, Check{
		Name:        "patient_required_fields",
		Description: "patients never lose their name or date of birth",
		SQL: fmt.Sprintf("select count(*) from %v.patients where (first_name is null or last_name is null or date_of_birth is null) and %v",
			prefix, livePredicate(target, "")),
		Kind: CheckZero,
	})
	checks = append(checks, Check{
		Name:        "doctor_required_fields",
		Description: "doctors never lose their name or specialization",
		SQL: fmt.Sprintf("select count(*) from %v.doctors where (first_name is null or last_name is null or specialization is null) and %v",
			prefix, livePredicate(target, "")),
		Kind: CheckZero,
	})
	checks = append(checks, Check{
		Name:        "appointment_required_fields",
		Description: "appointments never lose their required fields",
		SQL: fmt.Sprintf("select count(*) from %v.appointments where (patient_id is null or doctor_id is null or appointment_date is null or status is null) and %v",
			prefix, livePredicate(target, "")),
		Kind: CheckZero,
	})
	checks = append(checks, Check{
		Name:        "visit_required_fields",
		Description: "visits never lose their date or charge",
		SQL: fmt.Sprintf("select count(*) from %v.visits where (visit_date is null or charge is null) and %v",
			prefix, livePredicate(target, "")),
		Kind: CheckZero,
	})
	checks = append(checks, Check{
		Name:        "visit_requires_completed_appointment",
		Description: "visits only reference completed appointments",
		SQL: fmt.Sprintf(`select count(*) from %v.visits v
join %v.appointments a on a.appointment_id = v.appointment_id
where a.status <> '%v' and %v and %v`,
			prefix, prefix, StatusCompleted, livePredicate(target, "v"), livePredicate(target, "a")),
		Kind: CheckZero,
	})
	checks = append(checks, Check{
		Name:        "orphaned_visits",
		Description: "every visit resolves to an appointment",
		SQL: fmt.Sprintf(`select count(*) from %v.visits v
where not exists (select 1 from %v.appointments a where a.appointment_id = v.appointment_id and %v) and %v`,
			prefix, prefix, livePredicate(target, "a"), livePredicate(target, "v")),
		Kind: CheckZero,
	})
	checks = append(checks, Check{
		Name:        "duplicate_visits",
		Description: "no appointment has more than one visit",
		SQL: fmt.Sprintf(`select count(*) from (
  select appointment_id from %v.visits where %v
  group by appointment_id having count(*) > 1
) d`, prefix, livePredicate(target, "")),
		Kind: CheckZero,
	})
	checks = append(checks, Check{
		Name:        "negative_charges",
		Description: "visit charges are never negative",
		SQL: fmt.Sprintf("select count(*) from %v.visits where charge < 0 and %v",
			prefix, livePredicate(target, "")),
		Kind: CheckZero,
	})
	checks = append(checks, Check{
		Name:        "completed_without_visit",
		Description: "every completed appointment produced a visit",
		SQL: fmt.Sprintf(`select count(*) from %v.appointments a
where a.status = '%v' and %v
and not exists (select 1 from %v.visits v where v.appointment_id = a.appointment_id and %v)`,
			prefix, StatusCompleted, livePredicate(target, "a"), prefix, livePredicate(target, "v")),
		Kind: CheckZero,
	})
	return checks
}

// SourceChecks returns the assertions to run against the clinic database.
func SourceChecks(schema string, volumes map[string]int) []Check {
	return buildChecks(schema, false, volumes)
}

// TargetChecks returns the assertions to run against the warehouse, extended
// with checks on the connector's metadata columns.
func TargetChecks(prefix string, volumes map[string]int) []Check {
	checks := buildChecks(prefix, true, volumes)
	for _, table := range TableNames() {
		checks = append(checks, Check{
			Name:        fmt.Sprintf("%v_missing_metadata", table),
			Description: fmt.Sprintf("replicated %v rows carry the connector insert timestamp", table),
			SQL: fmt.Sprintf("select count(*) from %v.%v where %v is null",
				prefix, table, MetaInsertedAt),
			Kind: CheckZero,
		})
		checks = append(checks, Check{
			Name:        fmt.Sprintf("%v_stale_metadata", table),
			Description: fmt.Sprintf("replicated %v rows are never updated before they are inserted", table),
			SQL: fmt.Sprintf("select count(*) from %v.%v where %v < %v",
				prefix, table, MetaUpdatedAt, MetaInsertedAt),
			Kind: CheckZero,
		})
	}
	return checks
}

// FindCheck returns the named check from the slice, or false when absent.
func FindCheck(checks []Check, name string) (Check, bool) {
	for _, c := range checks {
		if c.Name == name {
			return c, true
		}
	}
	return Check{}, false
}
