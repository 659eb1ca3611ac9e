package clinic

import (
	"strings"
	"testing"
)

func TestCheckEvaluate(t *testing.T) {
	zero := Check{Kind: CheckZero}
	if !zero.Evaluate(0) || zero.Evaluate(1) {
		t.Fatal("zero check misjudged results")
	}
	min := Check{Kind: CheckMin, Min: 100}
	if min.Evaluate(99) || !min.Evaluate(100) || !min.Evaluate(500) {
		t.Fatal("min check misjudged results")
	}
}

func TestSourceChecksCoverSeededVolumes(t *testing.T) {
	volumes := map[string]int{TablePatients: 100, TableDoctors: 10, TableAppointments: 170, TableVisits: 70}
	checks := SourceChecks("clinic", volumes)
	for _, table := range TableNames() {
		c, ok := FindCheck(checks, table+"_row_count")
		if !ok {
			t.Fatalf("missing row count check for %v", table)
		}
		if c.Kind != CheckMin || c.Min != volumes[table] {
			t.Fatalf("%v row count check malformed: %+v", table, c)
		}
	}
	for _, c := range checks {
		if strings.Contains(c.SQL, MetaDeleted) {
			t.Fatalf("source check %v references connector metadata", c.Name)
		}
	}
	c, ok := FindCheck(checks, "status_count_consistency")
	if !ok {
		t.Fatal("missing status count consistency check")
	}
	if !strings.Contains(c.SQL, "'scheduled'") || !strings.Contains(c.SQL, "'no_show'") {
		t.Fatalf("status count check does not enumerate all statuses:\n%v", c.SQL)
	}
}

func TestChecksCoverRequiredFieldsPerTable(t *testing.T) {
	checks := SourceChecks("clinic", map[string]int{})
	wants := map[string]string{
		"patient_required_fields":     "first_name is null",
		"doctor_required_fields":      "specialization is null",
		"appointment_required_fields": "appointment_date is null",
		"visit_required_fields":       "charge is null",
	}
	for name, fragment := range wants {
		c, ok := FindCheck(checks, name)
		if !ok {
			t.Fatalf("missing required fields check %v", name)
		}
		if c.Kind != CheckZero {
			t.Fatalf("%v must pass only on a zero count: %+v", name, c)
		}
		if !strings.Contains(c.SQL, fragment) {
			t.Fatalf("%v does not test %q:\n%v", name, fragment, c.SQL)
		}
	}
}

func TestTargetChecksFilterSoftDeletes(t *testing.T) {
	checks := TargetChecks("CDC_DEMO_DB.CLINIC", map[string]int{})
	c, ok := FindCheck(checks, "visit_requires_completed_appointment")
	if !ok {
		t.Fatal("missing referential check")
	}
	if !strings.Contains(c.SQL, "coalesce(v."+MetaDeleted+", false) = false") {
		t.Fatalf("target check does not exclude soft-deleted rows:\n%v", c.SQL)
	}
	if !strings.Contains(c.SQL, "CDC_DEMO_DB.CLINIC.visits") {
		t.Fatalf("target check not qualified by destination prefix:\n%v", c.SQL)
	}
}

func TestTargetChecksIncludeMetadata(t *testing.T) {
	checks := TargetChecks("db.clinic", map[string]int{})
	for _, table := range TableNames() {
		c, ok := FindCheck(checks, table+"_missing_metadata")
		if !ok {
			t.Fatalf("missing metadata check for %v", table)
		}
		if !strings.Contains(c.SQL, MetaInsertedAt) {
			t.Fatalf("metadata check missing column reference:\n%v", c.SQL)
		}
		s, ok := FindCheck(checks, table+"_stale_metadata")
		if !ok {
			t.Fatalf("missing stale metadata check for %v", table)
		}
		if !strings.Contains(s.SQL, MetaUpdatedAt+" < "+MetaInsertedAt) {
			t.Fatalf("stale metadata check missing timestamp comparison:\n%v", s.SQL)
		}
	}
}

func TestRowCountSQL(t *testing.T) {
	src := RowCountSQL("clinic", TablePatients, false)
	if src != "select count(*) from clinic.patients where true" {
		t.Fatalf("unexpected source count sql: %v", src)
	}
	tgt := RowCountSQL("db.clinic", TablePatients, true)
	if !strings.Contains(tgt, MetaDeleted) {
		t.Fatalf("target count must exclude soft deletes: %v", tgt)
	}
}
