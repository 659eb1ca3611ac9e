package clinic

import (
	"strings"
	"testing"
	"time"

	"github.com/harborhealth/cdcdemo/constants"
)

func testPlan() SeedPlan {
	return SeedPlan{
		Schema:       "clinic",
		Patients:     100,
		Doctors:      10,
		Appointments: 170,
		Seed:         42,
		Now:          time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
	}
}

func TestGenerateSeedSQLIsDeterministic(t *testing.T) {
	a, err := GenerateSeedSQL(testPlan())
	if err != nil {
		t.Fatal(err)
	}
	b, err := GenerateSeedSQL(testPlan())
	if err != nil {
		t.Fatal(err)
	}
	if len(a) != len(b) {
		t.Fatalf("statement counts differ: %v vs %v", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("statement %v differs between runs", i)
		}
	}
}

func TestGenerateSeedSQLRowCounts(t *testing.T) {
	stmts, err := GenerateSeedSQL(testPlan())
	if err != nil {
		t.Fatal(err)
	}
	counts := map[string]int{}
	for _, s := range stmts {
		for _, table := range TableNames() {
			if strings.HasPrefix(s, "insert into clinic."+table+" ") {
				counts[table] += strings.Count(s, "\n(") // one row tuple per line.
			}
		}
	}
	want := ExpectedVolumes(testPlan())
	for _, table := range TableNames() {
		if counts[table] != want[table] {
			t.Fatalf("%v: expected %v rows, got %v", table, want[table], counts[table])
		}
	}
}

func TestGenerateSeedSQLBatchSize(t *testing.T) {
	stmts, err := GenerateSeedSQL(testPlan())
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range stmts {
		rows := strings.Count(s, "\n(")
		if rows > insertBatchSize {
			t.Fatalf("statement carries %v rows, max is %v", rows, insertBatchSize)
		}
	}
}

func TestGenerateSeedSQLRejectsBadCounts(t *testing.T) {
	p := testPlan()
	p.Doctors = 0
	if _, err := GenerateSeedSQL(p); err == nil {
		t.Fatal("expected error for zero doctors")
	}
}

func TestStatusCountsSumToTotal(t *testing.T) {
	for _, total := range []int{1, 7, 170, 1000} {
		counts := statusCounts(total)
		sum := 0
		for _, n := range counts {
			sum += n
		}
		if sum != total {
			t.Fatalf("total %v: status counts sum to %v", total, sum)
		}
	}
}

func TestExpectedVolumes(t *testing.T) {
	v := ExpectedVolumes(testPlan())
	if v[TablePatients] != 100 || v[TableDoctors] != 10 || v[TableAppointments] != 170 {
		t.Fatalf("unexpected volumes: %v", v)
	}
	// The default-shaped plan must complete enough appointments to yield at
	// least 100 visits so a demo run has meaningful change traffic.
	if v[TableVisits] < 100 || v[TableVisits] > 170 {
		t.Fatalf("unexpected visit volume: %v", v[TableVisits])
	}
}

func TestDefaultPlanVisitVolume(t *testing.T) {
	v := ExpectedVolumes(SeedPlan{
		Schema:       constants.DefaultSourceSchema,
		Patients:     constants.DefaultSeedPatients,
		Doctors:      constants.DefaultSeedDoctors,
		Appointments: constants.DefaultSeedAppointments,
	})
	if v[TableVisits] < 100 {
		t.Fatalf("default volumes produce only %v visits, want at least 100", v[TableVisits])
	}
}
