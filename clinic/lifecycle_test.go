package clinic

import (
	"math/rand"
	"strings"
	"testing"
)

func TestRoundStepsUseLegalTransitions(t *testing.T) {
	for _, step := range RoundSteps(10) {
		if !CanTransition(step.From, step.To) {
			t.Fatalf("round contains illegal transition %v -> %v", step.From, step.To)
		}
		if step.Limit < 1 {
			t.Fatalf("step %v -> %v has non-positive limit", step.From, step.To)
		}
	}
}

func TestRoundStepsClampBatch(t *testing.T) {
	for _, step := range RoundSteps(0) {
		if step.Limit != 1 {
			t.Fatalf("expected limit 1 for zero batch, got %v", step.Limit)
		}
	}
}

func TestUpdateSQL(t *testing.T) {
	step := TransitionStep{From: StatusScheduled, To: StatusConfirmed, Limit: 5}
	sql, err := step.UpdateSQL("clinic")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"update clinic.appointments",
		"set status = 'confirmed'",
		"where status = 'scheduled'",
		"order by appointment_id",
		"limit 5",
	} {
		if !strings.Contains(sql, want) {
			t.Fatalf("update missing %q in:\n%v", want, sql)
		}
	}
}

func TestUpdateSQLRejectsIllegalTransition(t *testing.T) {
	step := TransitionStep{From: StatusCompleted, To: StatusScheduled, Limit: 1}
	if _, err := step.UpdateSQL("clinic"); err == nil {
		t.Fatal("expected error for illegal transition")
	}
}

func TestNewAppointmentSQLIsDeterministic(t *testing.T) {
	a := NewAppointmentSQL("clinic", 3, rand.New(rand.NewSource(7)))
	b := NewAppointmentSQL("clinic", 3, rand.New(rand.NewSource(7)))
	if len(a) != 3 || len(b) != 3 {
		t.Fatalf("expected 3 statements, got %v and %v", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("statement %v differs between seeded runs", i)
		}
		if !strings.Contains(a[i], "'scheduled'") {
			t.Fatalf("new appointments must start scheduled:\n%v", a[i])
		}
	}
}

func TestVisitInsertSQLGuardsDuplicates(t *testing.T) {
	sql := VisitInsertSQL("clinic", rand.New(rand.NewSource(1)))
	if !strings.Contains(sql, "where a.status = 'completed'") {
		t.Fatalf("visit insert must target completed appointments:\n%v", sql)
	}
	if !strings.Contains(sql, "not exists") {
		t.Fatalf("visit insert missing duplicate guard:\n%v", sql)
	}
}
