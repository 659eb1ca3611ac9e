package clinic

import (
	"fmt"
	"math/rand"
	"strings"
)

// TransitionStep moves at most Limit appointments from one status to the next.
type TransitionStep struct {
	From  Status
	To    Status
	Limit int
}

// RoundSteps returns the transition steps one simulation round applies, sized
// from the batch. Completions are driven first so rows flow through the whole
// lifecycle across consecutive rounds, with a smaller share of cancellations
// and no-shows mixed in.
func RoundSteps(batch int) []TransitionStep {
	if batch < 1 {
		batch = 1
	}
	minor := batch / 4
	if minor < 1 {
		minor = 1
	}
	return []TransitionStep{
		{From: StatusInProgress, To: StatusCompleted, Limit: batch},
		{From: StatusCheckedIn, To: StatusInProgress, Limit: batch},
		{From: StatusConfirmed, To: StatusCheckedIn, Limit: batch},
		{From: StatusScheduled, To: StatusConfirmed, Limit: batch},
		{From: StatusConfirmed, To: StatusNoShow, Limit: minor},
		{From: StatusScheduled, To: StatusCancelled, Limit: minor},
	}
}

// UpdateSQL moves the lowest-id rows in the step's source status to its target
// status. Selecting by ordered id keeps repeated runs against the same data
// deterministic. The trigger on the table maintains updated_at.
func (t TransitionStep) UpdateSQL(schema string) (string, error) {
	if !CanTransition(t.From, t.To) {
		return "", fmt.Errorf("invalid appointment transition %v -> %v", t.From, t.To)
	}
	return fmt.Sprintf(`update %v.appointments
set status = '%v'
where appointment_id in (
  select appointment_id from %v.appointments
  where status = '%v'
  order by appointment_id
  limit %v
)`, schema, t.To, schema, t.From, t.Limit), nil
}

// NewAppointmentSQL inserts n freshly scheduled appointments, picking patient
// and doctor ids from the existing population via deterministic offsets. Each
// insert is a standalone statement so the offsets differ per row.
func NewAppointmentSQL(schema string, n int, rnd *rand.Rand) []string {
	stmts := make([]string, 0, n)
	for i := 0; i < n; i++ {
		reason := visitReasons[rnd.Intn(len(visitReasons))]
		hhmm := fmt.Sprintf("%02d:%02d", 8+rnd.Intn(9), 15*rnd.Intn(4))
		days := 1 + rnd.Intn(21)
		patientPick := rnd.Intn(1000)
		doctorPick := rnd.Intn(1000)
		stmts = append(stmts, fmt.Sprintf(`insert into %v.appointments (`+strings.Join(InsertColumns(schema, TableAppointments), ", ")+`)
select p.patient_id, d.doctor_id, current_date + %v, '%v', '%v', %v
from (select patient_id from %v.patients order by patient_id offset (%v %% (select count(*) from %v.patients)) limit 1) p,
     (select doctor_id from %v.doctors order by doctor_id offset (%v %% (select count(*) from %v.doctors)) limit 1) d`,
			schema, days, hhmm, StatusScheduled, sqlQuote(reason),
			schema, patientPick, schema,
			schema, doctorPick, schema))
	}
	return stmts
}

// VisitInsertSQL creates visit records for completed appointments that do not
// have one yet. The NOT EXISTS guard makes the statement safe to run every
// round.
func VisitInsertSQL(schema string, rnd *rand.Rand) string {
	diagnosis := diagnoses[rnd.Intn(len(diagnoses))]
	treatment := treatments[rnd.Intn(len(treatments))]
	prescription := prescriptions[rnd.Intn(len(prescriptions))]
	charge := 50 + rnd.Float64()*450
	return fmt.Sprintf(`insert into %v.visits (`+strings.Join(InsertColumns(schema, TableVisits), ", ")+`)
select a.appointment_id, a.patient_id, a.doctor_id, a.appointment_date, %v, %v, %v, false, %.2f
from %v.appointments a
where a.status = '%v'
and not exists (
  select 1 from %v.visits v where v.appointment_id = a.appointment_id
)`, schema, sqlQuote(diagnosis), sqlQuote(treatment), sqlQuote(prescription), charge,
		schema, StatusCompleted, schema)
}
