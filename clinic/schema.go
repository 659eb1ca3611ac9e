package clinic

import (
	"fmt"
	"strings"

	om "github.com/cevaris/ordered_map"
)

// Table names in dependency order. Creation uses this order; drops use the reverse.
const (
	TablePatients     = "patients"
	TableDoctors      = "doctors"
	TableAppointments = "appointments"
	TableVisits       = "visits"
)

// TableNames returns the demo tables in FK dependency order.
func TableNames() []string {
	return []string{TablePatients, TableDoctors, TableAppointments, TableVisits}
}

// statusCheckList renders the status enumeration for use in CHECK constraints
// and verification predicates e.g. 'scheduled','confirmed',...
func statusCheckList() string {
	quoted := make([]string, 0, len(AllStatuses))
	for _, s := range AllStatuses {
		quoted = append(quoted, fmt.Sprintf("'%v'", s))
	}
	return strings.Join(quoted, ",")
}

// patientColumns returns the ordered column definitions for the patients table.
func patientColumns() *om.OrderedMap {
	o := om.NewOrderedMap()
	o.Set("patient_id", "serial primary key")
	o.Set("first_name", "varchar(50) not null")
	o.Set("last_name", "varchar(50) not null")
	o.Set("date_of_birth", "date not null")
	o.Set("gender", "varchar(10)")
	o.Set("email", "varchar(100)")
	o.Set("phone", "varchar(20)")
	o.Set("address", "varchar(200)")
	o.Set("insurance_provider", "varchar(50)")
	o.Set("insurance_number", "varchar(30)")
	o.Set("registered_at", "timestamptz not null default now()")
	return o
}

func doctorColumns() *om.OrderedMap {
	o := om.NewOrderedMap()
	o.Set("doctor_id", "serial primary key")
	o.Set("first_name", "varchar(50) not null")
	o.Set("last_name", "varchar(50) not null")
	o.Set("specialization", "varchar(50) not null")
	o.Set("department", "varchar(50)")
	o.Set("email", "varchar(100)")
	o.Set("phone", "varchar(20)")
	o.Set("accepting_new_patients", "boolean not null default true")
	o.Set("hired_at", "date")
	return o
}

func appointmentColumns(schema string) *om.OrderedMap {
	o := om.NewOrderedMap()
	o.Set("appointment_id", "serial primary key")
	o.Set("patient_id", fmt.Sprintf("integer not null references %v.patients (patient_id)", schema))
	o.Set("doctor_id", fmt.Sprintf("integer not null references %v.doctors (doctor_id)", schema))
	o.Set("appointment_date", "date not null")
	o.Set("appointment_time", "time not null")
	o.Set("status", fmt.Sprintf("varchar(20) not null check (status in (%v))", statusCheckList()))
	o.Set("reason", "varchar(200)")
	o.Set("created_at", "timestamptz not null default now()")
	o.Set("updated_at", "timestamptz not null default now()")
	return o
}

func visitColumns(schema string) *om.OrderedMap {
	o := om.NewOrderedMap()
	o.Set("visit_id", "serial primary key")
	// Unique reference so at most one visit exists per completed appointment.
	o.Set("appointment_id", fmt.Sprintf("integer not null unique references %v.appointments (appointment_id)", schema))
	o.Set("patient_id", fmt.Sprintf("integer not null references %v.patients (patient_id)", schema))
	o.Set("doctor_id", fmt.Sprintf("integer not null references %v.doctors (doctor_id)", schema))
	o.Set("visit_date", "date not null")
	o.Set("diagnosis", "varchar(200)")
	o.Set("treatment", "varchar(200)")
	o.Set("prescription", "varchar(200)")
	o.Set("follow_up_needed", "boolean not null default false")
	o.Set("charge", "numeric(10,2) not null check (charge >= 0)")
	o.Set("created_at", "timestamptz not null default now()")
	return o
}

// createTableSQL renders a CREATE TABLE statement from ordered column definitions.
func createTableSQL(schema string, table string, cols *om.OrderedMap) string {
	defs := make([]string, 0, cols.Len())
	iter := cols.IterFunc()
	for kv, ok := iter(); ok; kv, ok = iter() {
		defs = append(defs, fmt.Sprintf("  %v %v", kv.Key, kv.Value))
	}
	return fmt.Sprintf("create table %v.%v (\n%v\n)", schema, table, strings.Join(defs, ",\n"))
}

// ColumnNames returns the ordered column names for the given table, used to
// build INSERT column lists and verification projections.
func ColumnNames(schema string, table string) []string {
	var cols *om.OrderedMap
	switch table {
	case TablePatients:
		cols = patientColumns()
	case TableDoctors:
		cols = doctorColumns()
	case TableAppointments:
		cols = appointmentColumns(schema)
	case TableVisits:
		cols = visitColumns(schema)
	default:
		panic(fmt.Sprintf("unknown clinic table %q", table))
	}
	names := make([]string, 0, cols.Len())
	iter := cols.IterFunc()
	for kv, ok := iter(); ok; kv, ok = iter() {
		names = append(names, kv.Key.(string))
	}
	return names
}

// InsertColumns returns the columns populated by generated INSERT statements:
// every column except the serial key and the timestamps the database defaults.
func InsertColumns(schema string, table string) []string {
	names := ColumnNames(schema, table)
	out := make([]string, 0, len(names))
	for _, n := range names[1:] { // skip the serial primary key.
		if n == "created_at" || n == "updated_at" {
			continue
		}
		out = append(out, n)
	}
	return out
}

// SourceDDL generates the ordered statements that provision the source-side
// clinic schema: tables with constraints, the updated_at trigger, supporting
// indexes, REPLICA IDENTITY FULL and the logical-replication publication.
// Set addTerminator when previewing so statements print as runnable SQL.
func SourceDDL(schema string, publication string, addTerminator bool) []string {
	terminator := ""
	if addTerminator {
		terminator = ";"
	}
	s := make([]string, 0, 20)
	s = append(s, fmt.Sprintf("drop publication if exists %v%v", publication, terminator))
	s = append(s, fmt.Sprintf("drop table if exists %v.visits cascade%v", schema, terminator))
	s = append(s, fmt.Sprintf("drop table if exists %v.appointments cascade%v", schema, terminator))
	s = append(s, fmt.Sprintf("drop table if exists %v.doctors cascade%v", schema, terminator))
	s = append(s, fmt.Sprintf("drop table if exists %v.patients cascade%v", schema, terminator))
	s = append(s, fmt.Sprintf("create schema if not exists %v%v", schema, terminator))
	s = append(s, createTableSQL(schema, TablePatients, patientColumns())+terminator)
	s = append(s, createTableSQL(schema, TableDoctors, doctorColumns())+terminator)
	s = append(s, createTableSQL(schema, TableAppointments, appointmentColumns(schema))+terminator)
	s = append(s, createTableSQL(schema, TableVisits, visitColumns(schema))+terminator)
	s = append(s, fmt.Sprintf(`create or replace function %v.touch_updated_at() returns trigger as $$
begin
  new.updated_at := now();
  return new;
end;
$$ language plpgsql%v`, schema, terminator))
	s = append(s, fmt.Sprintf(`create trigger appointments_touch_updated_at
  before update on %v.appointments
  for each row execute procedure %v.touch_updated_at()%v`, schema, schema, terminator))
	s = append(s, fmt.Sprintf("create index idx_appointments_status on %v.appointments (status, appointment_id)%v", schema, terminator))
	s = append(s, fmt.Sprintf("create index idx_appointments_patient on %v.appointments (patient_id)%v", schema, terminator))
	s = append(s, fmt.Sprintf("create index idx_visits_patient on %v.visits (patient_id)%v", schema, terminator))
	// Full before-images so the connector can stream updates and deletes.
	for _, t := range TableNames() {
		s = append(s, fmt.Sprintf("alter table %v.%v replica identity full%v", schema, t, terminator))
	}
	tables := make([]string, 0, len(TableNames()))
	for _, t := range TableNames() {
		tables = append(tables, fmt.Sprintf("%v.%v", schema, t))
	}
	s = append(s, fmt.Sprintf("create publication %v for table %v%v", publication, strings.Join(tables, ", "), terminator))
	return s
}

// SourceCleanupDDL drops everything SourceDDL creates, in reverse order.
func SourceCleanupDDL(schema string, publication string, addTerminator bool) []string {
	terminator := ""
	if addTerminator {
		terminator = ";"
	}
	return []string{
		fmt.Sprintf("drop publication if exists %v%v", publication, terminator),
		fmt.Sprintf("drop table if exists %v.visits cascade%v", schema, terminator),
		fmt.Sprintf("drop table if exists %v.appointments cascade%v", schema, terminator),
		fmt.Sprintf("drop table if exists %v.doctors cascade%v", schema, terminator),
		fmt.Sprintf("drop table if exists %v.patients cascade%v", schema, terminator),
		fmt.Sprintf("drop function if exists %v.touch_updated_at()%v", schema, terminator),
	}
}
