package clinic

import (
	"fmt"

	"github.com/harborhealth/cdcdemo/constants"
)

// Report is a named analytics query runnable against either end of the
// pipeline.
type Report struct {
	Name        string
	Description string
	SQL         string
}

// dayNameExpr renders the weekday of a date column per SQL dialect.
func dayNameExpr(dbType string, col string) string {
	if dbType == constants.ConnectionTypeSnowflake {
		return fmt.Sprintf("dayname(%v)", col)
	}
	return fmt.Sprintf("trim(to_char(%v, 'Day'))", col)
}

// Reports returns the analytics bundled with the demo. prefix qualifies table
// names and dbType selects dialect-specific expressions.
func Reports(prefix string, dbType string) []Report {
	return []Report{
		{
			Name:        "status_breakdown",
			Description: "appointment counts by lifecycle status",
			SQL: fmt.Sprintf(`select status, count(*) as appointments
from %v.appointments
group by status
order by appointments desc`, prefix),
		},
		{
			Name:        "doctor_utilization",
			Description: "appointment and visit volume per doctor",
			SQL: fmt.Sprintf(`select d.doctor_id, d.last_name, d.specialization,
  count(a.appointment_id) as appointments,
  count(v.visit_id) as visits
from %v.doctors d
left join %v.appointments a on a.doctor_id = d.doctor_id
left join %v.visits v on v.appointment_id = a.appointment_id
group by d.doctor_id, d.last_name, d.specialization
order by appointments desc`, prefix, prefix, prefix),
		},
		{
			Name:        "revenue_by_specialization",
			Description: "billed visit charges per doctor specialization",
			SQL: fmt.Sprintf(`select d.specialization,
  count(v.visit_id) as visits,
  sum(v.charge) as revenue,
  round(avg(v.charge), 2) as avg_charge
from %v.visits v
join %v.doctors d on d.doctor_id = v.doctor_id
group by d.specialization
order by revenue desc`, prefix, prefix),
		},
		{
			Name:        "daily_visit_volume",
			Description: "visits and revenue per day",
			SQL: fmt.Sprintf(`select visit_date, count(*) as visits, sum(charge) as revenue
from %v.visits
group by visit_date
order by visit_date`, prefix),
		},
		{
			Name:        "no_show_rate_by_weekday",
			Description: "share of no-show appointments by weekday",
			SQL: fmt.Sprintf(`select %v as weekday,
  count(*) as appointments,
  sum(case when status = '%v' then 1 else 0 end) as no_shows,
  round(100.0 * sum(case when status = '%v' then 1 else 0 end) / count(*), 1) as no_show_pct
from %v.appointments
group by %v
order by appointments desc`,
				dayNameExpr(dbType, "appointment_date"), StatusNoShow, StatusNoShow,
				prefix, dayNameExpr(dbType, "appointment_date")),
		},
		{
			Name:        "insurance_mix",
			Description: "patient population and revenue per insurer",
			SQL: fmt.Sprintf(`select p.insurance_provider,
  count(distinct p.patient_id) as patients,
  count(v.visit_id) as visits,
  coalesce(sum(v.charge), 0) as revenue
from %v.patients p
left join %v.visits v on v.patient_id = p.patient_id
group by p.insurance_provider
order by revenue desc`, prefix, prefix),
		},
	}
}

// FindReport returns the named report, or false when it does not exist.
func FindReport(prefix string, dbType string, name string) (Report, bool) {
	for _, r := range Reports(prefix, dbType) {
		if r.Name == name {
			return r, true
		}
	}
	return Report{}, false
}

// ReportNames lists the available report names in display order.
func ReportNames() []string {
	names := make([]string, 0, 8)
	for _, r := range Reports("x", constants.ConnectionTypePostgres) {
		names = append(names, r.Name)
	}
	return names
}
