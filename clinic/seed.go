package clinic

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// SeedPlan describes the synthetic data set to generate. The same plan always
// produces the same statements so a demo run can be reproduced exactly.
type SeedPlan struct {
	Schema       string `errorTxt:"source schema" mandatory:"yes"`
	Patients     int    `errorTxt:"number of patients" mandatory:"yes"`
	Doctors      int    `errorTxt:"number of doctors" mandatory:"yes"`
	Appointments int    `errorTxt:"number of appointments" mandatory:"yes"`
	Seed         int64
	Now          time.Time // zero value means time.Now() at generation time.
}

// insertBatchSize is the number of rows per multi-row INSERT statement.
const insertBatchSize = 50

var (
	firstNames = []string{
		"James", "Mary", "Robert", "Patricia", "John", "Jennifer", "Michael",
		"Linda", "David", "Elizabeth", "William", "Barbara", "Richard", "Susan",
		"Joseph", "Jessica", "Thomas", "Sarah", "Charles", "Karen", "Daniel",
		"Lisa", "Matthew", "Nancy", "Anthony", "Betty", "Mark", "Margaret",
		"Donald", "Sandra", "Steven", "Ashley", "Paul", "Kimberly", "Andrew",
		"Emily", "Joshua", "Donna", "Kenneth", "Michelle",
	}
	lastNames = []string{
		"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller",
		"Davis", "Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez",
		"Wilson", "Anderson", "Thomas", "Taylor", "Moore", "Jackson", "Martin",
		"Lee", "Perez", "Thompson", "White", "Harris", "Sanchez", "Clark",
		"Ramirez", "Lewis", "Robinson", "Walker", "Young", "Allen", "King",
		"Wright", "Scott", "Torres", "Nguyen", "Hill", "Flores",
	}
	genders = []string{"female", "male", "other"}
	streets = []string{
		"Maple Street", "Oak Avenue", "Cedar Lane", "Pine Road", "Elm Drive",
		"Birch Court", "Willow Way", "Chestnut Boulevard",
	}
	cities = []string{
		"Springfield", "Riverton", "Fairview", "Lakeside", "Greenville",
		"Madison", "Georgetown", "Salem",
	}
	insurers = []string{
		"BlueShield", "UnitedCare", "Aetna", "Cigna", "Humana", "Kaiser",
		"MedStar", "Anthem",
	}
	specializations = []string{
		"Cardiology", "Dermatology", "Pediatrics", "Orthopedics", "Neurology",
		"Oncology", "Family Medicine", "Psychiatry", "Radiology", "Endocrinology",
	}
	departments = []string{
		"Outpatient", "Surgery", "Diagnostics", "Emergency", "Rehabilitation",
	}
	visitReasons = []string{
		"Annual physical", "Follow-up visit", "Persistent headache",
		"Back pain", "Skin rash", "Chest discomfort", "Routine vaccination",
		"Blood pressure review", "Joint pain", "Sleep difficulties",
		"Allergy symptoms", "Medication review",
	}
	diagnoses = []string{
		"Hypertension stage 1", "Seasonal allergic rhinitis", "Type 2 diabetes",
		"Acute sinusitis", "Lumbar strain", "Migraine without aura",
		"Contact dermatitis", "Generalized anxiety disorder",
		"Iron deficiency anemia", "Healthy, no findings",
	}
	treatments = []string{
		"Lifestyle counselling", "Physical therapy referral",
		"Topical corticosteroid", "Dietary adjustment", "Watchful waiting",
		"Saline irrigation", "Stress management plan", "Iron supplementation",
	}
	prescriptions = []string{
		"Lisinopril 10mg daily", "Cetirizine 10mg daily", "Metformin 500mg bid",
		"Amoxicillin 500mg tid", "Ibuprofen 400mg prn", "Sumatriptan 50mg prn",
		"Hydrocortisone cream 1%", "Sertraline 50mg daily", "", "",
	}
)

// statusWeights drives the appointment status mix. Completed dominates so the
// default plan yields 100+ visits. Remainders from integer rounding land on
// completed so the counts always sum to the plan total.
var statusWeights = []struct {
	status Status
	weight int
}{
	{StatusCompleted, 60},
	{StatusScheduled, 12},
	{StatusConfirmed, 10},
	{StatusCancelled, 8},
	{StatusNoShow, 5},
	{StatusCheckedIn, 3},
	{StatusInProgress, 2},
}

// statusCounts apportions total appointments across statuses by weight.
func statusCounts(total int) map[Status]int {
	counts := make(map[Status]int, len(statusWeights))
	assigned := 0
	for _, w := range statusWeights {
		n := total * w.weight / 100
		counts[w.status] = n
		assigned += n
	}
	counts[StatusCompleted] += total - assigned
	return counts
}

func sqlQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// appointmentRow carries the generated values needed later for visit rows.
type appointmentRow struct {
	id        int
	patientID int
	doctorID  int
	date      time.Time
	status    Status
}

// GenerateSeedSQL builds the ordered INSERT statements for a reproducible demo
// data set: patients first, then doctors, appointments with a weighted status
// mix, and one visit per completed appointment.
func GenerateSeedSQL(plan SeedPlan) ([]string, error) {
	if plan.Patients < 1 || plan.Doctors < 1 || plan.Appointments < 1 {
		return nil, errors.New("patient, doctor and appointment counts must all be at least 1")
	}
	now := plan.Now
	if now.IsZero() {
		now = time.Now()
	}
	now = now.Truncate(24 * time.Hour)
	rnd := rand.New(rand.NewSource(plan.Seed))
	s := make([]string, 0, 8)

	// Patients.
	rows := make([]string, 0, plan.Patients)
	for i := 1; i <= plan.Patients; i++ {
		first := firstNames[rnd.Intn(len(firstNames))]
		last := lastNames[rnd.Intn(len(lastNames))]
		dob := now.AddDate(-18-rnd.Intn(70), 0, -rnd.Intn(365))
		gender := genders[rnd.Intn(len(genders))]
		email := fmt.Sprintf("%v.%v%v@example.com", strings.ToLower(first), strings.ToLower(last), i)
		phone := fmt.Sprintf("555-%03d-%04d", rnd.Intn(1000), rnd.Intn(10000))
		address := fmt.Sprintf("%v %v, %v", 1+rnd.Intn(9999), streets[rnd.Intn(len(streets))], cities[rnd.Intn(len(cities))])
		insurer := insurers[rnd.Intn(len(insurers))]
		insNum := fmt.Sprintf("%v-%07d", strings.ToUpper(insurer[:2]), rnd.Intn(10000000))
		registered := now.AddDate(0, 0, -rnd.Intn(730))
		rows = append(rows, fmt.Sprintf("(%v, %v, '%v', %v, %v, %v, %v, %v, %v, '%v')",
			sqlQuote(first), sqlQuote(last), dob.Format("2006-01-02"), sqlQuote(gender),
			sqlQuote(email), sqlQuote(phone), sqlQuote(address), sqlQuote(insurer),
			sqlQuote(insNum), registered.Format("2006-01-02")))
	}
	s = append(s, batchInserts(plan.Schema, TablePatients, rows)...)

	// Doctors.
	rows = rows[:0]
	for i := 1; i <= plan.Doctors; i++ {
		first := firstNames[rnd.Intn(len(firstNames))]
		last := lastNames[rnd.Intn(len(lastNames))]
		spec := specializations[(i-1)%len(specializations)]
		dept := departments[rnd.Intn(len(departments))]
		email := fmt.Sprintf("dr.%v%v@harborhealth.example", strings.ToLower(last), i)
		phone := fmt.Sprintf("555-%03d-%04d", rnd.Intn(1000), rnd.Intn(10000))
		accepting := rnd.Intn(10) > 1 // most doctors accept new patients.
		hired := now.AddDate(-rnd.Intn(15), -rnd.Intn(12), 0)
		rows = append(rows, fmt.Sprintf("(%v, %v, %v, %v, %v, %v, %v, '%v')",
			sqlQuote(first), sqlQuote(last), sqlQuote(spec), sqlQuote(dept),
			sqlQuote(email), sqlQuote(phone), accepting, hired.Format("2006-01-02")))
	}
	s = append(s, batchInserts(plan.Schema, TableDoctors, rows)...)

	// Appointments. Statuses are apportioned by weight then shuffled so the
	// mix is spread across appointment ids.
	counts := statusCounts(plan.Appointments)
	statuses := make([]Status, 0, plan.Appointments)
	for _, w := range statusWeights {
		for i := 0; i < counts[w.status]; i++ {
			statuses = append(statuses, w.status)
		}
	}
	rnd.Shuffle(len(statuses), func(i, j int) { statuses[i], statuses[j] = statuses[j], statuses[i] })

	appts := make([]appointmentRow, 0, plan.Appointments)
	rows = rows[:0]
	for i := 1; i <= plan.Appointments; i++ {
		status := statuses[i-1]
		var date time.Time
		switch status {
		case StatusScheduled, StatusConfirmed:
			date = now.AddDate(0, 0, 1+rnd.Intn(30))
		case StatusCheckedIn, StatusInProgress:
			date = now
		default: // completed, cancelled, no_show are in the past.
			date = now.AddDate(0, 0, -(1 + rnd.Intn(60)))
		}
		hhmm := fmt.Sprintf("%02d:%02d", 8+rnd.Intn(9), 15*rnd.Intn(4))
		patientID := 1 + rnd.Intn(plan.Patients)
		doctorID := 1 + rnd.Intn(plan.Doctors)
		reason := visitReasons[rnd.Intn(len(visitReasons))]
		appts = append(appts, appointmentRow{id: i, patientID: patientID, doctorID: doctorID, date: date, status: status})
		rows = append(rows, fmt.Sprintf("(%v, %v, '%v', '%v', %v, %v)",
			patientID, doctorID, date.Format("2006-01-02"), hhmm, sqlQuote(string(status)), sqlQuote(reason)))
	}
	s = append(s, batchInserts(plan.Schema, TableAppointments, rows)...)

	// Visits, one per completed appointment.
	rows = rows[:0]
	for _, a := range appts {
		if a.status != StatusCompleted {
			continue
		}
		diagnosis := diagnoses[rnd.Intn(len(diagnoses))]
		treatment := treatments[rnd.Intn(len(treatments))]
		prescription := prescriptions[rnd.Intn(len(prescriptions))]
		followUp := rnd.Intn(4) == 0
		charge := 50 + rnd.Float64()*450
		rows = append(rows, fmt.Sprintf("(%v, %v, %v, '%v', %v, %v, %v, %v, %.2f)",
			a.id, a.patientID, a.doctorID, a.date.Format("2006-01-02"),
			sqlQuote(diagnosis), sqlQuote(treatment), sqlQuote(prescription),
			followUp, charge))
	}
	if len(rows) > 0 {
		s = append(s, batchInserts(plan.Schema, TableVisits, rows)...)
	}
	return s, nil
}

// batchInserts splits rows into multi-row INSERT statements of at most
// insertBatchSize rows each. The column list comes from the table definition
// so the generators and the DDL cannot drift apart.
func batchInserts(schema string, table string, rows []string) []string {
	columns := strings.Join(InsertColumns(schema, table), ", ")
	s := make([]string, 0, (len(rows)+insertBatchSize-1)/insertBatchSize)
	for start := 0; start < len(rows); start += insertBatchSize {
		end := start + insertBatchSize
		if end > len(rows) {
			end = len(rows)
		}
		s = append(s, fmt.Sprintf("insert into %v.%v (%v) values\n%v",
			schema, table, columns, strings.Join(rows[start:end], ",\n")))
	}
	return s
}

// ExpectedVolumes returns the minimum row counts a seeded source should hold,
// keyed by table name. Completed appointments map 1:1 to visits.
func ExpectedVolumes(plan SeedPlan) map[string]int {
	counts := statusCounts(plan.Appointments)
	return map[string]int{
		TablePatients:     plan.Patients,
		TableDoctors:      plan.Doctors,
		TableAppointments: plan.Appointments,
		TableVisits:       counts[StatusCompleted],
	}
}
