package cmd

import (
	"testing"

	"github.com/harborhealth/cdcdemo/actions"
	"github.com/harborhealth/cdcdemo/constants"
)

// The verify commands must default their expected volumes to the seed
// defaults so an out-of-the-box verify fails against an empty database.
func TestVerifyVolumeFlagDefaults(t *testing.T) {
	for name, cfg := range map[string]*actions.VerifyConfig{
		"source": &verifySourceCfg,
		"target": &verifyTargetCfg,
	} {
		if cfg.Patients != constants.DefaultSeedPatients {
			t.Fatalf("%v: expected %v patients, got %v", name, constants.DefaultSeedPatients, cfg.Patients)
		}
		if cfg.Doctors != constants.DefaultSeedDoctors {
			t.Fatalf("%v: expected %v doctors, got %v", name, constants.DefaultSeedDoctors, cfg.Doctors)
		}
		if cfg.Appointments != constants.DefaultSeedAppointments {
			t.Fatalf("%v: expected %v appointments, got %v", name, constants.DefaultSeedAppointments, cfg.Appointments)
		}
	}
}
