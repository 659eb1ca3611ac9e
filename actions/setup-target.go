package actions

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/harborhealth/cdcdemo/aws/s3"
	"github.com/harborhealth/cdcdemo/clinic"
	"github.com/harborhealth/cdcdemo/constants"
	"github.com/harborhealth/cdcdemo/logger"
	"github.com/harborhealth/cdcdemo/rdbms"
	"github.com/harborhealth/cdcdemo/rdbms/shared"
)

type TargetSetupConfig struct {
	LogLevel         string `errorTxt:"log level" mandatory:"yes"`
	StackDumpOnPanic bool
	ExecuteDDL       bool
	Target           clinic.TargetObjects
	Connections      ConnectionLoader
	ConnectionName   string `errorTxt:"target connection name" mandatory:"yes"`
	SnowConnDetails  *shared.DsnConnectionDetails
	// Optional S3 stage used when the connector bulk-loads snapshots.
	StageName     string
	StageS3Url    string
	StageS3Key    string
	StageS3Secret string
	StageS3Region string
	Prober        s3.Prober
}

// withStage reports whether the optional stage should be provisioned.
func (cfg *TargetSetupConfig) withStage() bool {
	return cfg.StageS3Url != ""
}

// RunTargetSetup provisions the Snowflake side: role, warehouse, database and
// schema plus the network rule, secret and external access integration the
// managed CDC connector authenticates through. When a stage S3 URL is given
// the bucket is probed first so bad credentials fail before any DDL runs.
func RunTargetSetup(cfg *TargetSetupConfig) error {
	if cfg.LogLevel == "" {
		cfg.LogLevel = "error"
	}
	log := logger.NewLogger("cdcdemo", cfg.LogLevel, cfg.StackDumpOnPanic)
	if err := validateConfig(cfg); err != nil {
		return err
	}
	if cfg.Target.SourceHost == "" || cfg.Target.SourcePort == 0 || cfg.Target.SourceUser == "" || cfg.Target.SourcePass == "" {
		return fmt.Errorf("please supply values for the source database host, port, user and password")
	}
	if cfg.ExecuteDDL {
		conn, err := requireConnectionType(cfg.Connections, cfg.ConnectionName, constants.ConnectionTypeSnowflake)
		if err != nil {
			return err
		}
		cfg.SnowConnDetails = shared.GetDsnConnectionDetails(&conn)
	}
	if cfg.withStage() {
		if cfg.StageName == "" || cfg.StageS3Key == "" || cfg.StageS3Secret == "" {
			return fmt.Errorf("please supply values for the stage name, S3 access key and S3 secret key")
		}
		if cfg.Prober == nil {
			cfg.Prober = s3.NewProber(cfg.StageS3Region)
		}
		bucket := bucketFromUrl(cfg.StageS3Url)
		if err := cfg.Prober.BucketExists(bucket); err != nil {
			return errors.Wrapf(err, "unable to use S3 bucket %q for stage %v", bucket, cfg.StageName)
		}
	}
	printLogFn := getPrintLogFunc(log, !cfg.ExecuteDDL)
	ddl := clinic.TargetDDL(cfg.Target, !cfg.ExecuteDDL) // if we want to execute then disable terminator in SQL strings.
	if cfg.withStage() {
		ddl = append(ddl, clinic.StageDDL(cfg.StageName, cfg.StageS3Url, cfg.StageS3Key, cfg.StageS3Secret, !cfg.ExecuteDDL)...)
	}
	printLogFn(`-- Snowflake SQL...`)
	for _, stmt := range ddl {
		printLogFn(stmt)
		if cfg.ExecuteDDL {
			fn := func() error {
				return rdbms.SnowflakeDDLExec(log, cfg.SnowConnDetails, stmt)
			}
			mustExecFn(log, printLogFn, fn)
		}
	}
	if cfg.ExecuteDDL {
		fmt.Printf("Target %v ready for the CDC connector\n", cfg.Target.TablePrefix())
	}
	return nil
}

// RunTargetCleanup drops the warehouse-side objects in reverse order.
func RunTargetCleanup(cfg *TargetSetupConfig) error {
	if cfg.LogLevel == "" {
		cfg.LogLevel = "error"
	}
	log := logger.NewLogger("cdcdemo", cfg.LogLevel, cfg.StackDumpOnPanic)
	if err := validateConfig(cfg); err != nil {
		return err
	}
	if cfg.ExecuteDDL {
		conn, err := requireConnectionType(cfg.Connections, cfg.ConnectionName, constants.ConnectionTypeSnowflake)
		if err != nil {
			return err
		}
		cfg.SnowConnDetails = shared.GetDsnConnectionDetails(&conn)
	}
	printLogFn := getPrintLogFunc(log, !cfg.ExecuteDDL)
	ddl := make([]string, 0, 8)
	if cfg.StageName != "" {
		ddl = append(ddl, clinic.StageCleanupDDL(cfg.StageName, !cfg.ExecuteDDL)...)
	}
	ddl = append(ddl, clinic.TargetCleanupDDL(cfg.Target, !cfg.ExecuteDDL)...)
	printLogFn(`-- Snowflake SQL...`)
	for _, stmt := range ddl {
		printLogFn(stmt)
		if cfg.ExecuteDDL {
			fn := func() error {
				return rdbms.SnowflakeDDLExec(log, cfg.SnowConnDetails, stmt)
			}
			mustExecFn(log, printLogFn, fn)
		}
	}
	return nil
}

// bucketFromUrl extracts the bucket name from an S3 URL with or without the
// s3:// prefix.
func bucketFromUrl(url string) string {
	u := url
	if len(u) >= 5 && u[:5] == "s3://" {
		u = u[5:]
	}
	for i := 0; i < len(u); i++ {
		if u[i] == '/' {
			return u[:i]
		}
	}
	return u
}
