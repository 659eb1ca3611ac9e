package actions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborhealth/cdcdemo/aws/s3"
	"github.com/harborhealth/cdcdemo/clinic"
)

func testTarget() clinic.TargetObjects {
	return clinic.TargetObjects{
		Role:        "CDC_DEMO_ROLE",
		Warehouse:   "CDC_DEMO_WH",
		Database:    "CDC_DEMO_DB",
		Schema:      "CLINIC",
		NetworkRule: "CDC_DEMO_NETWORK_RULE",
		Secret:      "CDC_DEMO_SECRET",
		Integration: "CDC_DEMO_INTEGRATION",
		SourceHost:  "pg.example.com",
		SourcePort:  5432,
		SourceUser:  "replicator",
		SourcePass:  "pass",
	}
}

func TestRunSourceSetupPreview(t *testing.T) {
	err := RunSourceSetup(&SourceSetupConfig{
		LogLevel:        "error",
		SchemaName:      "clinic",
		PublicationName: "clinic_cdc_pub",
		Connections:     testLoader(),
		ConnectionName:  "pg",
	})
	require.NoError(t, err)
}

func TestRunSourceSetupValidatesConfig(t *testing.T) {
	err := RunSourceSetup(&SourceSetupConfig{
		LogLevel:       "error",
		Connections:    testLoader(),
		ConnectionName: "pg",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema name")
}

type fakeProber struct {
	err    error
	asked  string
	called bool
}

func (f *fakeProber) BucketExists(bucket string) error {
	f.called = true
	f.asked = bucket
	return f.err
}

func TestRunTargetSetupProbesStageBucket(t *testing.T) {
	p := &fakeProber{}
	err := RunTargetSetup(&TargetSetupConfig{
		LogLevel:       "error",
		Target:         testTarget(),
		Connections:    testLoader(),
		ConnectionName: "snow",
		StageName:      "CDC_DEMO_STAGE",
		StageS3Url:     "s3://demo-bucket/cdc",
		StageS3Key:     "key",
		StageS3Secret:  "secret",
		Prober:         p,
	})
	require.NoError(t, err)
	assert.True(t, p.called)
	assert.Equal(t, "demo-bucket", p.asked)
}

func TestRunTargetSetupFailsOnMissingBucket(t *testing.T) {
	p := &fakeProber{err: s3.ErrBucketNotFound}
	err := RunTargetSetup(&TargetSetupConfig{
		LogLevel:       "error",
		Target:         testTarget(),
		Connections:    testLoader(),
		ConnectionName: "snow",
		StageName:      "CDC_DEMO_STAGE",
		StageS3Url:     "missing-bucket/cdc",
		StageS3Key:     "key",
		StageS3Secret:  "secret",
		Prober:         p,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing-bucket")
}

func TestRunTargetSetupRequiresSourceDetails(t *testing.T) {
	target := testTarget()
	target.SourcePass = ""
	err := RunTargetSetup(&TargetSetupConfig{
		LogLevel:       "error",
		Target:         target,
		Connections:    testLoader(),
		ConnectionName: "snow",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "password")
}

func TestRunTargetCleanupPreviewSkipsSourceDetails(t *testing.T) {
	target := testTarget()
	target.SourceHost = ""
	target.SourceUser = ""
	target.SourcePass = ""
	target.SourcePort = 0
	err := RunTargetCleanup(&TargetSetupConfig{
		LogLevel:       "error",
		Target:         target,
		Connections:    testLoader(),
		ConnectionName: "snow",
		StageName:      "CDC_DEMO_STAGE",
	})
	require.NoError(t, err)
}

func TestBucketFromUrl(t *testing.T) {
	assert.Equal(t, "demo-bucket", bucketFromUrl("s3://demo-bucket/some/prefix"))
	assert.Equal(t, "demo-bucket", bucketFromUrl("demo-bucket"))
	assert.Equal(t, "demo-bucket", bucketFromUrl("demo-bucket/x"))
}
