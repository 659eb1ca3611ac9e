package clinic

import (
	"fmt"
	"strings"
)

// Metadata columns appended to every destination table by the CDC connector.
// Older revisions of the connector used _CHANGE_TYPE/_COMMIT_TIMESTAMP/
// _INGESTION_TIMESTAMP; the current connector writes the set below and that
// is the interface the verify action relies on.
const (
	MetaInsertedAt = "_SNOWFLAKE_INSERTED_AT"
	MetaUpdatedAt  = "_SNOWFLAKE_UPDATED_AT"
	MetaDeleted    = "_SNOWFLAKE_DELETED"
)

// TargetObjects names every warehouse-side object the target setup provisions.
type TargetObjects struct {
	Role        string `errorTxt:"target role" mandatory:"yes"`
	Warehouse   string `errorTxt:"target warehouse" mandatory:"yes"`
	Database    string `errorTxt:"target database" mandatory:"yes"`
	Schema      string `errorTxt:"target schema" mandatory:"yes"`
	NetworkRule string `errorTxt:"network rule" mandatory:"yes"`
	Secret      string `errorTxt:"connector secret" mandatory:"yes"`
	Integration string `errorTxt:"external access integration" mandatory:"yes"`
	// Source reachability details are only needed when provisioning, not when
	// dropping, so they are validated by the setup action instead of by tag.
	SourceHost string `errorTxt:"source database host"`
	SourcePort int    `errorTxt:"source database port"`
	SourceUser string `errorTxt:"source database user"`
	SourcePass string `errorTxt:"source database password"`
}

// TablePrefix returns the fully qualified prefix for destination tables
// e.g. CDC_DEMO_DB.CLINIC
func (t TargetObjects) TablePrefix() string {
	return fmt.Sprintf("%v.%v", t.Database, t.Schema)
}

// TargetDDL generates the ordered statements that provision the warehouse side
// for the external CDC connector: role and grants, compute warehouse, the
// destination database/schema, an egress network rule to the source host, a
// secret holding the source credentials, and the external access integration
// that binds them together.
func TargetDDL(t TargetObjects, addTerminator bool) []string {
	terminator := ""
	if addTerminator {
		terminator = ";"
	}
	s := make([]string, 0, 16)
	s = append(s, fmt.Sprintf("create role if not exists %v%v", t.Role, terminator))
	s = append(s, fmt.Sprintf("grant create database on account to role %v%v", t.Role, terminator))
	s = append(s, fmt.Sprintf("grant create warehouse on account to role %v%v", t.Role, terminator))
	s = append(s, fmt.Sprintf("grant create integration on account to role %v%v", t.Role, terminator))
	s = append(s, fmt.Sprintf("grant execute task on account to role %v%v", t.Role, terminator))
	s = append(s, fmt.Sprintf(`create warehouse if not exists %v
  warehouse_size = xsmall
  auto_suspend = 60
  auto_resume = true
  initially_suspended = true%v`, t.Warehouse, terminator))
	s = append(s, fmt.Sprintf("grant usage, operate on warehouse %v to role %v%v", t.Warehouse, t.Role, terminator))
	s = append(s, fmt.Sprintf("create database if not exists %v%v", t.Database, terminator))
	s = append(s, fmt.Sprintf("grant ownership on database %v to role %v%v", t.Database, t.Role, terminator))
	s = append(s, fmt.Sprintf("create schema if not exists %v.%v%v", t.Database, t.Schema, terminator))
	s = append(s, fmt.Sprintf(`create or replace network rule %v
  type = host_port
  mode = egress
  value_list = ('%v:%v')%v`, t.NetworkRule, t.SourceHost, t.SourcePort, terminator))
	s = append(s, fmt.Sprintf(`create or replace secret %v
  type = password
  username = '%v'
  password = '%v'%v`, t.Secret, t.SourceUser, t.SourcePass, terminator))
	s = append(s, fmt.Sprintf(`create or replace external access integration %v
  allowed_network_rules = (%v)
  allowed_authentication_secrets = (%v)
  enabled = true%v`, t.Integration, t.NetworkRule, t.Secret, terminator))
	s = append(s, fmt.Sprintf("grant usage on integration %v to role %v%v", t.Integration, t.Role, terminator))
	s = append(s, fmt.Sprintf("grant read on secret %v to role %v%v", t.Secret, t.Role, terminator))
	return s
}

// TargetCleanupDDL drops everything TargetDDL creates, in reverse order.
func TargetCleanupDDL(t TargetObjects, addTerminator bool) []string {
	terminator := ""
	if addTerminator {
		terminator = ";"
	}
	return []string{
		fmt.Sprintf("drop integration if exists %v%v", t.Integration, terminator),
		fmt.Sprintf("drop secret if exists %v%v", t.Secret, terminator),
		fmt.Sprintf("drop network rule if exists %v%v", t.NetworkRule, terminator),
		fmt.Sprintf("drop database if exists %v%v", t.Database, terminator),
		fmt.Sprintf("drop warehouse if exists %v%v", t.Warehouse, terminator),
		fmt.Sprintf("drop role if exists %v%v", t.Role, terminator),
	}
}

// StageDDL generates an optional external stage pointing at AWS S3, useful when
// the connector is configured to bulk-load snapshot files through a stage.
func StageDDL(stageName string, s3Url string, key string, secret string, addTerminator bool) []string {
	terminator := ""
	s3Url = "s3://" + strings.TrimPrefix(s3Url, "s3://") // ensure 's3://' leading string.
	if addTerminator {
		terminator = ";"
	}
	return []string{fmt.Sprintf(`create or replace stage %v
  url = '%v'
  credentials = (
    aws_key_id = '%v'
    aws_secret_key = '%v'
  )
  file_format = (
    type = csv
    compression = gzip
    skip_header = 1
    field_optionally_enclosed_by = '"'
  )
  comment = 'cdcdemo command-line tool'%v`,
		stageName, s3Url, key, secret, terminator)}
}

// StageCleanupDDL drops the optional stage.
func StageCleanupDDL(stageName string, addTerminator bool) []string {
	terminator := ""
	if addTerminator {
		terminator = ";"
	}
	return []string{fmt.Sprintf("drop stage if exists %v%v", stageName, terminator)}
}
