package cmd

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/harborhealth/cdcdemo/actions"
	"github.com/harborhealth/cdcdemo/config"
	"github.com/harborhealth/cdcdemo/constants"
	"github.com/harborhealth/cdcdemo/helper"
)

type cliFlag struct {
	name      string // name of flag
	val       string // default value
	shortHand string // single character name for the flag
	desc      string // description of the flag; the long text
}

type cliFlags map[string]cliFlag

var switches = cliFlags{
	"log-level": cliFlag{name: "log-level", shortHand: "l",
		desc: "Log level: \"error | warn | info | debug\""},
	"dry-run": cliFlag{name: "dry-run", shortHand: "d",
		desc: "Print the SQL without executing it"},
	"print-header": cliFlag{name: "print-header", shortHand: "x",
		desc: "Print a header for SQL query results"},
	"execute-ddl": cliFlag{name: "execute-ddl", shortHand: "e",
		desc: "Execute the generated DDL against the connection (otherwise it's printed only)"},
	"connection-name": cliFlag{name: "connection-name", shortHand: "c",
		desc: "Connection name referred to by demo actions"},
	"dsn": cliFlag{name: "dsn", shortHand: "d",
		desc: "Connect string to parse"},
	"force-connection": cliFlag{name: "force", shortHand: "f",
		desc: "Allow overwrite of existing connections"},
	"schema": cliFlag{name: "schema", shortHand: "s",
		desc: "Source schema holding the clinic tables"},
	"publication": cliFlag{name: "publication", shortHand: "P",
		desc: "Logical replication publication name read by the CDC connector"},
	"patients": cliFlag{name: "patients", shortHand: "p",
		desc: "Number of patients to generate"},
	"doctors": cliFlag{name: "doctors", shortHand: "D",
		desc: "Number of doctors to generate"},
	"appointments": cliFlag{name: "appointments", shortHand: "a",
		desc: "Number of appointments to generate"},
	"data-seed": cliFlag{name: "data-seed", shortHand: "S",
		desc: "Seed for the random generator so runs are reproducible"},
	"rounds": cliFlag{name: "rounds", shortHand: "r",
		desc: "Number of simulation rounds to run"},
	"interval": cliFlag{name: "interval", shortHand: "i",
		desc: "Seconds to sleep between simulation rounds"},
	"batch-size": cliFlag{name: "batch-size", shortHand: "b",
		desc: "Max appointments moved per lifecycle transition each round"},
	"new-per-round": cliFlag{name: "new-per-round", shortHand: "n",
		desc: "Number of new scheduled appointments inserted each round"},
	"tolerance": cliFlag{name: "tolerance", shortHand: "t",
		desc: "Row count difference per table tolerated before the target counts as lagging"},
	"report": cliFlag{name: "report", shortHand: "n",
		desc: "Run the named report only (omit to run all)"},
	"list": cliFlag{name: "list", shortHand: "L",
		desc: "List the available reports"},
	"target-role": cliFlag{name: "target-role", shortHand: "R",
		desc: "Snowflake role that owns the demo objects"},
	"target-warehouse": cliFlag{name: "target-warehouse", shortHand: "w",
		desc: "Snowflake compute warehouse name"},
	"target-database": cliFlag{name: "target-database", shortHand: "B",
		desc: "Snowflake destination database name"},
	"target-schema": cliFlag{name: "target-schema", shortHand: "m",
		desc: "Snowflake destination schema name"},
	"network-rule": cliFlag{name: "network-rule", shortHand: "N",
		desc: "Snowflake egress network rule name allowing access to the source host"},
	"secret-name": cliFlag{name: "secret-name", shortHand: "E",
		desc: "Snowflake secret name holding the source database credentials"},
	"integration-name": cliFlag{name: "integration-name", shortHand: "I",
		desc: "Snowflake external access integration name used by the CDC connector"},
	"source-host": cliFlag{name: "source-host", shortHand: "H",
		desc: "Source database host the connector reaches out to"},
	"source-port": cliFlag{name: "source-port", shortHand: "o",
		desc: "Source database listener port"},
	"source-user": cliFlag{name: "source-user", shortHand: "U",
		desc: "Source database user for the connector (needs REPLICATION)"},
	"source-password": cliFlag{name: "source-password", shortHand: "W",
		desc: "Source database password for the connector"},
	"stage": cliFlag{name: "stage", shortHand: "g",
		desc: "Optional external Snowflake stage name used for bulk snapshot loads"},
	"s3-url": cliFlag{name: "s3-url", shortHand: "u",
		desc: "AWS S3 bucket URL to be added to a new STAGE object. Use format: s3://<bucket>[/<prefix>/]"},
	"s3-key": cliFlag{name: "s3-key", shortHand: "K",
		desc: "AWS IAM user key that can access the bucket (or set AWS_ACCESS_KEY_ID)"},
	"s3-secret": cliFlag{name: "s3-secret", shortHand: "X",
		desc: "AWS IAM user secret that can access the bucket (or set AWS_SECRET_ACCESS_KEY)"},
	"s3-region": cliFlag{name: "s3-region", shortHand: "G",
		desc: "AWS S3 bucket region"},
	"port": cliFlag{name: "port", shortHand: "p",
		desc: "Port to listen on"},
	"source-connection": cliFlag{name: "source-connection", shortHand: "1",
		desc: "Source connection name"},
	"target-connection": cliFlag{name: "target-connection", shortHand: "2",
		desc: "Target connection name"},
	"target-prefix": cliFlag{name: "target-prefix", shortHand: "T",
		desc: "Destination prefix of the form <database>.<schema> qualifying warehouse tables"},
}

// addFlag adds a flag to cobra.Command c, based on the type of targetVar (which must be a pointer).
// The name of the flag is looked up in map cliFlags. The default value is fetched from the main
// config file if present, else from its environment variable, else the supplied defaultValue.
// The flag is marked as required in Cobra based on the value of required.
// Supply a value for desc2 to append to the existing description found in map cliFlags.
func (f *cliFlags) addFlag(c *cobra.Command, targetVar interface{}, name string, defaultValue string, required bool, desc2 string) {
	v := reflect.ValueOf(targetVar)
	if v.Kind() != reflect.Ptr {
		fmt.Println("error adding flag: targetVar must be a pointer")
		os.Exit(1)
	}
	sw := f.getCliFlag(name, defaultValue, config.Main.Get) // get the cliFlag details, with defaults taken from config or the supplied defaultValue
	desc := sw.desc + desc2                                 // create the full flag description for use below
	// Apply the flag.
	switch p := targetVar.(type) {
	case *string:
		c.Flags().StringVarP(p, sw.name, sw.shortHand, sw.val, desc)
		// Signal that the flag was set so defaults take effect.
		if sw.val != "" { // if there is a value via config or default...
			mustSetFlag(c.Flags(), sw.name, sw.val)
		}
	case *bool:
		defaultBool := false
		if strings.ToLower(sw.val) == "true" {
			defaultBool = true
		}
		c.Flags().BoolVarP(p, sw.name, sw.shortHand, defaultBool, desc)
		// Signal that the flag was set so defaults take effect.
		if defaultBool {
			mustSetFlag(c.Flags(), sw.name, "true")
		} else {
			mustSetFlag(c.Flags(), sw.name, "false")
		}
	case *int:
		defaultInt, err := strconv.Atoi(sw.val)
		if err != nil {
			fmt.Printf("the value for flag %q must be an integer: %v\n", sw.name, err)
			os.Exit(1)
		}
		c.Flags().IntVarP(p, sw.name, sw.shortHand, defaultInt, desc)
		// Signal that the flag was set so defaults take effect.
		if sw.val != "" { // if there is a value via config or default...
			mustSetFlag(c.Flags(), sw.name, sw.val)
		}
	case *int64:
		defaultInt, err := strconv.ParseInt(sw.val, 10, 64)
		if err != nil {
			fmt.Printf("the value for flag %q must be an integer: %v\n", sw.name, err)
			os.Exit(1)
		}
		c.Flags().Int64VarP(p, sw.name, sw.shortHand, defaultInt, desc)
		if sw.val != "" {
			mustSetFlag(c.Flags(), sw.name, sw.val)
		}
	default:
		panic("Error: unhandled CLI flag target value type")
	}
	// Optionally mark the flag as mandatory.
	if required { // if the flag is required...
		_ = c.MarkFlagRequired(sw.name)
	}
}

// getCliFlag fetches the default for name from the main config file, else from
// the flag's environment variable, else uses the supplied defaultValue.
func (f *cliFlags) getCliFlag(name string, defaultValue string, fnGetConfig func(key string, out interface{}) error) cliFlag {
	s, ok := switches[name]
	if !ok {
		panic(fmt.Sprintf("unregistered CLI flag, %q", name))
	}
	err := fnGetConfig(s.name, &s.val)
	if errors.As(err, &config.KeyNotFoundError{}) || s.val == "" { // if there was no key found...
		if err := helper.ReadValueFromEnv(flagNameToEnvVar(name), &s.val); err != nil { // if there's no env var either...
			// Apply the default.
			s.val = defaultValue
		}
	}
	return s
}

// flagNameToEnvVar will form a sanitised environment variable name using constants.EnvVarPrefix.
func flagNameToEnvVar(name string) string {
	return constants.EnvVarPrefix + "_" + strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
}

func mustSetFlag(f *pflag.FlagSet, name string, val string) {
	if err := f.Set(name, val); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// getConnectionNameArgsFunc returns a func that cobra uses to validate that we
// have 1 arg. It saves arg[0] as the connection name.
func getConnectionNameArgsFunc(name *string, customErrMsg string) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			if customErrMsg != "" {
				return errors.New(customErrMsg)
			}
			return errors.New("requires a <connection> name")
		}
		*name = args[0]
		return nil
	}
}

// getConnectionPairArgsFunc validates that we have 2 args, saving them as the
// source and target connection names.
func getConnectionPairArgsFunc(src *string, tgt *string, customErrMsg string) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != 2 {
			if customErrMsg != "" {
				return errors.New(customErrMsg)
			}
			return errors.New("requires <source-connection> and <target-connection> names")
		}
		*src = args[0]
		*tgt = args[1]
		return nil
	}
}

// getQueryFromArgsFunc concatenates all args after the connection into a string.
// Returns an error if there are no args.
func getQueryFromArgsFunc(src *actions.ConnectionObject, query *string, customErrMsg string) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < 2 { // if we are missing arguments...
			if customErrMsg != "" {
				return errors.New(customErrMsg)
			}
			return errors.New("please supply a connection and a SQL query")
		}
		*src = actions.ConnectionObject{ConnectionObject: args[0]}
		// Build a new []string for the SQL; skip the connection in arg[0].
		q := make([]string, 0)
		for idx := 1; idx < len(args); idx++ { // for each piece of SQL...
			q = append(q, args[idx])
		}
		*query = strings.Join(q, " ")
		return nil
	}
}

func getConnectionLoader() actions.ConnectionLoader {
	return config.Connections
}

func getConnectionGetterSetter() actions.ConnectionGetterSetter {
	return config.Connections
}

func getConnectionHandler() actions.ConnectionHandler {
	return config.Connections
}
