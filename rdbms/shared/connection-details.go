package shared

import (
	"fmt"
	"strings"

	"github.com/harborhealth/cdcdemo/constants"
	"github.com/xo/dburl"
)

// ConnectionDetails is intended to hold credentials for a logical database connection.
type ConnectionDetails struct {
	Type        string            `json:"type" errorTxt:"database type" mandatory:"yes" yaml:"type"`
	LogicalName string            `json:"logicalName" errorTxt:"database logical name" mandatory:"yes" yaml:"logicalName"`
	Data        map[string]string `json:"data" yaml:"data"`
}

// String redacts passwords and pretty-prints the contents of ConnectionDetails.
func (c ConnectionDetails) String() string {
	x := make([]string, 0, len(c.Data))
	x = append(x, fmt.Sprintf("  type = %v", c.Type))
	if v, ok := c.Data["dsn"]; ok { // if there's a DSN...
		u, err := dburl.Parse(v)
		if err != nil {
			panic(fmt.Sprintf("unexpected error while parsing DSN: %v", err))
		}
		x = append(x, fmt.Sprintf("  dsn = %v", u.Redacted()))
	} else { // else dump the data map...
		for k, v := range c.Data {
			if k == "password" {
				v = "xxxxx"
			}
			x = append(x, fmt.Sprintf("  %v = %v", k, v))
		}
	}
	return strings.Join(x, "\n")
}

// MustGetSysDateSql returns the dialect-specific expression for the current date-time.
func (c ConnectionDetails) MustGetSysDateSql() string {
	switch c.Type {
	case constants.ConnectionTypePostgres:
		return "now()"
	case constants.ConnectionTypeSnowflake:
		return "current_timestamp"
	default:
		panic(fmt.Sprintf("unsupported database type %q in call to get SQL for current date", c.Type))
	}
}

// DBConnections maps logical connection names to their details.
type DBConnections map[string]ConnectionDetails

// LoadConnection will load the supplied *c[connectionName], which is expected to be in c,
// using the interface to do the actual loading.
func (c *DBConnections) LoadConnection(i ConnectionGetter, connectionName string) error {
	conn := (*c)[connectionName]
	d, err := i.LoadConnection(conn.LogicalName)
	if err != nil {
		return err
	}
	(*c)[connectionName] = d // replace the connection with the loaded version
	return nil
}
