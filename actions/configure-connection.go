package actions

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/harborhealth/cdcdemo/config"
	"github.com/harborhealth/cdcdemo/helper"
	"github.com/harborhealth/cdcdemo/rdbms/shared"
)

type ConnectionConfig struct {
	ConfigFile  ConnectionGetterSetter
	LogicalName string
	Type        string
	ConnDetails ConnectionValidator
	Force       bool
}

func RunConnectionAdd(cfg *ConnectionConfig) error {
	// Setup the basics ready to be persisted below.
	connection := shared.ConnectionDetails{
		LogicalName: cfg.LogicalName,
		Type:        cfg.Type,
		Data:        make(map[string]string),
	}
	if err := helper.ValidateStructIsPopulated(connection); err != nil { // if the basics were not supplied...
		return err
	}
	// Validate connection name.
	if strings.Index(cfg.LogicalName, ".") > 0 {
		return fmt.Errorf("connection name cannot contain period characters '.' as they're used to split data sources e.g. <connection>[.<schema>]")
	}
	// Validate DSN based on connection type.
	var err error
	if err := cfg.ConnDetails.Parse(); err != nil {
		return errors.Wrap(err, "unable to create connection")
	}
	connection.Type, err = cfg.ConnDetails.GetScheme()
	if err != nil {
		return err
	}
	cfg.ConnDetails.GetMap(connection.Data)
	// Check for an existing saved connection.
	tmpConn := &shared.ConnectionDetails{}
	err = cfg.ConfigFile.Get(cfg.LogicalName, tmpConn)
	if err != nil { // if there is an error finding the connection...
		if !errors.As(err, &config.KeyNotFoundError{}) { // if the error is real...
			return err
		}
	} else if tmpConn.LogicalName != "" && !cfg.Force { // else if the connection exists, but we are not allowed to overwrite it...
		return fmt.Errorf("connection exists, use force to update the connection or remove it first")
	}
	// Set config (creates the file if missing).
	err = cfg.ConfigFile.Set(cfg.LogicalName, &connection)
	if err != nil {
		return fmt.Errorf("error writing connections config file after adding: %v", err)
	}
	fmt.Printf("Connection %q added\n", cfg.LogicalName)
	return nil
}

func RunConnectionRemove(cfg *ConnectionConfig) error {
	if cfg.LogicalName == "" {
		return fmt.Errorf("please supply a connection name")
	}
	err := cfg.ConfigFile.Delete(cfg.LogicalName)
	if err != nil {
		return fmt.Errorf("unable to delete connection %q from config: %v", cfg.LogicalName, err)
	}
	fmt.Printf("Connection %q removed\n", cfg.LogicalName)
	return nil
}

func RunConnectionList(cfg *ConnectionConfig) error {
	keys, err := cfg.ConfigFile.GetAllKeys()
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		fmt.Println("No connections found")
		return nil
	}
	sort.Strings(keys)
	for _, k := range keys {
		conn := &shared.ConnectionDetails{}
		if err := cfg.ConfigFile.Get(k, conn); err != nil {
			return err
		}
		fmt.Printf("%v: %v\n", k, conn.String())
	}
	return nil
}
