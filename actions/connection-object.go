package actions

import (
	"strings"
	"sync"
)

// ConnectionObject should be constructed with public property ConnectionObject set using format:
// <connection>[.<schema>]
type ConnectionObject struct {
	ConnectionObject string `errorTxt:"<connection>[.<schema>]" mandatory:"yes"`
	connection       string
	object           string
	done             bool
	mu               sync.Mutex
}

func (c *ConnectionObject) GetConnectionName() string {
	c.splitConnectString()
	return c.connection
}

func (c *ConnectionObject) GetObject() string {
	c.splitConnectString()
	return c.object
}

// splitConnectString splits the input on the first period into the connection
// name and an optional schema qualifier. With no period the whole string is
// the connection name and the object is returned as "".
func (c *ConnectionObject) splitConnectString() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.done {
		i := strings.Index(c.ConnectionObject, ".")
		if i > 0 {
			c.connection = c.ConnectionObject[:i]
			c.object = c.ConnectionObject[i+1:]
		} else {
			c.connection = c.ConnectionObject
		}
		if c.ConnectionObject != "" { // if struct was constructed with a valid ConnectionObject...
			c.done = true
		}
	}
}
