package helper

import (
	"fmt"
	"strconv"
	"strings"
)

// InterfaceToString converts a slice of values scanned from database/sql rows into strings
// suitable for CSV output. Floats that hold whole numbers are printed without an exponent.
func InterfaceToString(src []interface{}) []string {
	retval := make([]string, len(src), len(src))
	for i, v := range src {
		switch x := v.(type) {
		case float64:
			xInt := int(x)
			xFloat := float64(xInt) // truncate the float.
			if x == xFloat {        // if we can treat this as an integer...
				retval[i] = fmt.Sprint(xInt)
			} else { // else we have an exponent...
				retval[i] = strconv.FormatFloat(x, 'g', -1, 64)
			}
		case []uint8: // some drivers return rows as []uint8 bytes essentially.
			retval[i] = string(x)
		case nil:
			retval[i] = ""
		default:
			retval[i] = fmt.Sprint(v)
		}
	}
	return retval
}

// CsvToStringSliceTrimSpaces splits a CSV of values and trims spaces from each element.
// Empty elements are dropped.
func CsvToStringSliceTrimSpaces(csv string) []string {
	retval := make([]string, 0)
	for _, v := range strings.Split(csv, ",") {
		t := strings.TrimSpace(v)
		if t != "" {
			retval = append(retval, t)
		}
	}
	return retval
}
