package lis200

import "fmt"

// ProtocolError is an error the device reports inside a data reply,
// identified by its LIS-200 code.
type ProtocolError struct {
	Code int
}

func (e *ProtocolError) Error() string {
	if text, ok := errorTexts[e.Code]; ok {
		return fmt.Sprintf("lis200: device error %d: %s", e.Code, text)
	}

	return fmt.Sprintf("lis200: device error %d", e.Code)
}

// errorTexts holds the documented LIS-200 error codes. Devices may report
// codes outside this table; those render with the bare number.
var errorTexts = map[int]string{
	1:   "wrong (unknown) address",
	2:   "wrong address, object not available",
	3:   "wrong address, entity for object not available",
	4:   "wrong address, unknown attribute",
	5:   "wrong address, attribute for object not available",
	6:   "value outside of allowed range",
	9:   "write command on constant not executable",
	11:  "no value range available since no input is allowed",
	13:  "wrong input",
	14:  "unknown units code",
	17:  "wrong access code",
	18:  "no read authorization",
	19:  "no write authorization",
	20:  "function is locked",
	100: "archive number not available",
	101: "value position not available",
	103: "archive empty",
	104: "lower limit (from-value) not found",
	105: "upper limit (to-value) not found",
	108: "maximum limit of simultaneously opened archives exceeded",
	109: "archive entry was overwritten while reading out",
	110: "crc error in archive data record",
	180: "source not allowed",
	200: "syntax error in telegram",
	201: "wrong password in telegram",
	222: "eeprom read error",
	223: "eeprom write error",
	249: "encoder mode not possible, counter reading cannot be changed",
}
