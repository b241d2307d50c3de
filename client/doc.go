// Package client implements the session layer of IEC 62056-21 mode C.
//
// A Client runs the exchange against a single meter on top of a
// transport.Transport: request and identification, option select with the
// proposed baudrate, switchover, then the readout or programming session.
//
// # Usage Example
//
//	port, err := transport.NewSerial("/dev/ttyUSB0")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	meter, err := client.NewClient(port)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	if err := meter.Connect(); err != nil {
//		log.Fatal(err)
//	}
//	defer meter.Disconnect()
//
//	readout, err := meter.StandardReadout()
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, set := range readout.Data() {
//		fmt.Printf("%s = %s %s\n", set.Address, set.Value, set.Unit)
//	}
//
// Programming sessions follow AccessProgrammingMode with SendPassword,
// ReadSingleValue and WriteSingleValue, and end with SendBreak.
package client
