// Package lis200 extends the session layer with the LIS-200 application
// protocol used by Elster gas volume converters and flow computers on top
// of IEC 62056-21.
//
// It adds the archive readout command, the joining of archive values with
// their column metadata, and the parser for the #NNNN error markers devices
// put in reply values.
//
// # Usage Example
//
//	lis200.Register()
//
//	meter, err := client.NewClient(port)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	readout, err := lis200.NewArchiveReadout(1,
//		lis200.WithRange(start, end),
//		lis200.WithPartialBlocks(10),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
// The command is sent over the client after AccessProgrammingMode and the
// reply read with ReadResponse.
package lis200
