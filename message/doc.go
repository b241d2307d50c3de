// Package message provides the data model for IEC 62056-21 messages, the
// character-oriented protocol used to read out and program utility meters.
// It covers both directions of the exchange: the handshake messages (request,
// identification, option select), the programming-mode commands, and the data
// responses the device answers with.
//
// Key Features:
//   - Message Representation: Each message type serializes to its exact
//     protocol text, with the block check character (BCC) appended where the
//     message shape defines one.
//   - Parsing: Package functions parse protocol text back into message values
//     and validate the checksum on the way in.
//   - Data Model: Responses decompose into data blocks, data lines and data
//     sets, mirroring the structure of the protocol text.
//   - Encoding: Helpers convert between protocol text and its latin-1 wire
//     encoding.
//
// Usage Example:
//
//	// Build an R1 command reading register 1.8.0
//	cmd := message.NewSingleReadCommand("1.8.0", "1")
//
//	// Encode it for the wire
//	data, _ := cmd.MarshalBinary()
//
//	// ... send data, read the reply bytes ...
//
//	// Parse the reply
//	answer, err := message.ParseAnswerDataMessage(message.DecodeLatin1(reply))
//	if err != nil {
//	    // checksum or format failure
//	}
//	for _, ds := range answer.Data() {
//	    fmt.Println(ds.Address, ds.Value, ds.Unit)
//	}
package message
