// Package transport provides the byte transports an IEC 62056-21 session runs
// over and the frame reader that assembles device replies from them.
//
// # Transports
//
// Two implementations of the Transport interface are provided:
//
//   - Serial: an optical probe or USB converter on a serial port, opened with
//     7 data bits, even parity and one stop bit at 300 baud, the settings
//     mode C mandates for the handshake. The negotiated baudrate switchover
//     reopens the port at the new rate.
//   - TCP: a network-attached meter or serial-device server. Baudrate
//     switchover is a no-op and sessions must carry a device address.
//
// # Frame Reading
//
// Device replies are framed with single-byte control characters:
//
//   - SOH (0x01) starts a command-type reply
//   - STX (0x02) starts a data block
//   - ETX (0x03) ends a complete message and is covered by the checksum
//   - EOT (0x04) ends a partial block, more blocks follow
//   - ACK (0x06) and NACK (0x15) accept or reject a block
//
// A frame ends with a one-byte checksum (BCC). The Reader collects packets,
// validates each checksum, ACKs partial blocks and requests bounded
// retransmission on failures, and reassembles partial blocks into the single
// frame an unblocked device would have sent.
package transport
