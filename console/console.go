// Package console owns both sides of the single serial console: a serialized
// write queue with one consumer goroutine, an input pump that is the only
// reader of the device, and a deadline-bounded line reader built on top of
// the pump.
package console

// TxDevice is the transmit side of the console device. WriteString must
// transmit the whole message before returning.
type TxDevice interface {
	WriteString(s string) error
}

// RxDevice is the receive side of the console device. ReadByte blocks until
// one byte is available.
type RxDevice interface {
	ReadByte() (byte, error)
}

// Device is a full console endpoint.
type Device interface {
	TxDevice
	RxDevice
}
